package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Terminal pipeline failures, one per stage of the taxonomy. A run stops at
// the first of these it hits. Partial quota payloads are never errors; they
// degrade to a "no data" display instead.
var (
	ErrProcessNotFound   = errors.New("process not found")
	ErrNoListeningPorts  = errors.New("no listening ports")
	ErrNoWorkingEndpoint = errors.New("no working endpoint")
	ErrFetchFailed       = errors.New("fetch failed")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided sentinel for later classification.
func Wrap(marker error, stage, message string, err error) error {
	detail := buildDetail(stage, message)
	if marker == nil {
		marker = ErrFetchFailed
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// StageName maps a pipeline error to its taxonomy name for diagnostics.
func StageName(err error) string {
	switch {
	case errors.Is(err, ErrProcessNotFound):
		return "ProcessNotFound"
	case errors.Is(err, ErrNoListeningPorts):
		return "NoListeningPorts"
	case errors.Is(err, ErrNoWorkingEndpoint):
		return "NoWorkingEndpoint"
	case errors.Is(err, ErrFetchFailed):
		return "FetchFailed"
	default:
		return "Unknown"
	}
}

func buildDetail(stage, message string) string {
	parts := make([]string, 0, 2)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
