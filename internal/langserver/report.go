package langserver

import (
	"math"
	"strings"
)

// Severity classifies how much quota a model has left. Display only; it
// never drives control flow.
type Severity int

const (
	SeverityNominal Severity = iota
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "nominal"
	}
}

// SeverityForPercent classifies a remaining-quota percentage: above 50 is
// nominal, 21-50 is a warning, 20 and below is critical.
func SeverityForPercent(pct int) Severity {
	switch {
	case pct > 50:
		return SeverityNominal
	case pct > 20:
		return SeverityWarning
	default:
		return SeverityCritical
	}
}

// ModelQuota is one model's remaining allowance. RemainingFraction is nil
// when the server reported no quota for the model.
type ModelQuota struct {
	Label             string   `json:"label"`
	RemainingFraction *float64 `json:"remainingFraction,omitempty"`
	ResetTime         string   `json:"resetTime,omitempty"`
}

// Percent returns floor(fraction*100) and whether a fraction was present.
func (m ModelQuota) Percent() (int, bool) {
	if m.RemainingFraction == nil {
		return 0, false
	}
	return int(math.Floor(*m.RemainingFraction * 100)), true
}

// Severity classifies the model's remaining quota. Models without a reported
// fraction read as nominal so they never alarm.
func (m ModelQuota) Severity() Severity {
	pct, ok := m.Percent()
	if !ok {
		return SeverityNominal
	}
	return SeverityForPercent(pct)
}

// ResetDisplay renders the reset timestamp for humans: date plus minutes,
// with the ISO-8601 separator replaced by a space.
func (m ModelQuota) ResetDisplay() string {
	reset := strings.TrimSpace(m.ResetTime)
	if reset == "" {
		return ""
	}
	if len(reset) > 16 {
		reset = reset[:16]
	}
	return strings.ReplaceAll(reset, "T", " ")
}

// Report is the display-ready view of a GetUserStatus payload. Read-only
// after parse.
type Report struct {
	UserName      string       `json:"userName"`
	UserEmail     string       `json:"userEmail"`
	PlanName      string       `json:"planName"`
	PromptCredits string       `json:"promptCredits"`
	FlowCredits   string       `json:"flowCredits"`
	Models        []ModelQuota `json:"models"`
}

// HasModels reports whether any model quota rows were present.
func (r Report) HasModels() bool {
	return len(r.Models) > 0
}

// ParseReport converts a raw payload into a Report. The parse is total:
// every nested object may be absent and every field defaults instead of
// failing, because the upstream schema carries no compatibility promise.
func ParseReport(payload UserStatusPayload) Report {
	report := Report{
		UserName:      "Unknown",
		PlanName:      "Unknown",
		PromptCredits: "?",
		FlowCredits:   "?",
	}

	status := payload.UserStatus
	if status == nil {
		return report
	}

	if name := strings.TrimSpace(status.Name); name != "" {
		report.UserName = name
	}
	report.UserEmail = strings.TrimSpace(status.Email)

	if plan := status.PlanStatus; plan != nil {
		if info := plan.PlanInfo; info != nil {
			if name := strings.TrimSpace(info.PlanName); name != "" {
				report.PlanName = name
			}
		}
		if credits := string(plan.AvailablePromptCredits); credits != "" {
			report.PromptCredits = credits
		}
		if credits := string(plan.AvailableFlowCredits); credits != "" {
			report.FlowCredits = credits
		}
	}

	if data := status.CascadeModelConfigData; data != nil {
		for _, model := range data.ClientModelConfigs {
			quota := ModelQuota{Label: strings.TrimSpace(model.Label)}
			if quota.Label == "" {
				quota.Label = "Unknown"
			}
			if info := model.QuotaInfo; info != nil {
				quota.RemainingFraction = info.RemainingFraction
				quota.ResetTime = info.ResetTime
			}
			report.Models = append(report.Models, quota)
		}
	}

	return report
}
