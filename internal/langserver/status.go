package langserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"quotaprobe/internal/logging"
	"quotaprobe/internal/textutil"
)

// diagBodyLimit bounds how much of an error response surfaces in diagnostics.
const diagBodyLimit = 300

type statusRequest struct {
	Metadata statusMetadata `json:"metadata"`
}

type statusMetadata struct {
	IDEName       string `json:"ideName"`
	ExtensionName string `json:"extensionName"`
	Locale        string `json:"locale"`
}

// UserStatusPayload mirrors the GetUserStatus response shape. Every nested
// object is a pointer because the upstream schema is not guaranteed; absent
// sub-objects decode to nil and the report parser defaults them.
type UserStatusPayload struct {
	UserStatus *UserStatus `json:"userStatus"`
}

type UserStatus struct {
	Name                   string           `json:"name"`
	Email                  string           `json:"email"`
	PlanStatus             *PlanStatus      `json:"planStatus"`
	CascadeModelConfigData *ModelConfigData `json:"cascadeModelConfigData"`
}

type PlanStatus struct {
	PlanInfo               *PlanInfo `json:"planInfo"`
	AvailablePromptCredits Credits   `json:"availablePromptCredits"`
	AvailableFlowCredits   Credits   `json:"availableFlowCredits"`
}

// Credits is a credit balance that tolerates both number and string
// encodings on the wire. Unrecognized shapes degrade to empty instead of
// failing the whole payload.
type Credits string

func (c *Credits) UnmarshalJSON(data []byte) error {
	var number json.Number
	if err := json.Unmarshal(data, &number); err == nil {
		*c = Credits(number.String())
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*c = Credits(text)
		return nil
	}
	*c = ""
	return nil
}

type PlanInfo struct {
	PlanName string `json:"planName"`
}

type ModelConfigData struct {
	ClientModelConfigs []ModelConfig `json:"clientModelConfigs"`
}

type ModelConfig struct {
	Label     string     `json:"label"`
	QuotaInfo *QuotaInfo `json:"quotaInfo"`
}

type QuotaInfo struct {
	RemainingFraction *float64 `json:"remainingFraction"`
	ResetTime         string   `json:"resetTime"`
}

// FetchUserStatus issues the authenticated quota request against a confirmed
// endpoint. Non-200 responses and transport or decode failures all return an
// error carrying enough diagnostics to name the cause; nothing is retried.
func (c *Client) FetchUserStatus(ctx context.Context, port int) (UserStatusPayload, error) {
	body := statusRequest{
		Metadata: statusMetadata{
			IDEName:       c.identity.IDEName,
			ExtensionName: c.identity.ExtensionName,
			Locale:        c.identity.Locale,
		},
	}

	status, data, err := c.post(ctx, port, statusPath, body, c.fetchTimeout)
	if err != nil {
		return UserStatusPayload{}, fmt.Errorf("user status request: %w", err)
	}
	if status != http.StatusOK {
		return UserStatusPayload{}, fmt.Errorf("user status returned HTTP %d: %s",
			status, textutil.Truncate(string(data), diagBodyLimit))
	}

	c.logger.Debug("user status response", logging.Args(
		logging.Int(logging.FieldPort, port),
		logging.Int("bytes", len(data)),
	)...)

	var payload UserStatusPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return UserStatusPayload{}, fmt.Errorf("decode user status: %w", err)
	}
	return payload, nil
}
