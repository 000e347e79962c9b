package bedrock

import "time"

// Lifecycle statuses reported by the service.
const (
	LifecycleActive = "ACTIVE"
	LifecycleLegacy = "LEGACY"
)

// ModelLifecycle wraps the lifecycle status of a foundation model.
type ModelLifecycle struct {
	Status string `json:"status,omitempty"`
}

// ModelSummary is one foundation model as reported by a single region.
// Field names mirror the service wire format so the persisted catalog
// stays byte-compatible with the raw listing payload.
type ModelSummary struct {
	ModelArn                   string         `json:"modelArn,omitempty"`
	ModelID                    string         `json:"modelId,omitempty"`
	ModelName                  string         `json:"modelName,omitempty"`
	ProviderName               string         `json:"providerName,omitempty"`
	InputModalities            []string       `json:"inputModalities,omitempty"`
	OutputModalities           []string       `json:"outputModalities,omitempty"`
	ResponseStreamingSupported *bool          `json:"responseStreamingSupported,omitempty"`
	CustomizationsSupported    []string       `json:"customizationsSupported,omitempty"`
	InferenceTypesSupported    []string       `json:"inferenceTypesSupported,omitempty"`
	ModelLifecycle             ModelLifecycle `json:"modelLifecycle"`
}

// IsLegacy reports whether the model is in LEGACY lifecycle status.
func (m ModelSummary) IsLegacy() bool {
	return m.ModelLifecycle.Status == LifecycleLegacy
}

// ProfileModel is one underlying model of an inference profile.
type ProfileModel struct {
	ModelArn string `json:"modelArn,omitempty"`
}

// ProfileSummary is one inference profile as reported by a single region.
type ProfileSummary struct {
	InferenceProfileArn  string         `json:"inferenceProfileArn,omitempty"`
	InferenceProfileID   string         `json:"inferenceProfileId,omitempty"`
	InferenceProfileName string         `json:"inferenceProfileName,omitempty"`
	Description          string         `json:"description,omitempty"`
	Status               string         `json:"status,omitempty"`
	Type                 string         `json:"type,omitempty"`
	Models               []ProfileModel `json:"models,omitempty"`
	CreatedAt            *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt            *time.Time     `json:"updatedAt,omitempty"`
}
