// Package catalog builds the deduplicated model/profile catalog from
// per-region Bedrock listings.
package catalog

import "github.com/modelwatch/bedrock-catalog/internal/bedrock"

// ModelRecord is one deduplicated catalog entry: the first-seen descriptor
// payload plus the ordered set of regions where the model was sighted.
type ModelRecord struct {
	bedrock.ModelSummary
	Regions []string `json:"regions"`
}

// ProfileRecord is one inference profile sighting annotated with the region
// it was fetched from. Profiles are not deduplicated across regions.
type ProfileRecord struct {
	bedrock.ProfileSummary
	Region string `json:"region"`
}

// Snapshot is the full result of one refresh run.
type Snapshot struct {
	Regions  []string
	Models   []ModelRecord
	Profiles []ProfileRecord
}
