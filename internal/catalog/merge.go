package catalog

import "github.com/modelwatch/bedrock-catalog/internal/bedrock"

// Merger accumulates per-region model listings into a deduplicated catalog
// keyed by modelId. The first-seen payload wins; later sightings of the same
// model only contribute their region. Output order is order of first sighting.
type Merger struct {
	byID  map[string]*ModelRecord
	order []string
}

// NewMerger creates an empty Merger.
func NewMerger() *Merger {
	return &Merger{byID: make(map[string]*ModelRecord)}
}

// AddRegion merges one region's model listing. Descriptors without a modelId
// are dropped. Regions are recorded at most once per model, in the order the
// regions are merged.
func (m *Merger) AddRegion(region string, models []bedrock.ModelSummary) {
	for _, model := range models {
		if model.ModelID == "" {
			continue
		}

		rec, ok := m.byID[model.ModelID]
		if !ok {
			m.byID[model.ModelID] = &ModelRecord{
				ModelSummary: model,
				Regions:      []string{region},
			}
			m.order = append(m.order, model.ModelID)
			continue
		}

		if !containsRegion(rec.Regions, region) {
			rec.Regions = append(rec.Regions, region)
		}
	}
}

// Records returns the merged catalog in first-sighting order.
func (m *Merger) Records() []ModelRecord {
	out := make([]ModelRecord, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.byID[id])
	}
	return out
}

// Len returns the number of distinct models merged so far.
func (m *Merger) Len() int {
	return len(m.order)
}

func containsRegion(regions []string, region string) bool {
	for _, r := range regions {
		if r == region {
			return true
		}
	}
	return false
}

// FlattenProfiles annotates one region's profile listing with the region
// name. Each sighting stays a distinct record, in listing order.
func FlattenProfiles(region string, profiles []bedrock.ProfileSummary) []ProfileRecord {
	out := make([]ProfileRecord, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, ProfileRecord{ProfileSummary: p, Region: region})
	}
	return out
}
