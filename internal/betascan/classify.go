// Package betascan classifies catalog models as documented or beta by
// searching for their display names in a public documentation snapshot.
package betascan

import (
	"sort"
	"strings"

	"github.com/modelwatch/bedrock-catalog/internal/catalog"
)

// Model is the reduced record kept for classification output.
type Model struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// Result partitions the non-LEGACY catalog into documented and beta models.
type Result struct {
	Found []Model
	Beta  []Model
}

// Classify tests each catalog model's display name against the decoded
// documentation text: an exact-case substring match first, then a
// case-insensitive one. Models matched by neither are beta. LEGACY models
// are excluded from both partitions. An empty model name would trivially
// match any document, so it is never treated as found.
func Classify(models []catalog.ModelRecord, doc string) Result {
	docLower := strings.ToLower(doc)

	var res Result
	for _, m := range models {
		if m.IsLegacy() {
			continue
		}

		entry := Model{
			ID:       m.ModelID,
			Name:     m.ModelName,
			Provider: m.ProviderName,
		}

		if m.ModelName == "" {
			res.Beta = append(res.Beta, entry)
			continue
		}

		if strings.Contains(doc, m.ModelName) ||
			strings.Contains(docLower, strings.ToLower(m.ModelName)) {
			res.Found = append(res.Found, entry)
		} else {
			res.Beta = append(res.Beta, entry)
		}
	}

	sortModels(res.Found)
	sortModels(res.Beta)
	return res
}

// sortModels orders by provider then name for deterministic reporting.
func sortModels(models []Model) {
	sort.SliceStable(models, func(i, j int) bool {
		if models[i].Provider != models[j].Provider {
			return models[i].Provider < models[j].Provider
		}
		return models[i].Name < models[j].Name
	})
}

// GroupByProvider buckets models by provider, returning the sorted provider
// names alongside the buckets.
func GroupByProvider(models []Model) ([]string, map[string][]Model) {
	byProvider := make(map[string][]Model)
	for _, m := range models {
		byProvider[m.Provider] = append(byProvider[m.Provider], m)
	}

	providers := make([]string, 0, len(byProvider))
	for p := range byProvider {
		providers = append(providers, p)
	}
	sort.Strings(providers)

	return providers, byProvider
}
