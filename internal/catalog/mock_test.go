package catalog

import (
	"context"
	"sync"

	"github.com/modelwatch/bedrock-catalog/internal/bedrock"
)

// mockAPI implements bedrock.API for tests. modelErrs makes ListModels fail
// for a region on every call; failModelsOnCall fails only the nth call,
// which lets a region pass the probe and then fail the fetch.
type mockAPI struct {
	mu sync.Mutex

	regions    []string
	regionsErr error

	models           map[string][]bedrock.ModelSummary
	modelErrs        map[string]error
	failModelsOnCall map[string]int
	failModelsErr    error
	modelCalls       map[string]int

	profiles    map[string][]bedrock.ProfileSummary
	profileErrs map[string]error
}

func (m *mockAPI) ListRegions(ctx context.Context) ([]string, error) {
	if m.regionsErr != nil {
		return nil, m.regionsErr
	}
	return m.regions, nil
}

func (m *mockAPI) ListModels(ctx context.Context, region string) ([]bedrock.ModelSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.modelCalls == nil {
		m.modelCalls = make(map[string]int)
	}
	m.modelCalls[region]++

	if err, ok := m.modelErrs[region]; ok {
		return nil, err
	}
	if n, ok := m.failModelsOnCall[region]; ok && m.modelCalls[region] == n {
		return nil, m.failModelsErr
	}
	return m.models[region], nil
}

func (m *mockAPI) ListProfiles(ctx context.Context, region string) ([]bedrock.ProfileSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.profileErrs[region]; ok {
		return nil, err
	}
	return m.profiles[region], nil
}

func model(id, name, provider, status string) bedrock.ModelSummary {
	return bedrock.ModelSummary{
		ModelID:        id,
		ModelName:      name,
		ProviderName:   provider,
		ModelLifecycle: bedrock.ModelLifecycle{Status: status},
	}
}
