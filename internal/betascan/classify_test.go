package betascan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelwatch/bedrock-catalog/internal/bedrock"
	"github.com/modelwatch/bedrock-catalog/internal/catalog"
)

func record(id, name, provider, status string) catalog.ModelRecord {
	return catalog.ModelRecord{
		ModelSummary: bedrock.ModelSummary{
			ModelID:        id,
			ModelName:      name,
			ProviderName:   provider,
			ModelLifecycle: bedrock.ModelLifecycle{Status: status},
		},
	}
}

func TestClassify_ExactMatchIsFound(t *testing.T) {
	models := []catalog.ModelRecord{
		record("anthropic.claude-3-opus", "Claude 3 Opus", "Anthropic", "ACTIVE"),
		record("anthropic.claude-4-opus", "Claude 4 Opus", "Anthropic", "ACTIVE"),
	}
	doc := "...Claude 3 Opus is available..."

	res := Classify(models, doc)

	require.Len(t, res.Found, 1)
	assert.Equal(t, "Claude 3 Opus", res.Found[0].Name)
	require.Len(t, res.Beta, 1)
	assert.Equal(t, "Claude 4 Opus", res.Beta[0].Name)
}

func TestClassify_CaseInsensitiveFallback(t *testing.T) {
	models := []catalog.ModelRecord{
		record("x.model-x", "MODEL-X", "X", "ACTIVE"),
	}
	doc := "pricing for model-x applies"

	res := Classify(models, doc)

	require.Len(t, res.Found, 1)
	assert.Empty(t, res.Beta)
}

func TestClassify_LegacyExcludedFromBothPartitions(t *testing.T) {
	models := []catalog.ModelRecord{
		record("old.documented", "Documented Oldie", "P", "LEGACY"),
		record("old.undocumented", "Vanished Oldie", "P", "LEGACY"),
		record("new.active", "Fresh Model", "P", "ACTIVE"),
	}
	doc := "Documented Oldie"

	res := Classify(models, doc)

	for _, m := range append(res.Found, res.Beta...) {
		assert.NotContains(t, []string{"old.documented", "old.undocumented"}, m.ID)
	}
	require.Len(t, res.Beta, 1)
	assert.Equal(t, "new.active", res.Beta[0].ID)
}

func TestClassify_EmptyNameIsAlwaysBeta(t *testing.T) {
	models := []catalog.ModelRecord{
		record("mystery.model", "", "P", "ACTIVE"),
	}

	// The empty string is a substring of everything; the guard must keep
	// this out of found regardless of the document.
	res := Classify(models, "any document at all")

	assert.Empty(t, res.Found)
	require.Len(t, res.Beta, 1)
	assert.Equal(t, "mystery.model", res.Beta[0].ID)
}

func TestClassify_SortsByProviderThenName(t *testing.T) {
	models := []catalog.ModelRecord{
		record("3", "Zeta", "Beta Corp", "ACTIVE"),
		record("1", "Alpha", "Beta Corp", "ACTIVE"),
		record("2", "Mid", "Acme", "ACTIVE"),
	}

	res := Classify(models, "")

	require.Len(t, res.Beta, 3)
	assert.Equal(t, "Mid", res.Beta[0].Name)
	assert.Equal(t, "Alpha", res.Beta[1].Name)
	assert.Equal(t, "Zeta", res.Beta[2].Name)
}

func TestClassify_EmptyCatalog(t *testing.T) {
	res := Classify(nil, "whatever")
	assert.Empty(t, res.Found)
	assert.Empty(t, res.Beta)
}

func TestGroupByProvider(t *testing.T) {
	models := []Model{
		{ID: "1", Name: "A", Provider: "Zeta"},
		{ID: "2", Name: "B", Provider: "Acme"},
		{ID: "3", Name: "C", Provider: "Zeta"},
	}

	providers, byProvider := GroupByProvider(models)

	assert.Equal(t, []string{"Acme", "Zeta"}, providers)
	assert.Len(t, byProvider["Zeta"], 2)
	assert.Len(t, byProvider["Acme"], 1)
}
