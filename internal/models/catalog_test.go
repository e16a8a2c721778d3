package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	t.Run("contains the expected providers", func(t *testing.T) {
		cat := Catalog()

		require.Contains(t, cat, ProviderOpenAI)
		require.Contains(t, cat, ProviderAnthropic)
		require.Contains(t, cat, ProviderGemini)
		assert.Len(t, cat, 3)
	})

	t.Run("is stable across calls", func(t *testing.T) {
		assert.Equal(t, Catalog(), Catalog())
	})

	t.Run("every model has a display name", func(t *testing.T) {
		for provider, modelSet := range Catalog() {
			for model, name := range modelSet {
				assert.NotEmpty(t, name, "%s/%s", provider, model)
			}
		}
	})
}

func TestValidModel(t *testing.T) {
	t.Run("accepts every catalog pair", func(t *testing.T) {
		for provider, modelSet := range Catalog() {
			for model := range modelSet {
				assert.True(t, ValidModel(provider, model), "%s/%s", provider, model)
			}
		}
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		assert.False(t, ValidModel("mistral", "mistral-large"))
	})

	t.Run("rejects model under the wrong provider", func(t *testing.T) {
		assert.False(t, ValidModel(ProviderOpenAI, "gemini-1.5-pro"))
	})

	t.Run("rejects empty pair", func(t *testing.T) {
		assert.False(t, ValidModel("", ""))
	})
}

func TestModelName(t *testing.T) {
	assert.Equal(t, "GPT-4o", ModelName(ProviderOpenAI, "gpt-4o"))
	assert.Equal(t, "Claude 3.5 Haiku", ModelName(ProviderAnthropic, "claude-3-5-haiku-20241022"))
	assert.Equal(t, "", ModelName(ProviderOpenAI, "not-a-model"))
	assert.Equal(t, "", ModelName("nope", "gpt-4o"))
}
