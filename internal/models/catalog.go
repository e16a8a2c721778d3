package models

// Supported AI providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// catalog maps provider → model id → display name. It is loaded once and
// read-only at runtime; callers must not modify the returned maps.
var catalog = map[string]map[string]string{
	ProviderOpenAI: {
		"gpt-4o":      "GPT-4o",
		"gpt-4.1":     "GPT-4.1",
		"gpt-4o-mini": "GPT-4o Mini",
		"o3-mini":     "O3 Mini",
	},
	ProviderAnthropic: {
		"claude-sonnet-4-20250514":   "Claude Sonnet 4",
		"claude-3-5-sonnet-20241022": "Claude 3.5 Sonnet",
		"claude-3-5-haiku-20241022":  "Claude 3.5 Haiku",
	},
	ProviderGemini: {
		"gemini-2.0-flash": "Gemini 2.0 Flash",
		"gemini-1.5-pro":   "Gemini 1.5 Pro",
		"gemini-1.5-flash": "Gemini 1.5 Flash",
	},
}

// Catalog returns the full provider → model → display name mapping.
func Catalog() map[string]map[string]string {
	return catalog
}

// ValidModel reports whether model is a known model of provider.
func ValidModel(provider, model string) bool {
	models, ok := catalog[provider]
	if !ok {
		return false
	}
	_, ok = models[model]
	return ok
}

// ModelName returns the display name for a (provider, model) pair, or ""
// when the pair is not in the catalog.
func ModelName(provider, model string) string {
	return catalog[provider][model]
}
