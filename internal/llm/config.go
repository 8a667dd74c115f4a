// Package llm provides centralized LLM configuration and client abstractions
// for the generative steps of the mining pipeline: query expansion, relevance
// filtering, and profile summarization.
package llm

// ModelTier represents the complexity level of a model.
type ModelTier string

const (
	// TierLite is for cheap high-volume calls: relevance classification.
	TierLite ModelTier = "lite"
	// TierStandard is for moderate generation: query expansion, summaries.
	TierStandard ModelTier = "standard"
)

// Provider identifies an LLM provider.
type Provider string

// ProviderGemini is the Google Gemini provider, currently the only one wired.
const ProviderGemini Provider = "gemini"

// Config holds the model selection for the application.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// GetModel returns the model name for a tier, falling back to the standard
// tier when the requested one is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return ""
}
