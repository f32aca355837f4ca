// Package llm provides the LLM client abstraction shared by all scoring agents.
// Every agent talks to its backend through Client so tests (and future
// providers) can swap the implementation without touching the scheduler or
// the aggregator.
package llm

// ModelTier represents the reasoning depth required by an agent.
type ModelTier string

const (
	// TierAnalyst is for the Layer-1 analysts and the fairness auditor:
	// structured JSON extraction over a bounded context.
	TierAnalyst ModelTier = "analyst"
	// TierReferee is for the final decision narrative, which reasons over
	// every prior output.
	TierReferee ModelTier = "referee"
)

// Provider represents an LLM provider.
type Provider string

// Supported providers.
const (
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini).
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierAnalyst: "gemini-2.5-flash",
			TierReferee: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier, falling back to the
// analyst model when the tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierAnalyst]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string, len(c.Models)),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
