// Package llm holds the generative model client used to proofread resume text.
package llm

// ModelTier selects between a cheap model for short fields and a stronger one
// for long prose.
type ModelTier string

const (
	// TierLite is used for names, titles and other short fields.
	TierLite ModelTier = "lite"
	// TierStandard is used for summaries and descriptions.
	TierStandard ModelTier = "standard"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider.
const ProviderGemini Provider = "gemini"

// Config holds the model configuration.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// Temperature is kept at zero so the same input gives the same correction.
	Temperature float32
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

// GetModel returns the model name for a given tier, falling back to the
// standard and then the lite model.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of c with every tier using model. An empty model
// returns c unchanged.
func (c *Config) WithModel(model string) *Config {
	if model == "" {
		return c
	}
	out := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)),
		Temperature: c.Temperature,
	}
	for tier := range c.Models {
		out.Models[tier] = model
	}
	if len(out.Models) == 0 {
		out.Models[TierStandard] = model
	}
	return out
}

// TierFor picks the tier for a piece of text by its length.
func TierFor(text string) ModelTier {
	if len(text) > 120 {
		return TierStandard
	}
	return TierLite
}
