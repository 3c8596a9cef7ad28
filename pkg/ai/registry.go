package ai

// Provider identifiers used to route dispatcher calls.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// ModelConfig describes one model the platform can call: which provider
// serves it, the name the provider's API expects, its context window and
// its per-1K-token prices in dollars. Entries are immutable after load.
type ModelConfig struct {
	ID                  string
	Provider            string
	APIName             string
	ContextWindowTokens int
	InputCostPer1K      float64
	OutputCostPer1K     float64
	Available           bool
}

// HasPricing reports whether any price is known for the model.
func (m ModelConfig) HasPricing() bool {
	return m.InputCostPer1K > 0 || m.OutputCostPer1K > 0
}

// Registry resolves model ids to configurations. Lookups never fail:
// unknown ids fall back to the configured default model, then to the first
// available entry, because cost and token estimation must not hard-fail an
// orchestration run.
type Registry struct {
	models    map[string]ModelConfig
	order     []string
	defaultID string
}

// NewRegistry builds a registry from the given configurations, preserving
// their order for the first-available fallback.
func NewRegistry(defaultID string, configs []ModelConfig) *Registry {
	r := &Registry{
		models:    make(map[string]ModelConfig, len(configs)),
		order:     make([]string, 0, len(configs)),
		defaultID: defaultID,
	}
	for _, cfg := range configs {
		if _, exists := r.models[cfg.ID]; exists {
			continue
		}
		r.models[cfg.ID] = cfg
		r.order = append(r.order, cfg.ID)
	}
	return r
}

// Get returns the configuration for the given model id, the default model
// when the id is unknown, or the first available entry when the default is
// missing too. It always returns a usable entry for a non-empty registry.
func (r *Registry) Get(modelID string) ModelConfig {
	if cfg, ok := r.models[modelID]; ok && cfg.Available {
		return cfg
	}
	if cfg, ok := r.models[r.defaultID]; ok && cfg.Available {
		return cfg
	}
	for _, id := range r.order {
		if cfg := r.models[id]; cfg.Available {
			return cfg
		}
	}
	if len(r.order) > 0 {
		return r.models[r.order[0]]
	}
	return ModelConfig{}
}

// All returns the registered configurations in registration order.
func (r *Registry) All() []ModelConfig {
	configs := make([]ModelConfig, 0, len(r.order))
	for _, id := range r.order {
		configs = append(configs, r.models[id])
	}
	return configs
}

// DefaultModels is the built-in model table. Deployments can override the
// default model id through configuration; prices are dollars per 1K tokens.
func DefaultModels() []ModelConfig {
	return []ModelConfig{
		{ID: "gpt-4o", Provider: ProviderOpenAI, APIName: "gpt-4o", ContextWindowTokens: 128000, InputCostPer1K: 0.0025, OutputCostPer1K: 0.01, Available: true},
		{ID: "gpt-4o-mini", Provider: ProviderOpenAI, APIName: "gpt-4o-mini", ContextWindowTokens: 128000, InputCostPer1K: 0.00015, OutputCostPer1K: 0.0006, Available: true},
		{ID: "gpt-3.5-turbo", Provider: ProviderOpenAI, APIName: "gpt-3.5-turbo", ContextWindowTokens: 16385, InputCostPer1K: 0.0005, OutputCostPer1K: 0.0015, Available: true},
		{ID: "claude-3-5-sonnet", Provider: ProviderAnthropic, APIName: "claude-3-5-sonnet-20241022", ContextWindowTokens: 200000, InputCostPer1K: 0.003, OutputCostPer1K: 0.015, Available: true},
		{ID: "claude-3-5-haiku", Provider: ProviderAnthropic, APIName: "claude-3-5-haiku-20241022", ContextWindowTokens: 200000, InputCostPer1K: 0.0008, OutputCostPer1K: 0.004, Available: true},
	}
}
