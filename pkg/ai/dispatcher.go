package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	callDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "relato",
		Subsystem: "ai",
		Name:      "call_duration_seconds",
		Help:      "Duration of LLM provider calls",
	}, []string{"provider", "model"})

	callFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relato",
		Subsystem: "ai",
		Name:      "call_failures_total",
		Help:      "Number of failed LLM provider calls",
	}, []string{"provider", "model"})

	callTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relato",
		Subsystem: "ai",
		Name:      "call_tokens_total",
		Help:      "Tokens consumed by LLM provider calls",
	}, []string{"provider", "model", "kind"})
)

// CallOptions carries the per-call knobs of a dispatch.
type CallOptions struct {
	ModelID     string
	System      string
	Prompt      string
	Temperature float32
}

// DispatcherConfig configures the provider dispatcher.
type DispatcherConfig struct {
	// CallTimeout bounds each provider call so a slow provider cannot pin
	// a worker. Zero disables the bound.
	CallTimeout time.Duration
	// MaxOutputTokens is the desired completion cap; each call uses
	// min(MaxOutputTokens, provider hard cap).
	MaxOutputTokens int
	Logger          zerolog.Logger
}

// Dispatcher routes calls to the provider client registered for the
// resolved model and normalises every outcome into a CallResult. Expected
// provider failures never surface as errors or panics.
type Dispatcher struct {
	registry   *Registry
	calculator *Calculator
	clients    map[string]Client
	cfg        DispatcherConfig
	tracer     trace.Tracer
	logger     zerolog.Logger
}

// NewDispatcher builds a dispatcher over the given registry and calculator.
// Clients are registered per provider via RegisterClient; a provider left
// unregistered (for example because its credentials are absent) yields
// failed results rather than initialisation errors.
func NewDispatcher(registry *Registry, calculator *Calculator, cfg DispatcherConfig) *Dispatcher {
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 2048
	}

	return &Dispatcher{
		registry:   registry,
		calculator: calculator,
		clients:    make(map[string]Client),
		cfg:        cfg,
		tracer:     otel.Tracer("github.com/relato-ai/relato/pkg/ai"),
		logger:     cfg.Logger.With().Str("component", "ai_dispatcher").Logger(),
	}
}

// RegisterClient binds a provider identifier to a client. Registration
// happens once at process start; the dispatcher is read-only afterwards.
func (d *Dispatcher) RegisterClient(provider string, client Client) {
	d.clients[provider] = client
}

// HasProvider reports whether a client is registered for the provider.
func (d *Dispatcher) HasProvider(provider string) bool {
	_, ok := d.clients[provider]
	return ok
}

// Call resolves the model, dispatches to its provider, and returns a
// uniform result. On provider failure the result carries Success=false, a
// human-readable error and the best-effort prompt-token estimate; the
// monetary cost then covers prompt tokens only.
func (d *Dispatcher) Call(parent context.Context, opts CallOptions) CallResult {
	model := d.registry.Get(opts.ModelID)

	ctx, span := d.tracer.Start(parent, "ai.dispatch", trace.WithAttributes(
		attribute.String("provider", model.Provider),
		attribute.String("model", model.ID),
	))
	defer span.End()

	promptEstimate := CountTokens(opts.System+opts.Prompt, model)

	client, ok := d.clients[model.Provider]
	if !ok {
		message := fmt.Sprintf("provider %q is not configured for model %q", model.Provider, model.ID)
		span.SetStatus(codes.Error, message)
		callFailures.WithLabelValues(model.Provider, model.ID).Inc()
		d.logger.Warn().Str("provider", model.Provider).Str("model", model.ID).Msg("dispatch to unconfigured provider")
		return CallResult{
			Model:        model.ID,
			PromptTokens: promptEstimate,
			ErrorMessage: message,
		}
	}

	if d.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.CallTimeout)
		defer cancel()
	}

	maxTokens := d.cfg.MaxOutputTokens
	if hardCap := client.MaxOutputTokens(); hardCap > 0 && maxTokens > hardCap {
		maxTokens = hardCap
	}

	start := time.Now()
	resp, err := client.Complete(ctx, CompletionRequest{
		APIName:     model.APIName,
		System:      opts.System,
		Prompt:      opts.Prompt,
		Temperature: opts.Temperature,
		MaxTokens:   maxTokens,
	})
	callDuration.WithLabelValues(model.Provider, model.ID).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		callFailures.WithLabelValues(model.Provider, model.ID).Inc()
		d.logger.Warn().Err(err).Str("provider", model.Provider).Str("model", model.ID).Msg("provider call failed")

		cost, _ := d.calculator.MonetaryCost(model.ID, promptEstimate, 0)
		return CallResult{
			Model:        model.ID,
			PromptTokens: promptEstimate,
			MonetaryCost: cost,
			ErrorMessage: err.Error(),
		}
	}

	promptTokens := resp.PromptTokens
	if promptTokens <= 0 {
		promptTokens = promptEstimate
	}
	completionTokens := resp.CompletionTokens
	if completionTokens <= 0 {
		completionTokens = CountTokens(resp.Text, model)
	}

	callTokens.WithLabelValues(model.Provider, model.ID, "prompt").Add(float64(promptTokens))
	callTokens.WithLabelValues(model.Provider, model.ID, "completion").Add(float64(completionTokens))

	cost, _ := d.calculator.MonetaryCost(model.ID, promptTokens, completionTokens)
	return CallResult{
		Success:          true,
		Text:             resp.Text,
		Model:            model.ID,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		MonetaryCost:     cost,
	}
}
