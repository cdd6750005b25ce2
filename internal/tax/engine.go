package tax

import (
	"context"
	"log/slog"
	"time"

	"github.com/okkersen/skatt/internal/domain"
	"github.com/okkersen/skatt/internal/telemetry"
)

// Engine is the full rule-based tax calculator. It holds no mutable state
// between calls; concurrent calculations need no coordination.
type Engine struct {
	rules    RuleRepository
	classes  ClassRepository
	settings Settings
	logger   *slog.Logger
	metrics  *telemetry.TaxMetrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics enables calculation metrics.
func WithMetrics(m *telemetry.TaxMetrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine creates a rule-based tax calculation engine.
func NewEngine(rules RuleRepository, classes ClassRepository, settings Settings, opts ...Option) *Engine {
	e := &Engine{
		rules:    rules,
		classes:  classes,
		settings: settings,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Calculate implements Calculator.
func (e *Engine) Calculate(ctx context.Context, quote *domain.QuoteDetails, storeID string) (*domain.TaxDetails, error) {
	st := e.settings.ForStore(storeID)
	start := time.Now()

	details, err := e.calculate(ctx, quote, st)

	if e.metrics != nil {
		status := "ok"
		if err != nil {
			status = domain.ErrorCode(err)
		}
		e.metrics.CalculationsTotal.WithLabelValues(string(st.Algorithm), status).Inc()
		e.metrics.CalculationDuration.WithLabelValues(string(st.Algorithm)).Observe(time.Since(start).Seconds())
		if quote != nil {
			e.metrics.QuoteItems.Observe(float64(len(quote.Items)))
		}
	}

	return details, err
}

func (e *Engine) calculate(ctx context.Context, quote *domain.QuoteDetails, st StoreSettings) (*domain.TaxDetails, error) {
	const op = "tax.calculate"

	if quote == nil {
		return nil, domain.Errorf(domain.EINVALID, op, "quote is required")
	}
	if err := quote.Validate(); err != nil {
		return nil, err
	}

	items := normalize(quote)
	resolver := &rateResolver{rules: e.rules}
	classes := newClassResolver(e.classes)

	// Resolve the quote's customer class once; every item shares it.
	customerID, customerOK, err := classes.resolve(ctx, domain.CustomerClass, quote.CustomerTaxClass)
	if err != nil {
		return nil, err
	}

	addr := quote.TaxAddress()
	if addr == nil {
		addr = &domain.Address{Country: st.DefaultCountry, Region: st.DefaultRegion}
	}

	zeroRate := 0
	for _, it := range items {
		if it.container {
			continue
		}

		// A declared class that fails to resolve errors out; an omitted
		// class means the item is simply non-taxable.
		productID, productOK, err := classes.resolve(ctx, domain.ProductClass, it.src.TaxClass)
		if err != nil {
			return nil, err
		}
		if st.Exempt || !customerOK || !productOK {
			continue
		}

		rates, err := resolver.resolve(ctx, *addr, customerID, productID)
		if err != nil {
			return nil, err
		}
		if len(rates) == 0 {
			zeroRate++
			continue
		}

		it.tiers = composeTiers(rates)
		it.effective = effectivePercent(it.tiers)
	}

	strategyFor(st.Algorithm).apply(items)

	details, err := aggregate(items)
	if err != nil {
		return nil, err
	}

	if e.metrics != nil && zeroRate > 0 {
		e.metrics.ZeroRateItems.Add(float64(zeroRate))
	}
	e.logger.Debug("tax calculation complete",
		slog.String("algorithm", string(st.Algorithm)),
		slog.Int("items", len(items)),
		slog.String("subtotal", details.Subtotal.String()),
		slog.String("tax_amount", details.TaxAmount.String()),
	)

	return details, nil
}
