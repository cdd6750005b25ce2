package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/okkersen/skatt/internal"
	"github.com/okkersen/skatt/internal/domain"
	"github.com/okkersen/skatt/internal/tax"
)

// request is the offline calculation input: the rule set to calculate
// against plus the quote itself. Production callers embed the engine and
// bring their own repositories; this tool exists for support and for
// replaying rounding questions against a known rule set.
type request struct {
	Classes []domain.TaxClass   `json:"classes"`
	Rules   []domain.TaxRule    `json:"rules"`
	Quote   domain.QuoteDetails `json:"quote"`
	StoreID string              `json:"store_id"`
}

func run() error {
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := internal.NewLogger(os.Stderr, cfg.Env, cfg.LogLevel)

	in := os.Stdin
	if len(os.Args) > 1 && os.Args[1] != "-" {
		f, err := os.Open(os.Args[1])
		if err != nil {
			return fmt.Errorf("opening request file: %w", err)
		}
		defer f.Close()
		in = f
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading request: %w", err)
	}

	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}

	store := tax.NewMemoryStore()
	for _, c := range req.Classes {
		store.AddClass(c)
	}
	for _, r := range req.Rules {
		store.AddRule(r)
	}

	engine := tax.NewEngine(store, store, cfg.TaxSettings(), tax.WithLogger(logger))

	details, err := engine.Calculate(context.Background(), &req.Quote, req.StoreID)
	if err != nil {
		logger.Error("calculation failed",
			"op", domain.ErrorOp(err),
			"code", domain.ErrorCode(err),
			"error", err,
		)
		return err
	}

	out, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
