// Package config resolves pipeline configuration from flags,
// environment variables and the config file via viper.
package config

import (
	"fmt"
	"runtime"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/appealworks/giftmatch/internal/common"
)

// Viper keys recognized by the pipeline.
const (
	KeyEnableFuzzy    = "matching.enable_fuzzy"
	KeyFuzzyThreshold = "matching.fuzzy_threshold"
	KeySuggestions    = "matching.suggestions"
	KeyCostPerContact = "metrics.cost_per_contact"
)

// Pipeline holds every knob the reconciliation pipeline recognizes.
// Stages receive it explicitly; there is no global state.
type Pipeline struct {
	// EnableFuzzy gates the fuzzy fallback stage entirely.
	EnableFuzzy bool
	// FuzzyThreshold is the maximum accepted combined edit distance.
	// A candidate at exactly the threshold is rejected.
	FuzzyThreshold float64
	// Suggestions includes the fuzzy best-candidate table in results.
	Suggestions bool
	// CostPerContact is the campaign cost of one mailed contact.
	CostPerContact decimal.Decimal
	// Workers bounds the parallel fuzzy scoring goroutines.
	Workers int
}

// Default returns the documented defaults: fuzzy off, threshold of 5
// combined edit-distance units, suggestions off, $3 per mailed contact.
func Default() Pipeline {
	return Pipeline{
		EnableFuzzy:    false,
		FuzzyThreshold: 5,
		Suggestions:    false,
		CostPerContact: decimal.NewFromInt(3),
		Workers:        runtime.NumCPU(),
	}
}

// SetDefaults registers the pipeline defaults with viper so config
// files and environment variables only need to name what they change.
func SetDefaults() {
	viper.SetDefault(KeyEnableFuzzy, false)
	viper.SetDefault(KeyFuzzyThreshold, 5.0)
	viper.SetDefault(KeySuggestions, false)
	viper.SetDefault(KeyCostPerContact, 3.0)
}

// FromViper builds a validated Pipeline from the resolved viper state.
func FromViper() (Pipeline, error) {
	cfg := Default()
	cfg.EnableFuzzy = viper.GetBool(KeyEnableFuzzy)
	cfg.FuzzyThreshold = viper.GetFloat64(KeyFuzzyThreshold)
	cfg.Suggestions = viper.GetBool(KeySuggestions)
	cfg.CostPerContact = decimal.NewFromFloat(viper.GetFloat64(KeyCostPerContact))
	return cfg, cfg.Validate()
}

// Validate rejects settings the pipeline cannot run with.
func (p Pipeline) Validate() error {
	if p.FuzzyThreshold < 0 {
		return fmt.Errorf("%w: fuzzy threshold must not be negative, got %v", common.ErrInvalidConfig, p.FuzzyThreshold)
	}
	if p.CostPerContact.IsNegative() {
		return fmt.Errorf("%w: cost per contact must not be negative, got %s", common.ErrInvalidConfig, p.CostPerContact)
	}
	if p.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", common.ErrInvalidConfig, p.Workers)
	}
	return nil
}
