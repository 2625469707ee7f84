package srs

import (
	"github.com/phrazzld/lexis-api/internal/domain"
)

// Params defines all configurable parameters for the scheduling algorithm
type Params struct {
	// Ease factor floor; there is no ceiling
	MinEaseFactor float64

	// Starting ease factor per item kind
	DefaultEaseFactor map[domain.ItemKind]float64

	// Fixed intervals for the first two successful recalls
	FirstInterval  int
	SecondInterval int

	// Lowest quality counted as a successful recall
	PassingQuality Quality

	// Intervals strictly above FuzzMinInterval get ±FuzzRatio jitter
	FuzzMinInterval int
	FuzzRatio       float64

	// Hour of day every due time is aligned to
	DayStartHour int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
// Zero values keep the defaults.
type ParamsConfig struct {
	MinEaseFactor        float64
	VocabularyEaseFactor float64
	GrammarEaseFactor    float64
	FuzzMinInterval      int
	FuzzRatio            float64
	DayStartHour         int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor: 1.3,

		// Grammar cards start harder than vocabulary
		DefaultEaseFactor: map[domain.ItemKind]float64{
			domain.ItemKindVocabulary: 2.5,
			domain.ItemKindGrammar:    2.0,
		},

		FirstInterval:  1,
		SecondInterval: 6,

		PassingQuality: QualityRecalledHard,

		FuzzMinInterval: 4,
		FuzzRatio:       0.05,

		DayStartHour: 4,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.VocabularyEaseFactor > 0 {
		params.DefaultEaseFactor[domain.ItemKindVocabulary] = config.VocabularyEaseFactor
	}
	if config.GrammarEaseFactor > 0 {
		params.DefaultEaseFactor[domain.ItemKindGrammar] = config.GrammarEaseFactor
	}
	if config.FuzzMinInterval > 0 {
		params.FuzzMinInterval = config.FuzzMinInterval
	}
	if config.FuzzRatio > 0 {
		params.FuzzRatio = config.FuzzRatio
	}
	if config.DayStartHour > 0 && config.DayStartHour < 24 {
		params.DayStartHour = config.DayStartHour
	}

	return params
}

// InitialEaseFactor returns the starting ease factor for a new item of the given kind.
func (p *Params) InitialEaseFactor(kind domain.ItemKind) float64 {
	if ef, ok := p.DefaultEaseFactor[kind]; ok {
		return ef
	}
	return p.DefaultEaseFactor[domain.ItemKindVocabulary]
}
