package srs

import (
	"testing"

	"github.com/phrazzld/lexis-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewDefaultParams(t *testing.T) {
	t.Parallel()

	p := NewDefaultParams()
	assert.Equal(t, 1.3, p.MinEaseFactor)
	assert.Equal(t, 2.5, p.InitialEaseFactor(domain.ItemKindVocabulary))
	assert.Equal(t, 2.0, p.InitialEaseFactor(domain.ItemKindGrammar))
	assert.Equal(t, 1, p.FirstInterval)
	assert.Equal(t, 6, p.SecondInterval)
	assert.Equal(t, 4, p.FuzzMinInterval)
	assert.Equal(t, 0.05, p.FuzzRatio)
	assert.Equal(t, 4, p.DayStartHour)
}

func TestNewParamsOverrides(t *testing.T) {
	t.Parallel()

	p := NewParams(ParamsConfig{
		VocabularyEaseFactor: 2.4,
		GrammarEaseFactor:    2.1,
		FuzzRatio:            0.1,
		DayStartHour:         5,
	})
	assert.Equal(t, 2.4, p.InitialEaseFactor(domain.ItemKindVocabulary))
	assert.Equal(t, 2.1, p.InitialEaseFactor(domain.ItemKindGrammar))
	assert.Equal(t, 0.1, p.FuzzRatio)
	assert.Equal(t, 5, p.DayStartHour)
	assert.Equal(t, 1.3, p.MinEaseFactor, "unset fields keep defaults")

	p = NewParams(ParamsConfig{DayStartHour: 30})
	assert.Equal(t, 4, p.DayStartHour, "out of range hour is ignored")
}

func TestInitialEaseFactorUnknownKind(t *testing.T) {
	t.Parallel()

	p := NewDefaultParams()
	assert.Equal(t, 2.5, p.InitialEaseFactor(domain.ItemKind("idiom")))
}
