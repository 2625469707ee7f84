package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	SRS      SRSConfig      `mapstructure:"srs" validate:"required"`
	Learner  LearnerConfig  `mapstructure:"learner" validate:"required"`
	Capture  CaptureConfig  `mapstructure:"capture"`
	Session  SessionConfig  `mapstructure:"session" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig selects and configures the storage backend.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver" validate:"required,oneof=postgres memory"`
	URL             string        `mapstructure:"url" validate:"required_if=Driver postgres,omitempty,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// SRSConfig tunes the scheduler and the learning-day boundary.
type SRSConfig struct {
	DayStartHour         int     `mapstructure:"day_start_hour" validate:"gte=1,lt=24"`
	MinEaseFactor        float64 `mapstructure:"min_ease_factor" validate:"gt=0"`
	VocabularyEaseFactor float64 `mapstructure:"vocabulary_ease_factor" validate:"gtefield=MinEaseFactor"`
	GrammarEaseFactor    float64 `mapstructure:"grammar_ease_factor" validate:"gtefield=MinEaseFactor"`
	FuzzMinInterval      int     `mapstructure:"fuzz_min_interval" validate:"gte=1"`
	FuzzRatio            float64 `mapstructure:"fuzz_ratio" validate:"gte=0,lt=1"`
	// Timezone is an IANA name; empty means the server's local zone.
	Timezone string `mapstructure:"timezone"`
}

// Location resolves Timezone.
func (c SRSConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid srs.timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// LearnerConfig holds the reward and goal settings.
type LearnerConfig struct {
	DefaultDailyGoal int `mapstructure:"default_daily_goal" validate:"gte=1,lte=1000"`
	GoalBonusPoints  int `mapstructure:"goal_bonus_points" validate:"gte=0"`
	StreakFreezeCost int `mapstructure:"streak_freeze_cost" validate:"gte=0"`
	MaxStreakFreezes int `mapstructure:"max_streak_freezes" validate:"gte=0"`
}

// CaptureConfig controls items arriving from the external capture workflow.
type CaptureConfig struct {
	// Test-sourced items scored below this land in the inbox.
	DeferBelowImportance int `mapstructure:"defer_below_importance" validate:"gte=0,lte=5"`
}

// SessionConfig controls session queue building.
type SessionConfig struct {
	ReviewsPerNewItem int `mapstructure:"reviews_per_new_item" validate:"gte=1"`
}
