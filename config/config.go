package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/epeers/tracker/internal/util"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	Port        string
	EIAKey      string
	RedisAddr   string
	LogLevel    string
	LogFormat   string
	CacheMaxAge int
	Tracker     Tracker
}

// Leg names one instrument: its futures symbol and its ground-truth spot series
type Leg struct {
	Name              string `yaml:"name"`
	FuturesSymbol     string `yaml:"futures_symbol"`
	GroundTruthSeries string `yaml:"ground_truth_series"`
}

// Tracker holds the parameters of the tracked question and the calibration
type Tracker struct {
	TargetDate             string   `yaml:"target_date"`
	InterpolationDeadline  string   `yaml:"interpolation_deadline"`
	BasisWindowDays        int      `yaml:"basis_window_days"`
	HalfLifeDays           float64  `yaml:"half_life_days"`
	GroundTruthLength      int      `yaml:"ground_truth_length"`
	DailyLookbackDays      int      `yaml:"daily_lookback_days"`
	IntradayDays           int      `yaml:"intraday_days"`
	IntradayInterval       string   `yaml:"intraday_interval"`
	StaleAfterBusinessDays int      `yaml:"stale_after_business_days"`
	Legs                   Legs     `yaml:"legs"`
	Currencies             []string `yaml:"currencies"`
}

// Legs are the two instruments; the spread is B minus A
type Legs struct {
	A Leg `yaml:"a"`
	B Leg `yaml:"b"`
}

// DefaultTracker returns the Brent/WTI March 2026 question parameters
func DefaultTracker() Tracker {
	return Tracker{
		TargetDate:             "2026-03-31",
		InterpolationDeadline:  "2026-04-14",
		BasisWindowDays:        10,
		HalfLifeDays:           3,
		GroundTruthLength:      400,
		DailyLookbackDays:      45,
		IntradayDays:           5,
		IntradayInterval:       "15m",
		StaleAfterBusinessDays: 5,
		Legs: Legs{
			A: Leg{Name: "wti", FuturesSymbol: "CL=F", GroundTruthSeries: "RWTC"},
			B: Leg{Name: "brent", FuturesSymbol: "BZ=F", GroundTruthSeries: "RBRTE"},
		},
		Currencies: []string{"EUR", "GBP", "JPY", "CNY", "CHF", "AUD", "CAD", "MXN"},
	}
}

// Load reads configuration from environment variables. A .env file, if
// present, fills in anything the environment does not set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		EIAKey:      os.Getenv("EIA_API_KEY"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		CacheMaxAge: 60,
		Tracker:     DefaultTracker(),
	}

	if v := os.Getenv("CACHE_MAX_AGE_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("CACHE_MAX_AGE_SECONDS must be a non-negative integer, got %q", v)
		}
		cfg.CacheMaxAge = n
	}

	if path := os.Getenv("TRACKER_CONFIG"); path != "" {
		if err := cfg.Tracker.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Tracker.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile overlays YAML values onto the current settings; absent keys keep their defaults.
func (t *Tracker) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read tracker config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, t); err != nil {
		return fmt.Errorf("failed to parse tracker config %s: %w", path, err)
	}
	return nil
}

// Validate checks dates and numeric bounds
func (t *Tracker) Validate() error {
	if !util.IsValidDate(t.TargetDate) {
		return fmt.Errorf("target_date %q must be YYYY-MM-DD", t.TargetDate)
	}
	if !util.IsValidDate(t.InterpolationDeadline) {
		return fmt.Errorf("interpolation_deadline %q must be YYYY-MM-DD", t.InterpolationDeadline)
	}
	if t.InterpolationDeadline < t.TargetDate {
		return fmt.Errorf("interpolation_deadline %s precedes target_date %s", t.InterpolationDeadline, t.TargetDate)
	}
	if t.BasisWindowDays < 1 {
		return fmt.Errorf("basis_window_days must be >= 1, got %d", t.BasisWindowDays)
	}
	if t.HalfLifeDays <= 0 {
		return fmt.Errorf("half_life_days must be > 0, got %g", t.HalfLifeDays)
	}
	if t.GroundTruthLength < t.BasisWindowDays {
		return fmt.Errorf("ground_truth_length %d is shorter than basis_window_days %d", t.GroundTruthLength, t.BasisWindowDays)
	}
	if t.DailyLookbackDays < 1 || t.IntradayDays < 1 {
		return fmt.Errorf("daily_lookback_days and intraday_days must be >= 1")
	}
	if strings.TrimSpace(t.IntradayInterval) == "" {
		return fmt.Errorf("intraday_interval is required")
	}
	if t.StaleAfterBusinessDays < 0 {
		return fmt.Errorf("stale_after_business_days must be >= 0")
	}
	for _, leg := range []Leg{t.Legs.A, t.Legs.B} {
		if leg.Name == "" || leg.FuturesSymbol == "" || leg.GroundTruthSeries == "" {
			return fmt.Errorf("leg %+v needs name, futures_symbol and ground_truth_series", leg)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
