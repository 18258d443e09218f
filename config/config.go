// Package config loads the settings of a simulation session.
//
// Settings start from defaults that reproduce the reference game (four
// instruments priced between 50 and 200 and 1000 USD), then a YAML file
// overrides them, then the environment (a .env file next to the YAML file is
// loaded first).
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/caarlos0/env/v10"
	"github.com/etnz/marketsim"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Instrument configures one listed instrument.
type Instrument struct {
	Symbol string  `yaml:"symbol"`
	Price  float64 `yaml:"price,omitempty"` // 0 draws the price from the price range
	Tag    string  `yaml:"tag,omitempty"`
}

// PriceRange bounds the initial prices that are drawn at random.
type PriceRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Config holds all session settings.
type Config struct {
	Cash        float64       `yaml:"cash" env:"MARKETSIM_CASH"`
	Currency    string        `yaml:"currency" env:"MARKETSIM_CURRENCY"`
	Seed        uint64        `yaml:"seed,omitempty" env:"MARKETSIM_SEED"` // 0 picks a new seed for every session
	Tick        time.Duration `yaml:"tick,omitempty" env:"MARKETSIM_TICK"` // 0 disables automatic days
	PriceRange  PriceRange    `yaml:"price_range"`
	Instruments []Instrument  `yaml:"instruments"`
}

// Default returns the reference game settings.
func Default() *Config {
	return &Config{
		Cash:       1000,
		Currency:   "USD",
		PriceRange: PriceRange{Min: 50, Max: 200},
		Instruments: []Instrument{
			{Symbol: "AAPL", Tag: "r"},
			{Symbol: "GOOGL", Tag: "g"},
			{Symbol: "MSFT", Tag: "b"},
			{Symbol: "AMZN", Tag: "y"},
		},
	}
}

// Load reads the config file at path over the defaults, applies environment
// overrides, and validates the result.
//
// Settings present in the file or the environment always win, even when they
// are zero.
//
// A missing file is not an error: the defaults are used instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	// the .env file is optional.
	_ = godotenv.Load(filepath.Join(filepath.Dir(path), ".env"))

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	cfg.Currency = strings.ToUpper(cfg.Currency)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs error
	switch {
	case !finite(c.Cash):
		errs = errors.Join(errs, fmt.Errorf("cash must be a finite amount, got %v", c.Cash))
	case c.Cash < 0:
		errs = errors.Join(errs, fmt.Errorf("cash must not be negative, got %v", c.Cash))
	}
	if money.GetCurrency(c.Currency) == nil {
		errs = errors.Join(errs, fmt.Errorf("unknown currency %q", c.Currency))
	}
	if c.Tick < 0 {
		errs = errors.Join(errs, fmt.Errorf("tick must not be negative, got %s", c.Tick))
	}
	if !finite(c.PriceRange.Min) || !finite(c.PriceRange.Max) || c.PriceRange.Min <= 0 || c.PriceRange.Max < c.PriceRange.Min {
		errs = errors.Join(errs, fmt.Errorf("invalid price range [%v, %v]", c.PriceRange.Min, c.PriceRange.Max))
	}
	if len(c.Instruments) == 0 {
		errs = errors.Join(errs, errors.New("no instruments"))
	}
	seen := make(map[string]bool)
	for i, inst := range c.Instruments {
		symbol := strings.ToUpper(strings.TrimSpace(inst.Symbol))
		switch {
		case symbol == "":
			errs = errors.Join(errs, fmt.Errorf("instrument #%d has no symbol", i+1))
		case seen[symbol]:
			errs = errors.Join(errs, fmt.Errorf("instrument %s is listed twice", symbol))
		}
		seen[symbol] = true
		switch {
		case !finite(inst.Price):
			errs = errors.Join(errs, fmt.Errorf("instrument %s has an invalid price %v", inst.Symbol, inst.Price))
		case inst.Price < 0:
			errs = errors.Join(errs, fmt.Errorf("instrument %s has a negative price %v", inst.Symbol, inst.Price))
		}
	}
	return errs
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// NewSource returns the random source of a session and the seed it uses.
func (c *Config) NewSource() (marketsim.Source, uint64) {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return marketsim.NewSource(seed), seed
}

// Listings resolves the instruments to list, drawing the missing initial
// prices from src.
func (c *Config) Listings(src marketsim.Source) []marketsim.Listing {
	listings := make([]marketsim.Listing, 0, len(c.Instruments))
	for _, inst := range c.Instruments {
		price := inst.Price
		if price == 0 {
			price = src.Uniform(c.PriceRange.Min, c.PriceRange.Max)
		}
		listings = append(listings, marketsim.Listing{Symbol: inst.Symbol, Price: price, Tag: inst.Tag})
	}
	return listings
}

// NewMarket opens a market on a fresh source. It returns the seed, so that
// the session can be replayed.
func (c *Config) NewMarket() (*marketsim.Market, uint64, error) {
	if err := c.Validate(); err != nil {
		return nil, 0, err
	}
	src, seed := c.NewSource()
	m, err := marketsim.NewMarket(c.Listings(src), marketsim.M(c.Cash, c.Currency), src)
	if err != nil {
		return nil, seed, fmt.Errorf("cannot open market: %w", err)
	}
	return m, seed, nil
}

// YAML returns the config as a YAML document.
func (c *Config) YAML() ([]byte, error) { return yaml.Marshal(c) }
