package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/marketsim"
	"github.com/google/go-cmp/cmp"
)

// clearEnv makes sure no MARKETSIM_* variable leaks into or out of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MARKETSIM_CASH", "MARKETSIM_CURRENCY", "MARKETSIM_SEED", "MARKETSIM_TICK"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Cash != 1000 || cfg.Currency != "USD" {
		t.Errorf("Default() cash = %v %s, want 1000 USD", cfg.Cash, cfg.Currency)
	}
	if cfg.PriceRange != (PriceRange{Min: 50, Max: 200}) {
		t.Errorf("Default() price range = %v, want [50, 200]", cfg.PriceRange)
	}
	var symbols []string
	for _, inst := range cfg.Instruments {
		symbols = append(symbols, inst.Symbol+":"+inst.Tag)
	}
	if diff := cmp.Diff([]string{"AAPL:r", "GOOGL:g", "MSFT:b", "AMZN:y"}, symbols); diff != "" {
		t.Errorf("Default() instruments mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "marketsim.yaml"))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load() of a missing file mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, t.TempDir(), "marketsim.yaml", `
cash: 2500
currency: EUR
seed: 42
tick: 2s
price_range:
  min: 10
  max: 20
instruments:
  - symbol: BTC
    price: 30000
    tag: orange
  - symbol: eth
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	want := &Config{
		Cash:       2500,
		Currency:   "EUR",
		Seed:       42,
		Tick:       2 * time.Second,
		PriceRange: PriceRange{Min: 10, Max: 20},
		Instruments: []Instrument{
			{Symbol: "BTC", Price: 30000, Tag: "orange"},
			{Symbol: "eth"},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "marketsim.yaml", "cash: 2500\nseed: 1\n")
	writeFile(t, dir, ".env", "MARKETSIM_SEED=99\nMARKETSIM_TICK=500ms\n")
	t.Setenv("MARKETSIM_CASH", "750.5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Cash != 750.5 {
		t.Errorf("Cash = %v, want 750.5 from the environment", cfg.Cash)
	}
	if cfg.Seed != 99 || cfg.Tick != 500*time.Millisecond {
		t.Errorf("Seed, Tick = %d, %s, want 99, 500ms from .env", cfg.Seed, cfg.Tick)
	}
}

func TestLoad_ZeroCash(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, t.TempDir(), "marketsim.yaml", "cash: 0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Cash != 0 {
		t.Errorf("Cash = %v, want the configured 0", cfg.Cash)
	}
	if cfg.Currency != "USD" || len(cfg.Instruments) != 4 {
		t.Errorf("Load() = %+v, want defaults for the unset settings", cfg)
	}

	t.Setenv("MARKETSIM_CASH", "0")
	cfg, err = Load(filepath.Join(t.TempDir(), "marketsim.yaml"))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Cash != 0 {
		t.Errorf("Cash = %v, want 0 from the environment", cfg.Cash)
	}
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		yaml    string
		env     map[string]string
		wantErr string
	}{
		{"Bad YAML", "cash: [", nil, "parse config"},
		{"Unknown currency", "currency: ZZZ\n", nil, `unknown currency "ZZZ"`},
		{"Negative cash", "cash: -1\n", nil, "cash must not be negative"},
		{"Bad price range", "price_range: {min: 5, max: 1}\n", nil, "invalid price range"},
		{"Duplicate", "instruments: [{symbol: A}, {symbol: a}]\n", nil, "listed twice"},
		{"Missing symbol", "instruments: [{price: 3}]\n", nil, "has no symbol"},
		{"Negative price", "instruments: [{symbol: A, price: -3}]\n", nil, "negative price"},
		{"NaN cash", "cash: .nan\n", nil, "cash must be a finite amount"},
		{"Infinite cash", "cash: .inf\n", nil, "cash must be a finite amount"},
		{"NaN cash from env", "", map[string]string{"MARKETSIM_CASH": "NaN"}, "cash must be a finite amount"},
		{"NaN price range", "price_range: {min: .nan, max: 10}\n", nil, "invalid price range"},
		{"Infinite price range", "price_range: {min: 10, max: .inf}\n", nil, "invalid price range"},
		{"NaN price", "instruments: [{symbol: A, price: .nan}]\n", nil, "invalid price"},
		{"Bad seed", "", map[string]string{"MARKETSIM_SEED": "x"}, "Seed"},
		{"Bad tick", "", map[string]string{"MARKETSIM_TICK": "soon"}, "Tick"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			path := writeFile(t, t.TempDir(), "marketsim.yaml", tc.yaml)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestConfig_Listings(t *testing.T) {
	cfg := Default()
	cfg.Instruments[1].Price = 123
	got := cfg.Listings(marketsim.Sequence(60, 70, 80))
	want := []marketsim.Listing{
		{Symbol: "AAPL", Price: 60, Tag: "r"},
		{Symbol: "GOOGL", Price: 123, Tag: "g"},
		{Symbol: "MSFT", Price: 70, Tag: "b"},
		{Symbol: "AMZN", Price: 80, Tag: "y"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Listings() mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_NewMarket_Seeded(t *testing.T) {
	cfg := Default()
	cfg.Seed = 2024

	a, seed, err := cfg.NewMarket()
	if err != nil {
		t.Fatalf("NewMarket() returned error: %v", err)
	}
	if seed != 2024 {
		t.Errorf("seed = %d, want 2024", seed)
	}
	b, _, _ := cfg.NewMarket()
	for i := 0; i < 10; i++ {
		a.AdvanceAll()
		b.AdvanceAll()
	}
	for inst := range a.Instruments() {
		other, _ := b.Lookup(inst.Symbol())
		if diff := cmp.Diff(inst.History(), other.History()); diff != "" {
			t.Errorf("%s histories differ for the same seed (-a +b):\n%s", inst.Symbol(), diff)
		}
		if p := inst.History()[0]; p < 50 || p > 200 {
			t.Errorf("%s initial price %v outside [50, 200]", inst.Symbol(), p)
		}
	}
	if !a.Portfolio().Cash().Equal(marketsim.M(1000, "USD")) {
		t.Errorf("cash = %s, want $1,000.00", a.Portfolio().Cash())
	}
}

func TestConfig_NewMarket_Invalid(t *testing.T) {
	cfg := Default()
	cfg.Cash = math.NaN()
	if _, _, err := cfg.NewMarket(); err == nil {
		t.Error("NewMarket() with NaN cash succeeded, want an error")
	}
}

func TestConfig_YAML_RoundTrip(t *testing.T) {
	clearEnv(t)
	cfg := Default()
	cfg.Tick = 3 * time.Second
	data, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML() returned error: %v", err)
	}
	path := writeFile(t, t.TempDir(), "marketsim.yaml", string(data))
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v\n%s", err, data)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("YAML round trip mismatch (-want +got):\n%s", diff)
	}
}
