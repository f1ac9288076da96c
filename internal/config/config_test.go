package config

import "testing"

func validConfig() Config {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Catalog: CatalogConfig{Path: "data/catalog.jsonl"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingCatalogPath(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.Path = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing catalog path")
	}
}

func TestValidate_MarginAboveThreshold(t *testing.T) {
	cfg := validConfig()
	cfg.Matching.ConfirmThreshold = 0.5
	cfg.Matching.MarginThreshold = 0.6

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error when margin exceeds confirm threshold")
	}
}

func TestValidate_ThresholdAboveOne(t *testing.T) {
	cfg := validConfig()
	cfg.Matching.ShortQueryThreshold = 1.2

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for threshold above 1.0")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("expected default embedding model, got %q", cfg.Embedding.Model)
	}
	if cfg.Embedding.TimeoutSec != 10 {
		t.Errorf("expected embedding TimeoutSec=10, got %d", cfg.Embedding.TimeoutSec)
	}
	if cfg.Matching.LexicalTopN != 200 {
		t.Errorf("expected LexicalTopN=200, got %d", cfg.Matching.LexicalTopN)
	}
	if cfg.Matching.ConfirmThreshold != 0.90 {
		t.Errorf("expected ConfirmThreshold=0.90, got %v", cfg.Matching.ConfirmThreshold)
	}
	if cfg.Matching.ShortQueryThreshold != 0.985 {
		t.Errorf("expected ShortQueryThreshold=0.985, got %v", cfg.Matching.ShortQueryThreshold)
	}
	if cfg.Matching.JamoFloor != 0.22 {
		t.Errorf("expected JamoFloor=0.22, got %v", cfg.Matching.JamoFloor)
	}
	if cfg.Matching.Weights.Vector != 0.65 {
		t.Errorf("expected Vector=0.65, got %v", cfg.Matching.Weights.Vector)
	}
	if cfg.Matching.Weights.Exact != 0.40 {
		t.Errorf("expected Exact=0.40, got %v", cfg.Matching.Weights.Exact)
	}
	if cfg.Matching.Weights.GenericPenalty != 0.20 {
		t.Errorf("expected GenericPenalty=0.20, got %v", cfg.Matching.Weights.GenericPenalty)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{ReadinessTimeout: 15},
		Matching: MatchingConfig{
			LexicalTopN:      100,
			ConfirmThreshold: 0.80,
			Weights:          WeightsConfig{Vector: 0.50},
		},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Matching.LexicalTopN != 100 {
		t.Errorf("expected LexicalTopN=100, got %d", cfg.Matching.LexicalTopN)
	}
	if cfg.Matching.ConfirmThreshold != 0.80 {
		t.Errorf("expected ConfirmThreshold=0.80, got %v", cfg.Matching.ConfirmThreshold)
	}
	if cfg.Matching.Weights.Vector != 0.50 {
		t.Errorf("expected Vector=0.50, got %v", cfg.Matching.Weights.Vector)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("MENULENS_TEST_KEY", "sk-abc")

	in := []byte("api_key: ${MENULENS_TEST_KEY}\nmodel: ${MENULENS_TEST_MODEL:-text-embedding-3-small}\n")
	out := string(expandEnvVars(in))

	want := "api_key: sk-abc\nmodel: text-embedding-3-small\n"
	if out != want {
		t.Errorf("unexpected expansion:\ngot:  %q\nwant: %q", out, want)
	}
}
