package config

import "testing"

func TestDefaultFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", " sk-abc ")
	t.Setenv("ASSISTANT_MODEL", "")
	t.Setenv("ASSISTANT_RATE_RPS", "")
	t.Setenv("ASSISTANT_RATE_BURST", "")

	cfg := DefaultFromEnv()
	if cfg.APIKey != "sk-abc" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.Model != ModelDefault {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.ResponsesURL != ResponsesURLDefault {
		t.Errorf("ResponsesURL = %q", cfg.ResponsesURL)
	}
	if cfg.Port != 8787 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.RateRPS != 5 || cfg.RateBurst != 10 {
		t.Errorf("rate defaults = %v/%v", cfg.RateRPS, cfg.RateBurst)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ASSISTANT_MODEL", "gpt-5-mini")
	t.Setenv("ASSISTANT_DEBUG", "yes")
	t.Setenv("ASSISTANT_RATE_RPS", "2.5")
	t.Setenv("ASSISTANT_RATE_BURST", "3")

	cfg := DefaultFromEnv()
	if cfg.Model != "gpt-5-mini" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if !cfg.Debug {
		t.Error("Debug should be set")
	}
	if cfg.RateRPS != 2.5 {
		t.Errorf("RateRPS = %v", cfg.RateRPS)
	}
	if cfg.RateBurst != 3 {
		t.Errorf("RateBurst = %d", cfg.RateBurst)
	}
}

func TestEnvNumericFallbacks(t *testing.T) {
	t.Setenv("ASSISTANT_RATE_RPS", "not-a-number")
	t.Setenv("ASSISTANT_RATE_BURST", "-1")

	cfg := DefaultFromEnv()
	if cfg.RateRPS != 5 {
		t.Errorf("RateRPS = %v, want default", cfg.RateRPS)
	}
	if cfg.RateBurst != 10 {
		t.Errorf("RateBurst = %d, want default", cfg.RateBurst)
	}
}
