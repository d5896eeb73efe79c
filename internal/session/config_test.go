package session

import "testing"

func TestValidateRejectsNonPowerOfTwoFrameSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameSize = 1000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for non-power-of-two frame size")
	}
}

func TestValidateRejectsLowOverlapRatio(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OverlapRatio = 2
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for overlap ratio below 4")
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "not-a-backend"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown backend")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}
