package main

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/randomizedcoder/traffic-signal/internal/config"
)

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := loadConfig("ex.config.toml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Name != "main-and-5th" {
		t.Fatalf("unexpected name: %q", cfg.Name)
	}
	if cfg.MinCycle != 4*time.Second || cfg.MaxCycle != 6*time.Second {
		t.Fatalf("unexpected cycle bounds: [%v, %v)", cfg.MinCycle, cfg.MaxCycle)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel)
	}
}

func TestLoadConfigDefaultWhenEmpty(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg != config.DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestRunFastSignal(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Name = "cmd-test"
	cfg.MinCycle = 5 * time.Millisecond
	cfg.MaxCycle = 10 * time.Millisecond
	cfg.Seed = 1

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- run(ctx, zerolog.Nop(), cfg, 3, 20*time.Millisecond)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after context ended")
	}
}
