package main

import (
	"testing"

	"github.com/atomicstack/accessible-autocomplete/internal/app"
	"github.com/atomicstack/accessible-autocomplete/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestHasTerminalNeedsStdinAndStderr(t *testing.T) {
	info := ttyDetails{Probes: []ttyProbeResult{
		{Name: "stdin", IsTerminal: true},
		{Name: "stdout"},
		{Name: "stderr"},
	}}
	if hasTerminal(info) {
		t.Fatalf("expected stderr to be required")
	}
	info.Probes[2].IsTerminal = true
	if !hasTerminal(info) {
		t.Fatalf("expected a piped stdout to be fine")
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			ID:         "country",
			Mode:       app.ModeTUI,
			Source:     "countries.yaml",
			Width:      80,
			Height:     24,
			ShowFooter: true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		File: "autocomplete.toml",
		Flags: map[string]string{
			"source": "countries.yaml",
			"width":  "80",
			"height": "24",
			"footer": "true",
			"id":     "country",
		},
		Args: []string{"--source", "countries.yaml"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["source"] != "countries.yaml" {
		t.Fatalf("expected source flag %q, got %v", "countries.yaml", flagsValue["source"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["height"] != "24" {
		t.Fatalf("expected height 24, got %v", flagsValue["height"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["id"] != "country" {
		t.Fatalf("expected id flag country, got %v", flagsValue["id"])
	}
	if payload["file"] != "autocomplete.toml" {
		t.Fatalf("expected config file in payload, got %v", payload["file"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}
