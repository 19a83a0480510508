package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/docsmith/config"
)

func TestHolder_LazyCurrent(t *testing.T) {
	chdir(t, t.TempDir())
	h := config.NewHolder(zerolog.Nop())

	first := h.Current()
	if first == nil {
		t.Fatal("Current returned nil")
	}
	if first.Output != "docs" {
		t.Errorf("lazy config Output = %s, want docs", first.Output)
	}
	if second := h.Current(); second != first {
		t.Error("Current should return the same instance until replaced")
	}
}

func TestHolder_SetAndReset(t *testing.T) {
	chdir(t, t.TempDir())
	h := config.NewHolder(zerolog.Nop())

	cfg := config.New()
	cfg.ModuleName = "MyLib"
	h.Set(cfg)

	if h.Current() != cfg {
		t.Error("Current != Set config")
	}

	h.Reset()
	fresh := h.Current()
	if fresh == cfg {
		t.Error("Reset should discard the previous config")
	}
	if fresh.ModuleName != "" {
		t.Errorf("fresh ModuleName = %s, want empty", fresh.ModuleName)
	}
}

func TestHolder_OnChange(t *testing.T) {
	chdir(t, t.TempDir())
	h := config.NewHolder(zerolog.Nop())

	var got *config.Config
	h.OnChange(func(cfg *config.Config) { got = cfg })

	cfg := config.New()
	h.Set(cfg)

	if got != cfg {
		t.Error("OnChange callback did not receive the new config")
	}
}

func TestHolder_ReloadFrom(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "docsmith.yaml")
	if err := os.WriteFile(path, []byte("module_name: MyLib\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	h := config.NewHolder(zerolog.Nop())
	if err := h.ReloadFrom(path); err != nil {
		t.Fatalf("ReloadFrom error: %v", err)
	}
	if h.Current().ModuleName != "MyLib" {
		t.Errorf("ModuleName = %s, want MyLib", h.Current().ModuleName)
	}
}

func TestHolder_ReloadFromKeepsOldConfigOnFailure(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "docsmith.yaml")
	if err := os.WriteFile(path, []byte("module_name: MyLib\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	h := config.NewHolder(zerolog.Nop())
	if err := h.ReloadFrom(path); err != nil {
		t.Fatalf("ReloadFrom error: %v", err)
	}
	old := h.Current()

	if err := os.WriteFile(path, []byte("not_an_attribute: x\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := h.ReloadFrom(path); err == nil {
		t.Fatal("expected reload error for unknown key")
	}
	if h.Current() != old {
		t.Error("failed reload must keep the old config")
	}
}

func TestHolder_WatchFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "docsmith.yaml")
	if err := os.WriteFile(path, []byte("module_name: Before\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	h := config.NewHolder(zerolog.Nop())
	if err := h.ReloadFrom(path); err != nil {
		t.Fatalf("ReloadFrom error: %v", err)
	}
	if err := h.WatchFile(path); err != nil {
		t.Fatalf("WatchFile error: %v", err)
	}
	defer h.Stop()

	if err := os.WriteFile(path, []byte("module_name: After\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if h.Current().ModuleName == "After" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("ModuleName = %s, want After (watch reload did not fire)", h.Current().ModuleName)
}
