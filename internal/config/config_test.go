package config

import "testing"

func TestLoadDefaultsWithNoFileOrFlags(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.SearchDirs) != 1 || cfg.SearchDirs[0] != "." {
		t.Fatalf("SearchDirs = %v, want [.]", cfg.SearchDirs)
	}
	if !cfg.EnableXZModules {
		t.Fatal("EnableXZModules = false, want true by default")
	}
}

func TestLoadEnvOverridesDefault(t *testing.T) {
	t.Setenv("BOLI_prelude_dir", "/opt/boli/prelude")
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PreludeDir != "/opt/boli/prelude" {
		t.Fatalf("PreludeDir = %q, want /opt/boli/prelude", cfg.PreludeDir)
	}
}
