package main

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/ChicagoDave/housingdash/pkg/dataset"
)

func TestLoadDatasetDefault(t *testing.T) {
	ds, err := loadDataset("")
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Providers) != 7 {
		t.Errorf("providers = %d, want 7", len(ds.Providers))
	}
}

func TestLoadDatasetDirAndFile(t *testing.T) {
	data, err := yaml.Marshal(dataset.Default())
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "providers.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{dir, path} {
		ds, err := loadDataset(p)
		if err != nil {
			t.Fatalf("loadDataset(%s): %v", p, err)
		}
		if len(ds.Providers) != 7 {
			t.Errorf("loadDataset(%s) providers = %d, want 7", p, len(ds.Providers))
		}
	}

	if _, err := loadDataset(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing dataset")
	}
}

func TestLoadConfigFlags(t *testing.T) {
	t.Setenv("HOUSINGDASH_CONFIG_PATH", "")

	cfg, err := loadConfig(&globalFlags{fromYear: 2019, toYear: 2021, projects: 5, logLevel: "debug"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Generator.FromYear != 2019 || cfg.Generator.ToYear != 2021 || cfg.Generator.ProjectCount != 5 {
		t.Errorf("generator config = %+v", cfg.Generator)
	}

	gen := generatorConfig(dataset.Default(), cfg)
	if gen.FromYear != 2019 || gen.ProjectCount != 5 || len(gen.HousingTypes) != 7 {
		t.Errorf("synth config = %+v", gen)
	}

	if _, err := loadConfig(&globalFlags{fromYear: 2030, toYear: 2020, projects: -1}); err == nil {
		t.Error("expected error for inverted year range")
	}
}
