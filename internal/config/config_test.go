package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.Index.MaxFeatures != 5000 {
		t.Errorf("default max_features = %d, want 5000", cfg.Index.MaxFeatures)
	}
	if cfg.Posters.BaseURL != "https://image.tmdb.org/t/p/" {
		t.Errorf("default poster base = %q", cfg.Posters.BaseURL)
	}
	if cfg.Posters.Size != "w300" {
		t.Errorf("default poster size = %q", cfg.Posters.Size)
	}
	if cfg.Posters.Placeholder != "/static/placeholder.png" {
		t.Errorf("default placeholder = %q", cfg.Posters.Placeholder)
	}
	if cfg.Browse.DefaultPageSize != 24 || cfg.Browse.MaxPageSize != 100 || cfg.Browse.SearchLimit != 50 {
		t.Errorf("browse defaults = %+v", cfg.Browse)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		HTTP:  HTTPConfig{Port: 9090},
		Index: IndexConfig{MaxFeatures: 1000},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Index.MaxFeatures != 1000 {
		t.Errorf("max_features = %d, want 1000", cfg.Index.MaxFeatures)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		HTTP:    HTTPConfig{Port: 8080},
		Catalog: CatalogConfig{SnapshotPath: "data/content_raw.csv"},
		Browse:  BrowseConfig{DefaultPageSize: 24, MaxPageSize: 100},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid csv", mutate: func(*Config) {}, wantErr: false},
		{
			name: "valid parquet",
			mutate: func(c *Config) {
				c.Catalog.SnapshotPath = "data/content_raw.parquet"
			},
			wantErr: false,
		},
		{
			name:    "missing snapshot path",
			mutate:  func(c *Config) { c.Catalog.SnapshotPath = "" },
			wantErr: true,
		},
		{
			name:    "unknown snapshot format",
			mutate:  func(c *Config) { c.Catalog.SnapshotPath = "data/content.json" },
			wantErr: true,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.HTTP.Port = 70000 },
			wantErr: true,
		},
		{
			name: "default page size above max",
			mutate: func(c *Config) {
				c.Browse.DefaultPageSize = 200
				c.Browse.MaxPageSize = 100
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "config")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := `
http:
  port: ${CINEDEX_TEST_PORT:-8123}
catalog:
  snapshot_path: ${CINEDEX_TEST_SNAPSHOT}
`
	if err := os.WriteFile(filepath.Join(cfgDir, "test.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CINEDEX_TEST_SNAPSHOT", "data/content_raw.csv")

	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.HTTP.Port != 8123 {
		t.Errorf("port = %d, want 8123 from ${VAR:-default}", cfg.HTTP.Port)
	}
	if cfg.Catalog.SnapshotPath != "data/content_raw.csv" {
		t.Errorf("snapshot_path = %q", cfg.Catalog.SnapshotPath)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	wd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(wd) }()

	if _, err := Load("nope"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
