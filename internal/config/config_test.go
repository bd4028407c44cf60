package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".bucketspectre.yaml", `regions:
  - us-east-1
  - eu-west-1
profile: dev
buckets:
  - acme-logs
  - acme-assets
bucket_prefix: acme-
prefix: 2026/
mode: versions
versions: true
group_by: region
size_unit: MB
date_format: "2006-01-02"
name_width: 30
workers: 4
format: json
timeout: 5m
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.Regions) != 2 {
		t.Errorf("Regions len = %d, want 2", len(cfg.Regions))
	}
	if cfg.Profile != "dev" {
		t.Errorf("Profile = %q, want %q", cfg.Profile, "dev")
	}
	if len(cfg.Buckets) != 2 {
		t.Errorf("Buckets len = %d, want 2", len(cfg.Buckets))
	}
	if cfg.BucketPrefix != "acme-" {
		t.Errorf("BucketPrefix = %q, want %q", cfg.BucketPrefix, "acme-")
	}
	if cfg.Prefix != "2026/" {
		t.Errorf("Prefix = %q, want %q", cfg.Prefix, "2026/")
	}
	if cfg.Mode != "versions" {
		t.Errorf("Mode = %q, want %q", cfg.Mode, "versions")
	}
	if !cfg.Versions {
		t.Error("Versions = false, want true")
	}
	if cfg.GroupBy != "region" {
		t.Errorf("GroupBy = %q, want %q", cfg.GroupBy, "region")
	}
	if cfg.SizeUnit != "MB" {
		t.Errorf("SizeUnit = %q, want %q", cfg.SizeUnit, "MB")
	}
	if cfg.DateFormat != "2006-01-02" {
		t.Errorf("DateFormat = %q, want %q", cfg.DateFormat, "2006-01-02")
	}
	if cfg.NameWidth != 30 {
		t.Errorf("NameWidth = %d, want 30", cfg.NameWidth)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want %q", cfg.Format, "json")
	}
	if cfg.TimeoutDuration() != 5*time.Minute {
		t.Errorf("TimeoutDuration() = %v, want 5m", cfg.TimeoutDuration())
	}
}

func TestLoadYML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".bucketspectre.yml", "project: my-project\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Project != "my-project" {
		t.Errorf("Project = %q, want %q", cfg.Project, "my-project")
	}
}

func TestLoadPrefersYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".bucketspectre.yaml", "workers: 2\n")
	writeConfig(t, dir, ".bucketspectre.yml", "workers: 9\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
}

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Profile != "" || cfg.Workers != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".bucketspectre.yaml", "workers: [not a number\n")

	if _, err := Load(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestTimeoutDuration(t *testing.T) {
	tests := []struct {
		timeout string
		want    time.Duration
	}{
		{"", 0},
		{"30s", 30 * time.Second},
		{"10m", 10 * time.Minute},
		{"garbage", 0},
	}
	for _, tt := range tests {
		cfg := Config{Timeout: tt.timeout}
		if got := cfg.TimeoutDuration(); got != tt.want {
			t.Errorf("TimeoutDuration(%q) = %v, want %v", tt.timeout, got, tt.want)
		}
	}
}
