package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_DefaultsWhenNothingIsSet(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(
		WithDotEnv(filepath.Join(dir, ".env")),
		WithEnvironment(map[string]string{}),
		func(l *loader) { l.file = filepath.Join(dir, "missing.yaml") },
	)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_LayersFileDotEnvAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "contactform.yaml", `
storage:
  dir: /tmp/slots
  quota_bytes: 1024
draft:
  retention: 48h
  saved_delay: 500ms
toast:
  display: 2s
  tokens:
    toast.icon.success: "OK"
log:
  level: debug
`)
	dotenv := writeFile(t, dir, ".env", strings.Join([]string{
		"CONTACTFORM_DRAFT_KEY=from_dotenv",
		"CONTACTFORM_LOG_LEVEL=warn",
	}, "\n"))

	cfg, err := Load(
		WithFile(file),
		WithDotEnv(dotenv),
		WithEnvironment(map[string]string{
			"CONTACTFORM_LOG_LEVEL":            "error",
			"CONTACTFORM_STORAGE_DIR":          "/var/lib/contactform",
			"CONTACTFORM_TOAST_EXIT":           "150ms",
			"CONTACTFORM_DRAFT_SWEEP_SCHEDULE": "@every 30m",
		}),
	)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Default()
	want.Storage.Dir = "/var/lib/contactform"
	want.Storage.QuotaBytes = 1024
	want.Draft.Key = "from_dotenv"
	want.Draft.Retention = 48 * time.Hour
	want.Draft.SavedDelay = 500 * time.Millisecond
	want.Draft.SweepSchedule = "@every 30m"
	want.Toast.Display = 2 * time.Second
	want.Toast.Exit = 150 * time.Millisecond
	want.Toast.Tokens = map[string]string{"toast.icon.success": "OK"}
	want.Log.Level = "error"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := Load(
		WithFile(filepath.Join(t.TempDir(), "nope.yaml")),
		WithEnvironment(map[string]string{}),
	)
	if err == nil {
		t.Fatalf("expected error for missing explicit file")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"bad duration":       {"CONTACTFORM_DRAFT_RETENTION": "soon"},
		"zero retention":     {"CONTACTFORM_DRAFT_RETENTION": "0s"},
		"negative quota":     {"CONTACTFORM_STORAGE_QUOTA_BYTES": "-1"},
		"unknown log format": {"CONTACTFORM_LOG_FORMAT": "xml"},
	}
	for name, environ := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			_, err := Load(
				WithDotEnv(filepath.Join(dir, ".env")),
				WithEnvironment(environ),
				func(l *loader) { l.file = "" },
			)
			if err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "bad.yaml", "draft: [unterminated")
	if _, err := Load(WithFile(file), WithEnvironment(map[string]string{})); err == nil {
		t.Fatalf("expected parse error")
	}
}
