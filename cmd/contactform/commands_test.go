package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/draft"
	"github.com/goliatone/go-contactform/pkg/model"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute %v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func seedDraft(t *testing.T, dir string, d model.Draft) {
	t.Helper()
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal draft: %v", err)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, draft.DefaultKey+".json"), raw, 0o600); err != nil {
		t.Fatalf("write draft: %v", err)
	}
}

func commonArgs(dir string) []string {
	return []string{"--storage-dir", dir, "--env-file", filepath.Join(dir, ".env"), "--log-level", "error"}
}

func TestDraftShow_PrintsStoredDraftAsJSON(t *testing.T) {
	dir := t.TempDir()
	want := model.Draft{
		Name:      "Ana",
		Email:     "ana@example.com",
		Interest:  "outro",
		Message:   "rascunho",
		Timestamp: time.Now().UnixMilli(),
	}
	seedDraft(t, dir, want)

	out := execute(t, append([]string{"draft", "show", "--json"}, commonArgs(dir)...)...)

	var got model.Draft
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("draft mismatch (-want +got):\n%s", diff)
	}
}

func TestDraftShow_EmptySlot(t *testing.T) {
	dir := t.TempDir()
	out := execute(t, append([]string{"draft", "show", "--json=false"}, commonArgs(dir)...)...)
	if !strings.Contains(out, "Nenhum rascunho salvo.") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDraftClear_RemovesSlot(t *testing.T) {
	dir := t.TempDir()
	seedDraft(t, dir, model.Draft{Name: "Ana", Interest: "outro", Timestamp: time.Now().UnixMilli()})

	execute(t, append([]string{"draft", "clear"}, commonArgs(dir)...)...)

	if _, err := os.Stat(filepath.Join(dir, draft.DefaultKey+".json")); !os.IsNotExist(err) {
		t.Fatalf("expected slot file removed, stat err=%v", err)
	}
}

func TestSweep_RemovesExpiredDraft(t *testing.T) {
	dir := t.TempDir()
	seedDraft(t, dir, model.Draft{
		Name:      "Ana",
		Interest:  "outro",
		Timestamp: time.Now().Add(-8 * 24 * time.Hour).UnixMilli(),
	})

	out := execute(t, append([]string{"sweep", "--watch=false"}, commonArgs(dir)...)...)
	if !strings.Contains(out, "Rascunho expirado removido.") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, draft.DefaultKey+".json")); !os.IsNotExist(err) {
		t.Fatalf("expected expired slot removed, stat err=%v", err)
	}

	out = execute(t, append([]string{"sweep", "--watch=false"}, commonArgs(dir)...)...)
	if !strings.Contains(out, "Nenhum rascunho expirado.") {
		t.Fatalf("unexpected output %q", out)
	}
}
