package model_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/model"
)

func TestParseFieldName(t *testing.T) {
	for _, name := range model.FieldNames {
		got, err := model.ParseFieldName(string(name))
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		if got != name {
			t.Fatalf("expected %q, got %q", name, got)
		}
	}
	if _, err := model.ParseFieldName("phone"); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestFieldsWithAndGet(t *testing.T) {
	fields := model.InitialFields().
		With(model.NameField, "Ana").
		With(model.MessageField, "Olá")

	want := model.Fields{Name: "Ana", Interest: "ia-geral", Message: "Olá"}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if got := fields.Get(model.InterestField); got != "ia-geral" {
		t.Fatalf("expected default interest, got %q", got)
	}
}

func TestDraftRoundTripsFields(t *testing.T) {
	savedAt := time.UnixMilli(1_700_000_000_123)
	fields := model.Fields{Name: "Ana", Email: "a@b.com", Interest: "outro", Message: "mensagem longa"}

	draft := model.NewDraft(fields, savedAt)
	if draft.Timestamp != 1_700_000_000_123 {
		t.Fatalf("unexpected timestamp %d", draft.Timestamp)
	}
	if diff := cmp.Diff(fields, draft.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if !draft.SavedAt().Equal(savedAt) {
		t.Fatalf("expected saved at %v, got %v", savedAt, draft.SavedAt())
	}
}

func TestIsInterest(t *testing.T) {
	if !model.IsInterest("consultoria") {
		t.Fatalf("expected consultoria to be a known tag")
	}
	if model.IsInterest("") || model.IsInterest("general-ai") {
		t.Fatalf("expected empty and unknown tags to be rejected")
	}
}
