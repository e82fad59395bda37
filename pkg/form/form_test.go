package form_test

import (
	"testing"

	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
)

func TestNewForm_InitialState(t *testing.T) {
	f := form.NewForm()
	if f.Value(model.InterestField) != string(model.DefaultInterest) {
		t.Fatalf("expected default interest, got %q", f.Value(model.InterestField))
	}
	for _, name := range model.FieldNames {
		status := f.Status(name)
		if status.State != model.FieldStateNeutral || status.Visible() {
			t.Fatalf("field %s: unexpected status %+v", name, status)
		}
	}
}

func TestForm_SnapshotIsACopy(t *testing.T) {
	f := form.NewForm()
	f.SetStatus("Rascunho salvo automaticamente")

	snap := f.Snapshot()
	snap.Status[model.NameField] = form.FieldStatus{State: model.FieldStateError, Message: "x"}

	if f.Status(model.NameField).State != model.FieldStateNeutral {
		t.Fatalf("mutating a snapshot must not affect the form")
	}
	if snap.StatusLine != "Rascunho salvo automaticamente" {
		t.Fatalf("unexpected status line %q", snap.StatusLine)
	}

	f.Reset()
	if f.StatusLine() != "" {
		t.Fatalf("reset must clear the status line")
	}
}
