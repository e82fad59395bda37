// Package form holds the contact form state and the controller that reacts to
// load, edit and submit events. Form and Controller are not safe for
// concurrent use; hosts drive them from a single event loop.
package form

import (
	"github.com/goliatone/go-contactform/pkg/model"
)

// FieldStatus is the display state of one field: its marker and the error
// text shown beneath it.
type FieldStatus struct {
	State   model.FieldState
	Message string
}

// Visible reports whether the error display is shown.
func (s FieldStatus) Visible() bool {
	return s.State == model.FieldStateError && s.Message != ""
}

// Form is the host-facing contract: four named values, four error displays
// and one status line.
type Form struct {
	values     model.Fields
	status     map[model.FieldName]FieldStatus
	statusLine string
}

// NewForm returns a form holding the initial values with every field neutral.
func NewForm() *Form {
	f := &Form{}
	f.Reset()
	return f
}

// Values returns the current field values.
func (f *Form) Values() model.Fields {
	return f.values
}

// Value returns the value of name.
func (f *Form) Value(name model.FieldName) string {
	return f.values.Get(name)
}

// Status returns the display state of name.
func (f *Form) Status(name model.FieldName) FieldStatus {
	if status, ok := f.status[name]; ok {
		return status
	}
	return FieldStatus{State: model.FieldStateNeutral}
}

// StatusLine returns the draft status text.
func (f *Form) StatusLine() string {
	return f.statusLine
}

// SetStatus replaces the status line text.
func (f *Form) SetStatus(text string) {
	f.statusLine = text
}

// Reset restores the initial values, clears the status line and marks every
// field neutral.
func (f *Form) Reset() {
	f.values = model.InitialFields()
	f.statusLine = ""
	f.status = make(map[model.FieldName]FieldStatus, len(model.FieldNames))
	for _, name := range model.FieldNames {
		f.status[name] = FieldStatus{State: model.FieldStateNeutral}
	}
}

// Snapshot is a copy of the form for rendering.
type Snapshot struct {
	Values     model.Fields
	Status     map[model.FieldName]FieldStatus
	StatusLine string
}

// Snapshot copies the current state.
func (f *Form) Snapshot() Snapshot {
	status := make(map[model.FieldName]FieldStatus, len(f.status))
	for name, s := range f.status {
		status[name] = s
	}
	return Snapshot{Values: f.values, Status: status, StatusLine: f.statusLine}
}

func (f *Form) setValue(name model.FieldName, value string) {
	f.values = f.values.With(name, value)
}

func (f *Form) setValues(values model.Fields) {
	f.values = values
}

func (f *Form) markSuccess(name model.FieldName) {
	f.status[name] = FieldStatus{State: model.FieldStateSuccess}
}

func (f *Form) markError(name model.FieldName, message string) {
	f.status[name] = FieldStatus{State: model.FieldStateError, Message: message}
}
