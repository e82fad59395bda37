package model

import "time"

// Draft is the persisted snapshot of an in-progress form. Timestamp holds the
// moment of the last save in milliseconds since the Unix epoch.
type Draft struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Interest  string `json:"interest"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// NewDraft stamps fields with the provided save time.
func NewDraft(fields Fields, savedAt time.Time) Draft {
	return Draft{
		Name:      fields.Name,
		Email:     fields.Email,
		Interest:  fields.Interest,
		Message:   fields.Message,
		Timestamp: savedAt.UnixMilli(),
	}
}

// Fields returns the form values carried by the draft.
func (d Draft) Fields() Fields {
	return Fields{
		Name:     d.Name,
		Email:    d.Email,
		Interest: d.Interest,
		Message:  d.Message,
	}
}

// SavedAt converts the millisecond timestamp back into a time.Time.
func (d Draft) SavedAt() time.Time {
	return time.UnixMilli(d.Timestamp)
}
