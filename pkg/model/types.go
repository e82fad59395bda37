package model

import "fmt"

// FieldName identifies one of the contact form inputs.
type FieldName string

const (
	NameField     FieldName = "name"
	EmailField    FieldName = "email"
	InterestField FieldName = "interest"
	MessageField  FieldName = "message"
)

// FieldNames lists the form inputs in display order.
var FieldNames = []FieldName{NameField, EmailField, InterestField, MessageField}

// ParseFieldName resolves raw input into a known FieldName.
func ParseFieldName(raw string) (FieldName, error) {
	for _, name := range FieldNames {
		if string(name) == raw {
			return name, nil
		}
	}
	return "", fmt.Errorf("model: unknown field %q", raw)
}

// Interest is one of the enumerated category tags offered by the interest
// select.
type Interest string

const (
	InterestGeneralAI   Interest = "ia-geral"
	InterestAutomation  Interest = "automacao"
	InterestConsulting  Interest = "consultoria"
	InterestDevelopment Interest = "desenvolvimento"
	InterestOther       Interest = "outro"
)

// DefaultInterest is preselected on a fresh form and restored drafts that
// carry no interest.
const DefaultInterest = InterestGeneralAI

// Interests lists the selectable tags in display order.
var Interests = []Interest{
	InterestGeneralAI,
	InterestAutomation,
	InterestConsulting,
	InterestDevelopment,
	InterestOther,
}

// InterestLabels maps tags to the option text shown next to them.
var InterestLabels = map[Interest]string{
	InterestGeneralAI:   "IA Generativa (geral)",
	InterestAutomation:  "Automação de processos",
	InterestConsulting:  "Consultoria",
	InterestDevelopment: "Desenvolvimento sob medida",
	InterestOther:       "Outro assunto",
}

// IsInterest reports whether raw is one of the enumerated tags.
func IsInterest(raw string) bool {
	for _, tag := range Interests {
		if string(tag) == raw {
			return true
		}
	}
	return false
}

// FieldState is the visual marker attached to a field.
type FieldState string

const (
	FieldStateNeutral FieldState = "neutral"
	FieldStateSuccess FieldState = "success"
	FieldStateError   FieldState = "error"
)

// Severity classifies a toast.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Fields carries the current value of every input.
type Fields struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Interest string `json:"interest"`
	Message  string `json:"message"`
}

// InitialFields returns the values of a freshly reset form.
func InitialFields() Fields {
	return Fields{Interest: string(DefaultInterest)}
}

// Get returns the value bound to name.
func (f Fields) Get(name FieldName) string {
	switch name {
	case NameField:
		return f.Name
	case EmailField:
		return f.Email
	case InterestField:
		return f.Interest
	case MessageField:
		return f.Message
	default:
		return ""
	}
}

// With returns a copy of f with name set to value. Unknown names leave the
// copy untouched.
func (f Fields) With(name FieldName, value string) Fields {
	switch name {
	case NameField:
		f.Name = value
	case EmailField:
		f.Email = value
	case InterestField:
		f.Interest = value
	case MessageField:
		f.Message = value
	}
	return f
}
