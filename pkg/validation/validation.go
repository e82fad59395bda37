// Package validation evaluates the contact form fields. Validate is a pure
// function of the submitted values: it trims every value, checks all four
// rules in a single pass and reports a verdict for each field so callers can
// surface every applicable error at once.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Error messages shown next to invalid fields.
const (
	MessageName     = "Por favor, insira seu nome completo."
	MessageEmail    = "Por favor, insira um e-mail válido."
	MessageInterest = "Selecione uma área de interesse."
	MessageMessage  = "A mensagem precisa ter pelo menos 10 caracteres."
)

// Messages maps each field to the text shown when it fails validation.
var Messages = map[model.FieldName]string{
	model.NameField:     MessageName,
	model.EmailField:    MessageEmail,
	model.InterestField: MessageInterest,
	model.MessageField:  MessageMessage,
}

// emailPattern accepts local@domain.tld where no part holds whitespace or a
// second @. Unicode separators and the BOM count as whitespace.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// submission carries trimmed values through the struct validator. Tags are
// evaluated per field; validator reports every failing field, not just the
// first one.
type submission struct {
	Name     string `json:"name" validate:"min=3"`
	Email    string `json:"email" validate:"contact_email"`
	Interest string `json:"interest" validate:"required,contact_interest"`
	Message  string `json:"message" validate:"min=10"`
}

// FieldResult is the verdict for a single field.
type FieldResult struct {
	Field   model.FieldName
	Valid   bool
	Message string
}

// Verdict aggregates the per-field results of one validation pass.
type Verdict struct {
	Valid  bool
	Fields map[model.FieldName]FieldResult
}

// Result returns the verdict for name.
func (v Verdict) Result(name model.FieldName) FieldResult {
	if res, ok := v.Fields[name]; ok {
		return res
	}
	return FieldResult{Field: name, Valid: true}
}

// Invalid lists the failing fields in display order.
func (v Verdict) Invalid() []model.FieldName {
	var out []model.FieldName
	for _, name := range model.FieldNames {
		if !v.Result(name).Valid {
			out = append(out, name)
		}
	}
	return out
}

// Errors returns the messages of failing fields keyed by field.
func (v Verdict) Errors() map[model.FieldName]string {
	out := make(map[model.FieldName]string)
	for _, name := range v.Invalid() {
		out[name] = v.Result(name).Message
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Validator wraps a configured go-playground validator.
type Validator struct {
	validate *validator.Validate
}

// New constructs a Validator with the contact form rules registered.
func New() *Validator {
	v := validator.New()
	RegisterValidators(v)
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// RegisterValidators adds the contact_email and contact_interest tags to v.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("contact_email", ValidEmail)
	_ = v.RegisterValidation("contact_interest", ValidInterest)
}

// ValidEmail reports whether the field matches local@domain.tld.
func ValidEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

// ValidInterest reports whether the field holds an enumerated interest tag.
func ValidInterest(fl validator.FieldLevel) bool {
	return model.IsInterest(fl.Field().String())
}

// Validate checks fields against every rule.
func (v *Validator) Validate(fields model.Fields) Verdict {
	verdict := Verdict{
		Valid:  true,
		Fields: make(map[model.FieldName]FieldResult, len(model.FieldNames)),
	}
	for _, name := range model.FieldNames {
		verdict.Fields[name] = FieldResult{Field: name, Valid: true}
	}

	err := v.validate.Struct(submission{
		Name:     Trim(fields.Name),
		Email:    Trim(fields.Email),
		Interest: Trim(fields.Interest),
		Message:  Trim(fields.Message),
	})
	if err == nil {
		return verdict
	}

	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		// Struct only returns InvalidValidationError for non-struct input.
		panic(err)
	}
	for _, failure := range failures {
		name, perr := model.ParseFieldName(failure.Field())
		if perr != nil {
			continue
		}
		verdict.Valid = false
		verdict.Fields[name] = FieldResult{Field: name, Message: Messages[name]}
	}
	return verdict
}

var defaultValidator = New()

// Validate checks fields with the package default Validator.
func Validate(fields model.Fields) Verdict {
	return defaultValidator.Validate(fields)
}

// Trim strips leading and trailing whitespace, including the BOM.
func Trim(value string) string {
	return strings.TrimFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

// Normalize returns fields with every value trimmed, the shape handed to the
// submission boundary.
func Normalize(fields model.Fields) model.Fields {
	return model.Fields{
		Name:     Trim(fields.Name),
		Email:    Trim(fields.Email),
		Interest: Trim(fields.Interest),
		Message:  Trim(fields.Message),
	}
}
