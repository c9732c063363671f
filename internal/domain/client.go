package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BirthDateLayout is the wire format of Client.DataNascimento
const BirthDateLayout = "2006-01-02"

// ID is the opaque, server-assigned client identifier.
// The backend may send it as a JSON number or a JSON string; both are kept
// in their textual form.
type ID string

// String returns the identifier text
func (id ID) String() string { return string(id) }

// IsZero reports whether no identifier has been assigned
func (id ID) IsZero() bool { return id == "" }

// UnmarshalJSON accepts numbers, strings and null
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid client id %s: %w", data, err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid client id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// Client is a hotel guest record as stored by the backend
type Client struct {
	ID             ID     `json:"id"`
	Nome           string `json:"nome"`
	CPF            string `json:"cpf"`
	Email          string `json:"email"`
	Telefone       string `json:"telefone"`
	Endereco       string `json:"endereco,omitempty"`
	DataNascimento string `json:"dataNascimento,omitempty"`
}

// ClientDraft holds the editable fields of a client while a form is open.
// The zero value is the empty "new client" draft.
type ClientDraft struct {
	Nome           string `json:"nome" validate:"required"`
	CPF            string `json:"cpf" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Telefone       string `json:"telefone" validate:"required"`
	Endereco       string `json:"endereco"`
	DataNascimento string `json:"dataNascimento" validate:"omitempty,datetime=2006-01-02"`
}

// ClientID returns the record identifier
func ClientID(c Client) string {
	return c.ID.String()
}

// DraftFromClient copies the editable fields of c into a new draft
func DraftFromClient(c Client) ClientDraft {
	return ClientDraft{
		Nome:           c.Nome,
		CPF:            c.CPF,
		Email:          c.Email,
		Telefone:       c.Telefone,
		Endereco:       c.Endereco,
		DataNascimento: c.DataNascimento,
	}
}

// Normalize trims surrounding whitespace from every field
func (d ClientDraft) Normalize() ClientDraft {
	return ClientDraft{
		Nome:           strings.TrimSpace(d.Nome),
		CPF:            strings.TrimSpace(d.CPF),
		Email:          strings.TrimSpace(d.Email),
		Telefone:       strings.TrimSpace(d.Telefone),
		Endereco:       strings.TrimSpace(d.Endereco),
		DataNascimento: strings.TrimSpace(d.DataNascimento),
	}
}

// FieldError reports the first draft field that failed validation.
// Field is the wire name of the field, Rule the failed validator tag.
type FieldError struct {
	Field string
	Rule  string
}

func (e *FieldError) Error() string {
	switch e.Rule {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field)
	case "datetime":
		return fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", e.Field)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names so errors match the wire format
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks required fields, the email syntax and the birth date
func (d ClientDraft) Validate() error {
	err := validate.Struct(d.Normalize())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{Field: verrs[0].Field(), Rule: verrs[0].Tag()}
	}
	return fmt.Errorf("failed to validate client: %w", err)
}
