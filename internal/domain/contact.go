package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxContactNameLen   = 200
	MaxContactNotesLen  = 5000
	MaxPhonesPerContact = 20
)

// Phone is a labeled phone number attached to a contact.
type Phone struct {
	Label  string
	Number string
}

// Contact is the managed business entity.
type Contact struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Company   string
	Notes     string
	Phones    []Phone
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks field constraints common to create and update.
func (c *Contact) Validate() error {
	var errs []FieldError

	name := strings.TrimSpace(c.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "is required"})
	} else if len(name) > MaxContactNameLen {
		errs = append(errs, FieldError{Field: "name", Message: "is too long"})
	}

	if len(c.Notes) > MaxContactNotesLen {
		errs = append(errs, FieldError{Field: "notes", Message: "is too long"})
	}

	if len(c.Phones) > MaxPhonesPerContact {
		errs = append(errs, FieldError{Field: "phones", Message: "too many phone numbers"})
	}
	for _, p := range c.Phones {
		if strings.TrimSpace(p.Number) == "" {
			errs = append(errs, FieldError{Field: "phones", Message: "phone number must not be empty"})
			break
		}
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// PhoneSnapshot is the serialized form of a Phone.
type PhoneSnapshot struct {
	Label  string `json:"label,omitempty"`
	Number string `json:"number"`
}

// ContactSnapshot is the complete post-operation state of a contact as
// recorded into history data and event payloads. Field names are
// camel-cased on the wire; there is no schema version field.
type ContactSnapshot struct {
	Name    string          `json:"name"`
	Email   string          `json:"email,omitempty"`
	Company string          `json:"company,omitempty"`
	Notes   string          `json:"notes,omitempty"`
	Phones  []PhoneSnapshot `json:"phones,omitempty"`
}

// Snapshot captures the contact's current state.
func (c *Contact) Snapshot() ContactSnapshot {
	s := ContactSnapshot{
		Name:    c.Name,
		Email:   c.Email,
		Company: c.Company,
		Notes:   c.Notes,
	}
	for _, p := range c.Phones {
		s.Phones = append(s.Phones, PhoneSnapshot{Label: p.Label, Number: p.Number})
	}
	return s
}

// ApplyTo overwrites the contact's scalar fields and replaces the phone
// collection wholesale. The snapshot is a complete post-operation state,
// not a diff, so sub-items are never merged.
func (s ContactSnapshot) ApplyTo(c *Contact) {
	c.Name = s.Name
	c.Email = s.Email
	c.Company = s.Company
	c.Notes = s.Notes

	c.Phones = nil
	for _, p := range s.Phones {
		c.Phones = append(c.Phones, Phone{Label: p.Label, Number: p.Number})
	}
}
