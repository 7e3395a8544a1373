package contact

import (
	"strings"

	"github.com/dmkorzh/contacts-backend/internal/domain"
)

// PhoneInput is one phone entry in a create or update request.
type PhoneInput struct {
	Label  string
	Number string
}

// CreateContactInput carries the fields of a new contact.
type CreateContactInput struct {
	Name    string
	Email   string
	Company string
	Notes   string
	Phones  []PhoneInput
}

// UpdateContactInput carries the changed fields of an update. Nil fields
// are left untouched; a non-nil Phones replaces the collection wholesale.
type UpdateContactInput struct {
	Name    *string
	Email   *string
	Company *string
	Notes   *string
	Phones  *[]PhoneInput
}

func (in UpdateContactInput) isEmpty() bool {
	return in.Name == nil && in.Email == nil && in.Company == nil &&
		in.Notes == nil && in.Phones == nil
}

func toPhones(inputs []PhoneInput) []domain.Phone {
	if inputs == nil {
		return nil
	}
	phones := make([]domain.Phone, 0, len(inputs))
	for _, p := range inputs {
		phones = append(phones, domain.Phone{
			Label:  strings.TrimSpace(p.Label),
			Number: strings.TrimSpace(p.Number),
		})
	}
	return phones
}
