package entity

import (
	"time"

	"github.com/google/uuid"
)

// ContactSubmission is one accepted row of the contact form. Rows are only
// ever inserted; nothing in the API updates or deletes them.
type ContactSubmission struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	CompanyName *string   `json:"company_name,omitempty"`
	Services    []string  `json:"services,omitempty"`
	Message     *string   `json:"message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
