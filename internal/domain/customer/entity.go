package customer

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidPhoneNumber = errors.New("invalid phone number")

// Digits with optional dashes, e.g. "555-1111".
var phoneRegex = regexp.MustCompile(`^[0-9][0-9-]{2,19}$`)

type PhoneNumber string

func NewPhoneNumber(raw string) (PhoneNumber, error) {
	raw = strings.TrimSpace(raw)
	if !phoneRegex.MatchString(raw) {
		return PhoneNumber(""), ErrInvalidPhoneNumber
	}
	return PhoneNumber(raw), nil
}

func (p PhoneNumber) String() string {
	return string(p)
}

// Customer is created lazily on first rental and carries no mutable state
// beyond timestamps.
type Customer struct {
	id          uuid.UUID
	phoneNumber PhoneNumber
	createdAt   time.Time
}

func NewCustomer(phoneNumber PhoneNumber, now time.Time) *Customer {
	return &Customer{
		id:          uuid.New(),
		phoneNumber: phoneNumber,
		createdAt:   now,
	}
}

func Reconstruct(id uuid.UUID, phoneNumber PhoneNumber, createdAt time.Time) *Customer {
	return &Customer{
		id:          id,
		phoneNumber: phoneNumber,
		createdAt:   createdAt,
	}
}

func (c *Customer) ID() uuid.UUID            { return c.id }
func (c *Customer) PhoneNumber() PhoneNumber { return c.phoneNumber }
func (c *Customer) CreatedAt() time.Time     { return c.createdAt }
