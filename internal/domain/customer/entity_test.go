//go:build unit

package customer_test

import (
	"testing"
	"time"

	"pos-backoffice/internal/domain/customer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhoneNumber(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		valid bool
	}{
		{name: "plain digits", raw: "0812345678", valid: true},
		{name: "with dashes", raw: "081-234-5678", valid: true},
		{name: "too short", raw: "08", valid: false},
		{name: "letters", raw: "08x1234567", valid: false},
		{name: "leading dash", raw: "-081234567", valid: false},
		{name: "empty", raw: "", valid: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := customer.NewPhoneNumber(tc.raw)
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, customer.ErrInvalidPhoneNumber)
		})
	}
}

func TestNewCustomer(t *testing.T) {
	phone, err := customer.NewPhoneNumber("0812345678")
	require.NoError(t, err)

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	c := customer.NewCustomer(phone, now)

	assert.NotEqual(t, uuid.Nil, c.ID())
	assert.Equal(t, phone, c.PhoneNumber())
	assert.Equal(t, now, c.CreatedAt())
}
