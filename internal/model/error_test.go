package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	v := NewValidationError()
	assert.False(t, v.HasErrors())
	assert.NoError(t, v.ErrOrNil())

	v.Add("email", "must be a valid email address")
	v.Add("email", "is required")
	v.Add("cart", "must not be empty")

	assert.True(t, v.HasErrors())
	assert.Equal(t, "must be a valid email address", v.Fields["email"], "first message wins")
	assert.Equal(t, "validation failed: cart must not be empty; email must be a valid email address", v.Error())

	var target *ValidationError
	assert.True(t, errors.As(v.ErrOrNil(), &target))
}

func TestDomainError(t *testing.T) {
	err := NewDomainError(ErrCodeOrderNotFound, "Order not found")
	assert.Equal(t, "Order not found", err.Error())
	assert.Equal(t, ErrCodeOrderNotFound, err.Code)
	assert.ErrorIs(t, ErrOutOfStock, ErrOutOfStock)
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"jane@example.com", true},
		{"j.doe+bistro@mail.example.fr", true},
		{"", false},
		{"jane", false},
		{"jane@example", false},
		{"a@localhost", false},
		{"@example.com", false},
		{"jane doe@example.com", false},
		{"jane@@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidEmail(tt.email))
		})
	}
}
