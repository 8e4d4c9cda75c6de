package common

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestHTTPStatusFromError_Sentinels(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrValidation, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatusFromError(tc.err))
	}
}

func TestHTTPStatusFromError_Wrapped(t *testing.T) {
	err := Errorf("bootcamp %s: %w", "abc", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromError(err))
	assert.Equal(t, "bootcamp abc: requested resource not found", ErrorMessage(err))
}

func TestDuplicateKeyError(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	assert.Equal(t, http.StatusBadRequest, HTTPStatusFromError(dup))
	assert.Equal(t, "Duplicate field value entered", ErrorMessage(dup))
}

func TestValidationErrorMessages(t *testing.T) {
	type record struct {
		Name  string `validate:"required"`
		Email string `validate:"omitempty,email"`
	}
	err := validator.New().Struct(record{Email: "not-an-email"})
	require.Error(t, err)

	assert.Equal(t, http.StatusBadRequest, HTTPStatusFromError(err))
	msg := ErrorMessage(err)
	assert.Contains(t, msg, "Please add a name")
	assert.Contains(t, msg, "Please add a valid email address")
}

func TestErrorMessage_UnknownCollapsesToGeneric(t *testing.T) {
	assert.Equal(t, "Server Error", ErrorMessage(errors.New("driver internals: socket closed")))
}
