// Package web defines common components for a web application.
package web

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken           string     `json:"access_token,omitempty"`
	AccessTokenExpiresAt  *time.Time `json:"access_token_expires_at,omitempty"`
	RefreshToken          string     `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt *time.Time `json:"refresh_token_expires_at,omitempty"`
	Data                  any        `json:"data,omitempty"`
	Error                 string     `json:"error,omitempty"`
}

// Error wraps a given err into json friendly struct.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// Data wraps a given payload into json friendly struct.
func Data(data any) Response {
	return Response{Data: data}
}

// GetErrorMsg returns human readable message for the failed validation.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " field is required"
	case "notblank":
		return fe.Field() + " must not be blank"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters long"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters long"
	case "email":
		return fe.Field() + " must be a valid email"
	case "alphanum":
		return fe.Field() + " must contain only letters and digits"
	}

	return fe.Field() + " is invalid"
}

// ValidationMsg returns the message of the first failed validation,
// or the error text itself for malformed payloads.
func ValidationMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return GetErrorMsg(ve[0])
	}

	return err.Error()
}
