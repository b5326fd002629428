// Package web defines common components for a web application.
package web

import "github.com/go-playground/validator/v10"

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken           string `json:"access_token,omitempty"`
	AccessTokenExpiresAt  string `json:"access_token_expires_at,omitempty"`
	RefreshToken          string `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt string `json:"refresh_token_expires_at,omitempty"`
	Data                  any    `json:"data,omitempty"`
	Error                 string `json:"error,omitempty"`
}

// Error wraps a given err into json frinedly struct.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// GetErrorMsg returns a human readable suffix for the failed validation tag.
//
// The caller prepends the field name, e.g. "Code" + " is required".
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "min":
		return " must be greater than or equal to " + fe.Param()
	case "max":
		return " must be less than or equal to " + fe.Param()
	case "alphanum":
		return " must contain only letters and numbers"
	case "email":
		return " must be a valid email"
	case "accounttype":
		return " is not supported"
	case "nefield":
		return " must differ from " + fe.Param()
	case "datetime":
		return " must be a date in the format " + fe.Param()
	case "oneof":
		return " must be one of " + fe.Param()
	}

	return " is invalid"
}

// ValidationError converts the first validation failure of err into a message.
//
// Errors that are not validator errors are returned as is.
func ValidationError(err error) Response {
	if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
		return Response{Error: ve[0].Field() + GetErrorMsg(ve[0])}
	}

	return Error(err)
}
