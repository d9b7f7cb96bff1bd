package authclient

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
)

// Credentials is the default credential payload: email plus password.
// Hosts with richer login payloads use their own R type; anything
// implementing Validatable is checked before it reaches the exchanger.
// Credentials are never stored by this package.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate runs validation rules
func (c Credentials) Validate() error {
	if err := errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&c,
			validation.Field(
				&c.Email,
				validation.Required,
				is.Email,
			),
			validation.Field(
				&c.Password,
				validation.Required,
			),
		)
	}, "Invalid credentials payload"); err != nil {
		return err
	}
	return nil
}
