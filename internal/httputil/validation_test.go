package httputil

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestFormatValidationError(t *testing.T) {
	type request struct {
		Name  string `validate:"required,max=100"`
		Email string `validate:"omitempty,email"`
		Qty   int    `validate:"gt=0"`
	}

	validate := validator.New()
	err := validate.Struct(request{Email: "not-an-email", Qty: 0})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	fields := FormatValidationError(err)

	if fields["name"] != "name is required" {
		t.Errorf("unexpected name message: %q", fields["name"])
	}
	if fields["email"] != "email must be a valid email address" {
		t.Errorf("unexpected email message: %q", fields["email"])
	}
	if fields["qty"] != "qty must be greater than 0" {
		t.Errorf("unexpected qty message: %q", fields["qty"])
	}
}
