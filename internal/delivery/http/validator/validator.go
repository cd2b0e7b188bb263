// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type echoValidator struct {
	validate *validator.Validate
}

// New creates the request validator used by the Echo server.
func New() echo.Validator {
	return &echoValidator{
		validate: validator.New(),
	}
}

// Validate checks the struct's validate tags and converts failures into a
// 400 response listing every failing field.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fe := range validationErrs {
				fields = append(fields, fe.Field()+" failed on '"+fe.Tag()+"'")
			}

			return echo.NewHTTPError(http.StatusBadRequest, strings.Join(fields, "; "))
		}

		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
