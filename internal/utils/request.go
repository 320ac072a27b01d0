package utils

import (
	"errors"
	"log/slog"
	"net/http"

	appErrors "github.com/areejrazzaq/shopping-cart/internal/errors"
	"github.com/areejrazzaq/shopping-cart/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithError(err))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		slog.Warn("Validation failed", slog.String("error", err.Error()))

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
			return false
		}

		response.Error(w, appErrors.ValidationError("Invalid input data").WithError(err))
		return false
	}

	return true
}

// ParseID reads a UUID path parameter registered with the Go 1.22 mux.
func ParseID(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.PathValue(name)

	if raw == "" {
		return uuid.Nil, appErrors.BadRequestError("Missing " + name + " path parameter")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, appErrors.ValidationError("Invalid " + name + ": must be a UUID").WithError(err)
	}

	return id, nil
}
