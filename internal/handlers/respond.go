package handlers

import (
	"errors"
	"strings"

	"foodcourt/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// envelope is the JSON shape shared by every response.
type envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(envelope{Status: "success", Message: message, Data: data})
}

func fail(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(envelope{Status: "error", Message: message})
}

// failFromError maps a service error onto the HTTP taxonomy. Anything not
// covered by a sentinel is a storage error: 500 with the message passed
// through verbatim.
func failFromError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrLastAdmin):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrWrongPassword):
		return fail(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrEmailExists):
		return fail(c, fiber.StatusConflict, err.Error())
	default:
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
}

// validationMessage flattens validator errors into one response message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, len(verrs))
		for i, e := range verrs {
			fields[i] = e.Field()
		}
		return "Validation failed on: " + strings.Join(fields, ", ")
	}
	return "Validation failed"
}

// paramID parses a numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name + " parameter")
	}
	return uint(id), nil
}
