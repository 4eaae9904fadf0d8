package helper

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// HTTPError is the error every handler returns for an expected failure.
// Message is shown to the client; Err stays in the logs.
type HTTPError struct {
	Code    int
	Message string
	Fields  map[string]string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

func (e *HTTPError) Unwrap() error { return e.Err }

func NewHTTPError(code int, message string, err error) *HTTPError {
	return &HTTPError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *HTTPError {
	return &HTTPError{Code: fiber.StatusBadRequest, Message: message}
}

func NotFound(message string) *HTTPError {
	return &HTTPError{Code: fiber.StatusNotFound, Message: message}
}

func Internal(message string, err error) *HTTPError {
	return &HTTPError{Code: fiber.StatusInternalServerError, Message: message, Err: err}
}

// ✅ Error envelope: {"error": "..."} (+ "fields" for validation)
func JsonError(c *fiber.Ctx, code int, message string, fields map[string]string) error {
	body := fiber.Map{"error": message}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	return c.Status(code).JSON(body)
}

// ✅ Delete / action result: {"message": "..."}
func JsonMessage(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message})
}

func JsonCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}
