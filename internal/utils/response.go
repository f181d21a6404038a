package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// APIResponse describes the common structure for API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	ID      string      `json:"id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details []string    `json:"details,omitempty"`
}

// SendCreated responds 201 with the identifier of the stored record.
func SendCreated(c *fiber.Ctx, id string) error {
	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		ID:      id,
	})
}

// SendSuccess sends a successful JSON response carrying a data payload.
func SendSuccess(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(APIResponse{
		Success: true,
		Data:    data,
	})
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Error:   message,
	})
}

// SendValidationError reports every field violation in one response.
func SendValidationError(c *fiber.Ctx, details []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(APIResponse{
		Success: false,
		Error:   "Validation failed",
		Details: details,
	})
}

// SendRateLimited responds 429 with a Retry-After hint in seconds.
func SendRateLimited(c *fiber.Ctx, retryAfterSeconds int) error {
	c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds))
	return c.Status(fiber.StatusTooManyRequests).JSON(APIResponse{
		Success: false,
		Error:   "Too many requests. Please try again later.",
	})
}
