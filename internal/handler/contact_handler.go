package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hibara/portfolio-api/internal/dto"
	"github.com/hibara/portfolio-api/internal/observability"
	"github.com/hibara/portfolio-api/internal/ratelimit"
	"github.com/hibara/portfolio-api/internal/service"
	"github.com/hibara/portfolio-api/internal/utils"
)

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	service service.ContactService
	limiter ratelimit.Limiter
	logger  zerolog.Logger
}

// NewContactHandler constructs a contact handler.
func NewContactHandler(service service.ContactService, limiter ratelimit.Limiter, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		limiter: limiter,
		logger:  logger.With().Str("component", "contact_handler").Logger(),
	}
}

// Register wires contact routes.
func (h *ContactHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
}

func (h *ContactHandler) submit(c *fiber.Ctx) error {
	// The rate gate runs before the body is even parsed: over-quota clients
	// are throttled regardless of payload validity.
	clientID := clientIdentifier(c)
	result := h.limiter.Check(c.Context(), clientID)
	if !result.Allowed {
		observability.ContactSubmissions().WithLabelValues("rate_limited").Inc()
		requestLogger(h.logger, c).Warn().
			Str("client_id", clientID).
			Int("retry_after_seconds", result.RetryAfterSeconds).
			Msg("contact submission rate limited")
		return utils.SendRateLimited(c, result.RetryAfterSeconds)
	}

	var payload dto.ContactRequest
	if err := c.BodyParser(&payload); err != nil {
		observability.ContactSubmissions().WithLabelValues("malformed").Inc()
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid JSON in request body")
	}

	submission, err := h.service.Submit(c.Context(), payload, detectLocale(c))
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return utils.SendValidationError(c, validationDetails(validationErrors))
		}

		requestLogger(h.logger, c).Error().Err(err).Msg("failed to process contact submission")
		return utils.SendError(c, fiber.StatusInternalServerError, "An unexpected error occurred")
	}

	return utils.SendCreated(c, submission.ID)
}
