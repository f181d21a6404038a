package handler

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hibara/portfolio-api/internal/mail"
	"github.com/hibara/portfolio-api/internal/middleware"
	"github.com/hibara/portfolio-api/internal/ratelimit"
)

// clientIdentifier derives the throttling key from proxy headers: the first
// X-Forwarded-For entry, then X-Real-IP. Requests with neither share the
// fallback bucket.
func clientIdentifier(c *fiber.Ctx) string {
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(c.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return ratelimit.FallbackClientID
}

// detectLocale picks the auto-reply language from the Referer header. The
// Japanese side of the site lives under /ja/, so a referer containing that
// segment selects the Japanese template set; everything else gets English.
// A heuristic, not a contract: a stripped or missing referer means English.
func detectLocale(c *fiber.Ctx) string {
	if strings.Contains(c.Get(fiber.HeaderReferer), "/ja/") {
		return mail.LocaleJapanese
	}
	return mail.LocaleEnglish
}

// validationDetails flattens field errors into "field: message" entries, one
// per violation, so the client sees every problem in a single round trip.
func validationDetails(errs validator.ValidationErrors) []string {
	details := make([]string, 0, len(errs))
	for _, fieldError := range errs {
		details = append(details, fmt.Sprintf("%s: %s", fieldError.Field(), validationMessage(fieldError)))
	}
	return details
}

func validationMessage(fieldError validator.FieldError) string {
	if fieldError.Tag() == "email" {
		return "Invalid email address"
	}

	switch fieldError.Field() {
	case "name":
		return "Name is required"
	case "email":
		return "Email is required"
	case "businessOverview":
		return "Business overview is required"
	}
	return fmt.Sprintf("failed %s validation", fieldError.Tag())
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}
