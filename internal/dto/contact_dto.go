package dto

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ContactRequest defines the expected payload for the contact form endpoint.
// Field names mirror the site's form payload, so the JSON keys are camelCase.
type ContactRequest struct {
	Name                   string `json:"name" validate:"required"`
	Email                  string `json:"email" validate:"required,email"`
	BusinessOverview       string `json:"businessOverview" validate:"required"`
	CurrentChallenges      string `json:"currentChallenges"`
	ToolsUsed              string `json:"toolsUsed"`
	PreferredContactMethod string `json:"preferredContactMethod"`
}

// NewValidator builds the validator instance shared across the service.
// Field errors report the JSON name so violation details match what the
// client actually sent.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
