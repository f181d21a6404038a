package models

import "time"

// ContactSubmission is a single inquiry received through the contact form.
// Records are write-once: nothing updates or deletes them after creation.
type ContactSubmission struct {
	ID                     string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name                   string    `gorm:"type:text;not null" json:"name"`
	Email                  string    `gorm:"type:text;not null" json:"email"`
	BusinessOverview       string    `gorm:"column:business_overview;type:text;not null" json:"business_overview"`
	CurrentChallenges      string    `gorm:"column:current_challenges;type:text" json:"current_challenges,omitempty"`
	ToolsUsed              string    `gorm:"column:tools_used;type:text" json:"tools_used,omitempty"`
	PreferredContactMethod string    `gorm:"column:preferred_contact_method;type:text" json:"preferred_contact_method,omitempty"`
	CreatedAt              time.Time `gorm:"not null" json:"created_at"`
}

// TableName keeps the table name aligned with the site's existing schema.
func (ContactSubmission) TableName() string {
	return "contacts"
}
