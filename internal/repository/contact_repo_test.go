package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hibara/portfolio-api/internal/models"
)

func setupContactTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ContactSubmission{}))
	return db
}

func TestContactRepositoryMintsIDAndTimestamp(t *testing.T) {
	repo := NewContactRepository(setupContactTestDB(t))

	submission := models.ContactSubmission{
		Name:             "Ada Lovelace",
		Email:            "ada@example.com",
		BusinessOverview: "I run a bakery",
	}

	before := time.Now().UTC()
	require.NoError(t, repo.Create(context.Background(), &submission))

	require.NotEmpty(t, submission.ID)
	require.False(t, submission.CreatedAt.Before(before.Add(-time.Second)))
	require.False(t, submission.CreatedAt.After(time.Now().UTC().Add(time.Second)))
}

func TestContactRepositoryOverwritesCallerSuppliedIdentity(t *testing.T) {
	repo := NewContactRepository(setupContactTestDB(t))

	submission := models.ContactSubmission{
		ID:               "caller-chosen-id",
		CreatedAt:        time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
		Name:             "Ada",
		Email:            "ada@example.com",
		BusinessOverview: "Bakery",
	}

	require.NoError(t, repo.Create(context.Background(), &submission))

	require.NotEqual(t, "caller-chosen-id", submission.ID)
	require.NotEqual(t, 1999, submission.CreatedAt.Year())
}

func TestContactRepositoryStoresOptionalFields(t *testing.T) {
	db := setupContactTestDB(t)
	repo := NewContactRepository(db)

	submission := models.ContactSubmission{
		Name:                   "Ada",
		Email:                  "ada@example.com",
		BusinessOverview:       "Bakery",
		CurrentChallenges:      "Manual order tracking",
		ToolsUsed:              "Sheets, Zapier, Other: Airtable",
		PreferredContactMethod: "Email",
	}
	require.NoError(t, repo.Create(context.Background(), &submission))

	var stored models.ContactSubmission
	require.NoError(t, db.First(&stored, "id = ?", submission.ID).Error)
	require.Equal(t, "Manual order tracking", stored.CurrentChallenges)
	require.Equal(t, "Sheets, Zapier, Other: Airtable", stored.ToolsUsed)
	require.Equal(t, "Email", stored.PreferredContactMethod)
}
