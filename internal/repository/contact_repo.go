package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hibara/portfolio-api/internal/models"
)

// ContactRepository persists contact form submissions. The store is the only
// component that mints identifiers and creation timestamps; caller-supplied
// values for either are discarded.
type ContactRepository interface {
	Create(ctx context.Context, submission *models.ContactSubmission) error
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository constructs a repository backed by GORM.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, submission *models.ContactSubmission) error {
	submission.ID = uuid.NewString()
	submission.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Create(submission).Error
}
