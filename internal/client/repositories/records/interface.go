package records

import (
	"context"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/models"
)

type Repository interface {
	Get(ctx context.Context, key string) (*models.Record, error)
	Put(ctx context.Context, r *models.Record) error
	Delete(ctx context.Context, key string) error
}
