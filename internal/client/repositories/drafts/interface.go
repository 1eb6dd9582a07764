package drafts

import (
	"context"

	"github.com/dmitrijs2005/agsregistration/internal/client/models"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeleteKeys(ctx context.Context, keys []string) error
	Stat(ctx context.Context) ([]models.DraftMeta, error)
}
