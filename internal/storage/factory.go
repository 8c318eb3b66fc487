package storage

import (
	"context"
	"fmt"

	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/config"
)

// FromConfig builds the Storage implementation selected by STORAGE_DRIVER.
func FromConfig(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case "local":
		return NewLocal(cfg.LocalUploadDir, cfg.LocalUploadURLBase), nil

	case "s3":
		if cfg.S3Region == "" || cfg.S3Bucket == "" || cfg.S3PublicBaseURL == "" {
			return nil, fmt.Errorf("configuração S3 incompleta: S3_REGION, S3_BUCKET e S3_PUBLIC_BASE_URL são obrigatórios")
		}
		return NewS3(ctx, S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})

	default:
		return nil, fmt.Errorf("STORAGE_DRIVER desconhecido: %s", cfg.StorageDriver)
	}
}
