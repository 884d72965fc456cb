package repositories

import (
	"context"

	"github.com/boardhub/board_backend/internal/core/domain"
)

// AttachmentStorage stores post attachments in blob storage.
type AttachmentStorage interface {
	// Upload writes the file under key and returns its public URL.
	Upload(ctx context.Context, key string, file domain.UploadFile) (string, error)
	Delete(ctx context.Context, key string) error
}
