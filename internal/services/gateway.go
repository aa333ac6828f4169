package services

import (
	"context"

	"github.com/electromart/electromart-backend/internal/models"
)

// Gateway delivers composed messages to the messaging platform and
// moves media in both directions. Sends are best-effort and never
// retried here; the caller decides whether a failure matters.
type Gateway interface {
	SendText(ctx context.Context, to, body string) error
	SendMenu(ctx context.Context, to, bodyText string, buttons []models.Button) error
	SendImage(ctx context.Context, to, mediaRef, caption string) error
	SendTemplate(ctx context.Context, to, templateName string, params map[string]string) error

	UploadMedia(ctx context.Context, filePath, mimeType string) (string, error)
	GetMediaURL(ctx context.Context, mediaID string) (string, error)
	DownloadMedia(ctx context.Context, mediaURL, saveTo string) error
}
