package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teamtrackhq/teamtrack-backend-go/internal/pkg/storage"
)

type FileService interface {
	// Avatar uploads
	UploadAvatar(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// Daily update image uploads
	UploadUpdateImage(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// Task comment attachments
	UploadTaskAttachment(ctx context.Context, taskID string, file io.Reader, filename string) (string, error)

	// Chat file shares
	UploadChatFile(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

var imageExts = []string{".jpg", ".jpeg", ".png"}

var documentExts = []string{".jpg", ".jpeg", ".png", ".pdf", ".txt", ".doc", ".docx", ".xlsx", ".csv", ".zip"}

func contentTypeFor(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".pdf":
		return "application/pdf"
	case ".txt", ".csv":
		return "text/plain"
	case ".zip":
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}

func validateExt(filename string, allowed []string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return ext, nil
		}
	}
	return "", fmt.Errorf("invalid file type %q: allowed types are %s", ext, strings.Join(allowed, ", "))
}

func (s *fileServiceImpl) upload(ctx context.Context, dir, owner string, file io.Reader, filename string, allowed []string) (string, error) {
	ext, err := validateExt(filename, allowed)
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s-%s%s", owner, uuid.New().String(), ext)
	path := filepath.Join(dir, owner, newFilename)

	url, err := s.storage.Upload(ctx, file, path, contentTypeFor(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return url, nil
}

// UploadAvatar stores a profile picture for the user.
func (s *fileServiceImpl) UploadAvatar(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	return s.upload(ctx, "avatars", userID, file, filename, imageExts)
}

// UploadUpdateImage stores the screenshot attached to a daily update.
func (s *fileServiceImpl) UploadUpdateImage(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	return s.upload(ctx, "updates", userID, file, filename, imageExts)
}

// UploadTaskAttachment stores a file attached to a task comment.
func (s *fileServiceImpl) UploadTaskAttachment(ctx context.Context, taskID string, file io.Reader, filename string) (string, error) {
	return s.upload(ctx, "tasks", taskID, file, filename, documentExts)
}

// UploadChatFile stores a file shared in a chat conversation.
func (s *fileServiceImpl) UploadChatFile(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	return s.upload(ctx, "chat", userID, file, filename, documentExts)
}

// DeleteFile removes a file from storage.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL returns a URL for accessing the file.
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}
