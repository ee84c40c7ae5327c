package service

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"fern-and-paper/logger"
)

// StorageServiceInterface defines the contract for image storage operations
type StorageServiceInterface interface {
	Upload(ctx context.Context, name, mimeType string, content io.Reader) (*UploadedFile, error)
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// UploadedFile describes a stored image.
type UploadedFile struct {
	FileID string `json:"fileId"`
	URL    string `json:"url"`
}

// StorageService stores product images in a Google Drive folder
type StorageService struct {
	client   *drive.Service
	folderID string
}

// NewStorageService creates a new StorageService instance
// credentialsPath should be the path to the Service Account JSON file
func NewStorageService(credentialsPath, folderID string) (*StorageService, error) {
	ctx := context.Background()

	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &StorageService{client: driveService, folderID: folderID}, nil
}

// Ensure StorageService implements StorageServiceInterface
var _ StorageServiceInterface = (*StorageService)(nil)

// Upload stores one image in the configured folder and returns its id and
// public URL.
func (s *StorageService) Upload(ctx context.Context, name, mimeType string, content io.Reader) (*UploadedFile, error) {
	logger.L.Infof("📥 Uploading image %s (%s)", name, mimeType)

	meta := &drive.File{
		Name:     name,
		MimeType: mimeType,
	}
	if s.folderID != "" {
		meta.Parents = []string{s.folderID}
	}

	file, err := s.client.Files.Create(meta).
		Media(content).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		logger.L.Errorf("❌ Error uploading image %s: %v", name, err)
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	logger.L.Infof("✓ Image uploaded: %s", file.Id)
	return &UploadedFile{
		FileID: file.Id,
		URL:    fmt.Sprintf("https://drive.google.com/uc?id=%s", file.Id),
	}, nil
}

// Download fetches the raw bytes of a stored image.
func (s *StorageService) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := s.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download image %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", fileID, err)
	}
	return data, nil
}
