package adapters

import (
	"bytes"
	"context"
	"fmt"

	"label-desk/internal/core/logger"
	"label-desk/internal/features/labels/domain"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const labelMimeType = "application/pdf"

// DriveStorage implements ports.LabelStorage on Google Drive.
// Uploaded files are shared read-only with anyone holding the link.
type DriveStorage struct {
	service  *drive.Service
	folderID string
}

// NewDriveStorage authenticates with a service account key and creates a DriveStorage.
// Files go to folderID, or to the service account's root when empty.
func NewDriveStorage(ctx context.Context, credentialsJSON, folderID string) (*DriveStorage, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsJSON([]byte(credentialsJSON)),
		option.WithScopes(drive.DriveFileScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}
	return NewDriveStorageWithService(svc, folderID), nil
}

// NewDriveStorageWithService creates a DriveStorage on an existing Drive client.
func NewDriveStorageWithService(svc *drive.Service, folderID string) *DriveStorage {
	return &DriveStorage{
		service:  svc,
		folderID: folderID,
	}
}

// Store uploads a label PDF and makes it readable by link.
// properties are attached to the file as Drive custom properties.
func (s *DriveStorage) Store(ctx context.Context, name string, content []byte, properties map[string]string) (*domain.StoredFile, error) {
	file := &drive.File{
		Name:        name,
		Description: fmt.Sprintf("Shipping label - %s to %s", properties["carrier"], properties["recipient"]),
		MimeType:    labelMimeType,
		Properties:  properties,
	}
	if s.folderID != "" {
		file.Parents = []string{s.folderID}
	}

	created, err := s.service.Files.Create(file).
		Media(bytes.NewReader(content), googleapi.ContentType(labelMimeType)).
		Fields("id", "name", "webViewLink", "webContentLink").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to upload label to drive: %w", err)
	}

	perm := &drive.Permission{Type: "anyone", Role: "reader"}
	if _, err := s.service.Permissions.Create(created.Id, perm).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("failed to share drive file %s: %w", created.Id, err)
	}

	logger.Named("drive").Info("Label uploaded",
		zap.String("file_id", created.Id),
		zap.String("name", created.Name),
	)

	return &domain.StoredFile{
		ID:   created.Id,
		Name: created.Name,
		Link: created.WebViewLink,
	}, nil
}
