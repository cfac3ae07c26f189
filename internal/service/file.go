package service

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/africahouse/tradeportal/internal/model"
	"github.com/africahouse/tradeportal/internal/repository"
	"github.com/africahouse/tradeportal/internal/storage"
	"github.com/google/uuid"
)

type FileService struct {
	fileRepo repository.FileRepository
	storage  storage.Storage
}

func NewFileService(fileRepo repository.FileRepository, storage storage.Storage) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		storage:  storage,
	}
}

// Upload stores a file in object storage and creates a database record.
// Validation (type, size, content) is the caller's responsibility.
func (s *FileService) Upload(userID, ownerType, ownerID, fileType string, file multipart.File, header *multipart.FileHeader) (*model.File, error) {
	ext := filepath.Ext(header.Filename)
	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	folderName := fileType + "s" // logo -> logos
	storagePath := filepath.Join(folderName, filename)

	err := s.storage.Save(storagePath, file)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	fileModel := &model.File{
		ID:           uuid.New().String(),
		UserID:       userID,
		OwnerType:    ownerType,
		OwnerID:      ownerID,
		Type:         fileType,
		Filename:     filename,
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		StoragePath:  storagePath,
		CreatedAt:    time.Now(),
	}

	err = s.fileRepo.Create(fileModel)
	if err != nil {
		// If DB insert fails, try to clean up the uploaded file
		delErr := s.storage.Delete(storagePath)
		if delErr != nil {
			slog.Error("failed to delete file from storage during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	return fileModel, nil
}

// Delete removes the file record and its stored object.
func (s *FileService) Delete(id string) error {
	file, err := s.fileRepo.ByID(id)
	if err != nil {
		return err
	}

	err = s.fileRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	err = s.storage.Delete(file.StoragePath)
	if err != nil {
		// Orphaned object only; the record is gone
		slog.Warn("failed to delete file from storage", "error", err, "path", file.StoragePath)
	}

	return nil
}

// URL returns the access URL for a file.
func (s *FileService) URL(file *model.File) string {
	if file == nil {
		return ""
	}
	return s.storage.URL(file.StoragePath)
}
