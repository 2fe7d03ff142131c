package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/taskflow-dev/taskflow/internal/db/models"
	"github.com/taskflow-dev/taskflow/internal/db/repos"
	"github.com/taskflow-dev/taskflow/internal/logger"
)

// Attachment handles file uploads bound to tasks. Files land under
// <storageDir>/attachments/task_<id>/ with a generated name so uploads
// with the same original filename never collide.
type Attachment struct {
	repo       *repos.AttachmentRepository
	tasks      *repos.TaskRepository
	storageDir string
}

// NewAttachmentService creates a new instance of AttachmentService
func NewAttachmentService(repo *repos.AttachmentRepository, tasks *repos.TaskRepository, storageDir string) *Attachment {
	return &Attachment{
		repo:       repo,
		tasks:      tasks,
		storageDir: storageDir,
	}
}

// Upload stores the file on disk and records the attachment row. If the
// row cannot be written the stored file is removed again.
func (s *Attachment) Upload(ctx context.Context, taskID uint, fileName string, src io.Reader, uploadedBy *uint) (*models.Attachment, error) {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	dir := filepath.Join(s.storageDir, "attachments", fmt.Sprintf("task_%d", taskID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create attachment directory: %w", err)
	}

	storedName := uuid.NewString() + filepath.Ext(fileName)
	storedPath := filepath.Join(dir, storedName)

	dst, err := os.Create(storedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(storedPath)
		return nil, fmt.Errorf("failed to write attachment: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(storedPath)
		return nil, fmt.Errorf("failed to write attachment: %w", err)
	}

	attachment := &models.Attachment{
		TaskID:       taskID,
		FileName:     filepath.Base(fileName),
		StoredPath:   storedPath,
		UploadedByID: uploadedBy,
	}
	if err := s.repo.Create(ctx, attachment); err != nil {
		if removeErr := os.Remove(storedPath); removeErr != nil {
			logger.Warnf("Failed to clean up stored attachment %s: %v", storedPath, removeErr)
		}
		return nil, err
	}
	return attachment, nil
}

// ListByTask returns all attachments of a task
func (s *Attachment) ListByTask(ctx context.Context, taskID uint) ([]models.Attachment, error) {
	return s.repo.ListByTask(ctx, taskID)
}
