package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/db/repos"
)

type AttachmentServiceTestSuite struct {
	ServiceTestSuite
	attachmentService *Attachment
	storageDir        string
}

func TestAttachmentService(t *testing.T) {
	suite.Run(t, new(AttachmentServiceTestSuite))
}

func (s *AttachmentServiceTestSuite) SetupTest() {
	s.ServiceTestSuite.SetupTest()
	s.storageDir = s.T().TempDir()
	s.attachmentService = NewAttachmentService(repos.NewAttachmentRepository(s.db), s.taskRepo, s.storageDir)
}

func (s *AttachmentServiceTestSuite) TestUpload() {
	task := s.createTask("has files")

	attachment, err := s.attachmentService.Upload(s.ctx, task.ID, "report.pdf", strings.NewReader("pdf bytes"), uintPtr(5))
	s.NoError(err)
	s.Equal("report.pdf", attachment.FileName)
	s.Equal(uint(5), *attachment.UploadedByID)
	s.False(attachment.UploadedAt.IsZero())

	// Stored under the task's own directory with the original extension
	wantDir := filepath.Join(s.storageDir, "attachments", fmt.Sprintf("task_%d", task.ID))
	s.Equal(wantDir, filepath.Dir(attachment.StoredPath))
	s.Equal(".pdf", filepath.Ext(attachment.StoredPath))

	data, err := os.ReadFile(attachment.StoredPath)
	s.NoError(err)
	s.Equal("pdf bytes", string(data))
}

func (s *AttachmentServiceTestSuite) TestUploadSameNameTwice() {
	task := s.createTask("duplicated names")

	first, err := s.attachmentService.Upload(s.ctx, task.ID, "notes.txt", strings.NewReader("a"), nil)
	s.Require().NoError(err)
	second, err := s.attachmentService.Upload(s.ctx, task.ID, "notes.txt", strings.NewReader("b"), nil)
	s.Require().NoError(err)

	s.NotEqual(first.StoredPath, second.StoredPath)

	attachments, err := s.attachmentService.ListByTask(s.ctx, task.ID)
	s.NoError(err)
	s.Len(attachments, 2)
}

func (s *AttachmentServiceTestSuite) TestUploadMissingTask() {
	_, err := s.attachmentService.Upload(s.ctx, 9999, "nope.txt", strings.NewReader("x"), nil)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}
