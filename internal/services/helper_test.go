package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskflow-dev/taskflow/internal/db/models"
	"github.com/taskflow-dev/taskflow/internal/db/repos"
)

// ServiceTestSuite provides a base test suite with a fresh in-memory database
// and fully wired services
type ServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	ctx context.Context

	taskRepo    *repos.TaskRepository
	linkRepo    *repos.TaskLinkRepository
	needRepo    *repos.NeedRepository
	traceRepo   *repos.NeedTraceRepository
	projectRepo *repos.ProjectRepository

	taskService    *Task
	linkService    *Link
	needService    *Need
	boardService   *Board
	projectService *Project
}

func (s *ServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.TaskLink{},
		&models.Attachment{},
		&models.Need{},
		&models.NeedTrace{},
	)
	require.NoError(s.T(), err, "Failed to run database migrations")

	s.db = db
	s.ctx = context.Background()

	s.taskRepo = repos.NewTaskRepository(db)
	s.linkRepo = repos.NewTaskLinkRepository(db)
	s.needRepo = repos.NewNeedRepository(db)
	s.traceRepo = repos.NewNeedTraceRepository(db)
	s.projectRepo = repos.NewProjectRepository(db)

	s.taskService = NewTaskService(s.taskRepo)
	s.linkService = NewLinkService(s.linkRepo, s.taskRepo)
	s.needService = NewNeedService(db, s.needRepo, s.traceRepo, s.taskRepo)
	s.boardService = NewBoardService(s.taskRepo)
	s.projectService = NewProjectService(s.projectRepo, s.taskRepo)
}

func (s *ServiceTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

func (s *ServiceTestSuite) createTask(title string) *models.Task {
	task := &models.Task{Title: title}
	s.Require().NoError(s.taskService.Create(s.ctx, task))
	return task
}

func (s *ServiceTestSuite) createChild(title string, parentID uint) *models.Task {
	task := &models.Task{Title: title, ParentID: &parentID}
	s.Require().NoError(s.taskService.Create(s.ctx, task))
	return task
}

func (s *ServiceTestSuite) createNeed(title string) *models.Need {
	need := &models.Need{Title: title}
	s.Require().NoError(s.needService.Create(s.ctx, need))
	return need
}

func strPtr(v string) *string { return &v }
func uintPtr(v uint) *uint    { return &v }
func boolPtr(v bool) *bool    { return &v }
func intPtr(v int) *int       { return &v }

// TestServices runs the base suite to verify setup does not panic
func TestServices(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
