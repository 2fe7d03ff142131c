package repos

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/db/models"
)

type ProjectRepositoryTestSuite struct {
	DBRepositoryTestSuite
}

func TestProjectRepository(t *testing.T) {
	suite.Run(t, new(ProjectRepositoryTestSuite))
}

func (s *ProjectRepositoryTestSuite) TestCreateAppliesDefaults() {
	project := s.createTestProject("DEF")

	found, err := s.projectRepo.GetByID(s.ctx, project.ID)
	s.NoError(err)
	s.Equal("#3B82F6", found.Color)
	s.Equal("folder", found.Icon)
}

func (s *ProjectRepositoryTestSuite) TestCodeUnique() {
	s.createTestProject("UNQ")

	dup := &models.Project{Name: "Another", Code: "UNQ"}
	err := s.projectRepo.Create(s.ctx, dup)
	s.Error(err)
}

func (s *ProjectRepositoryTestSuite) TestGetByCode() {
	project := s.createTestProject("GBC")

	found, err := s.projectRepo.GetByCode(s.ctx, "GBC")
	s.NoError(err)
	s.Equal(project.ID, found.ID)

	_, err = s.projectRepo.GetByCode(s.ctx, "NOPE")
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *ProjectRepositoryTestSuite) TestAddMember() {
	project := s.createTestProject("MBR")
	user := s.createTestUser("bob")

	member := &models.ProjectMember{ProjectID: project.ID, UserID: user.ID, Role: models.ProjectRoleDeveloper}
	err := s.projectRepo.AddMember(s.ctx, member)
	s.NoError(err)

	// Same user twice on one project is rejected
	dup := &models.ProjectMember{ProjectID: project.ID, UserID: user.ID, Role: models.ProjectRoleViewer}
	err = s.projectRepo.AddMember(s.ctx, dup)
	s.Error(err)

	found, err := s.projectRepo.GetByID(s.ctx, project.ID)
	s.NoError(err)
	s.Len(found.Members, 1)
}

func (s *ProjectRepositoryTestSuite) TestHasMember() {
	project := s.createTestProject("HSM")
	user := s.createTestUser("carol")

	has, err := s.projectRepo.HasMember(s.ctx, project.ID, user.ID)
	s.NoError(err)
	s.False(has)

	member := &models.ProjectMember{ProjectID: project.ID, UserID: user.ID, Role: models.ProjectRoleViewer}
	s.Require().NoError(s.projectRepo.AddMember(s.ctx, member))

	has, err = s.projectRepo.HasMember(s.ctx, project.ID, user.ID)
	s.NoError(err)
	s.True(has)
}

func (s *ProjectRepositoryTestSuite) TestDeleteCascadesTasks() {
	project := s.createTestProject("DEL")
	task := &models.Task{Title: "project task", ProjectID: &project.ID}
	s.Require().NoError(s.taskRepo.Create(s.ctx, task))

	err := s.projectRepo.Delete(s.ctx, project.ID, s.taskRepo)
	s.NoError(err)

	_, err = s.projectRepo.GetByID(s.ctx, project.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	_, err = s.taskRepo.GetByID(s.ctx, task.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}
