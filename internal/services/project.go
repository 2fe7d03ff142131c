package services

import (
	"context"
	"math"

	"github.com/taskflow-dev/taskflow/internal/db/models"
	"github.com/taskflow-dev/taskflow/internal/db/repos"
)

// Project handles project-related operations
type Project struct {
	repo  *repos.ProjectRepository
	tasks *repos.TaskRepository
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(repo *repos.ProjectRepository, tasks *repos.TaskRepository) *Project {
	return &Project{
		repo:  repo,
		tasks: tasks,
	}
}

// Create creates a new project
func (s *Project) Create(ctx context.Context, project *models.Project) error {
	return s.repo.Create(ctx, project)
}

// Get retrieves a project by ID with its completion percentage filled in
func (s *Project) Get(ctx context.Context, projectID uint) (*models.Project, error) {
	project, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	progression, err := s.Progression(ctx, projectID)
	if err != nil {
		return nil, err
	}
	project.Progression = progression
	return project, nil
}

// GetByCode retrieves a project by its unique code with its completion
// percentage filled in
func (s *Project) GetByCode(ctx context.Context, code string) (*models.Project, error) {
	project, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	progression, err := s.Progression(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	project.Progression = progression
	return project, nil
}

// List retrieves all projects with completion percentages filled in
func (s *Project) List(ctx context.Context, opts *models.ListOptions) ([]models.Project, error) {
	projects, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		progression, err := s.Progression(ctx, projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Progression = progression
	}
	return projects, nil
}

// Delete removes a project and cascades into its tasks
func (s *Project) Delete(ctx context.Context, projectID uint) error {
	if _, err := s.repo.GetByID(ctx, projectID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, projectID, s.tasks)
}

// AddMember adds a user to a project with the given role. A user appears
// at most once in a project's membership.
func (s *Project) AddMember(ctx context.Context, member *models.ProjectMember) error {
	if _, err := s.repo.GetByID(ctx, member.ProjectID); err != nil {
		return err
	}
	exists, err := s.repo.HasMember(ctx, member.ProjectID, member.UserID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateMember
	}
	return s.repo.AddMember(ctx, member)
}

// Progression computes the completion percentage of a project: the share
// of its tasks that are done, rounded, 0 when the project has no tasks.
func (s *Project) Progression(ctx context.Context, projectID uint) (int, error) {
	total, done, err := s.tasks.CountByProject(ctx, projectID)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	return int(math.Round(float64(done) / float64(total) * 100)), nil
}
