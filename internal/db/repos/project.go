package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/db/models"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

// Create creates a new project in the database
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetByID retrieves a project by ID, including its membership
func (r *ProjectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Preload("Members").First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByCode retrieves a project by its unique code
func (r *ProjectRepository) GetByCode(ctx context.Context, code string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves all projects with pagination
func (r *ProjectRepository) List(ctx context.Context, opts *models.ListOptions) ([]models.Project, error) {
	var projects []models.Project
	query := r.db.WithContext(ctx).Model(&models.Project{}).Order("id ASC")
	if opts != nil && opts.Limit > 0 {
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Find(&projects).Error
	return projects, err
}

// Delete removes a project, its memberships, and cascades into its tasks
// through the task repository
func (r *ProjectRepository) Delete(ctx context.Context, id uint, tasks *TaskRepository) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tasks.DeleteByProject(ctx, tx, id); err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddMember adds a user to a project with the given role
func (r *ProjectRepository) AddMember(ctx context.Context, member *models.ProjectMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// HasMember reports whether a user is already a member of a project
func (r *ProjectRepository) HasMember(ctx context.Context, projectID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}
