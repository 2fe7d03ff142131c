package services

import (
	"context"

	"github.com/taskflow-dev/taskflow/internal/db/models"
	"github.com/taskflow-dev/taskflow/internal/db/repos"
)

// Link handles task link operations
type Link struct {
	links *repos.TaskLinkRepository
	tasks *repos.TaskRepository
}

// NewLinkService creates a new instance of LinkService
func NewLinkService(links *repos.TaskLinkRepository, tasks *repos.TaskRepository) *Link {
	return &Link{
		links: links,
		tasks: tasks,
	}
}

// Create validates and persists a directed edge between two tasks. No
// reciprocal edge or transitive closure is created.
func (s *Link) Create(ctx context.Context, srcID, dstID uint, linkType models.LinkType) (*models.TaskLink, error) {
	if srcID == dstID {
		return nil, ErrSelfLink
	}
	if _, err := s.tasks.GetByID(ctx, srcID); err != nil {
		return nil, err
	}
	if _, err := s.tasks.GetByID(ctx, dstID); err != nil {
		return nil, err
	}

	exists, err := s.links.Exists(ctx, srcID, dstID, linkType)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateLink
	}

	link := &models.TaskLink{
		SrcTaskID: srcID,
		DstTaskID: dstID,
		LinkType:  linkType,
	}
	if err := s.links.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// ListBySrc returns the outgoing links of a task
func (s *Link) ListBySrc(ctx context.Context, srcID uint) ([]models.TaskLink, error) {
	return s.links.ListBySrc(ctx, srcID)
}
