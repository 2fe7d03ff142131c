package repos

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/db/models"
)

type NeedRepositoryTestSuite struct {
	DBRepositoryTestSuite
}

func TestNeedRepository(t *testing.T) {
	suite.Run(t, new(NeedRepositoryTestSuite))
}

func (s *NeedRepositoryTestSuite) TestCreateDefaultsToNew() {
	need := s.createTestNeed("support SSO")
	s.NotZero(need.ID)

	found, err := s.needRepo.GetByID(s.ctx, need.ID)
	s.NoError(err)
	s.Equal(models.TaskStatusNew, found.Status)
	s.False(found.IsValidated)
}

func (s *NeedRepositoryTestSuite) TestUpdate() {
	need := s.createTestNeed("needs polish")

	need.Status = models.TaskStatusToDo
	need.IsValidated = true
	err := s.needRepo.Update(s.ctx, need)
	s.NoError(err)

	updated, err := s.needRepo.GetByID(s.ctx, need.ID)
	s.NoError(err)
	s.Equal(models.TaskStatusToDo, updated.Status)
	s.True(updated.IsValidated)
}

func (s *NeedRepositoryTestSuite) TestList() {
	s.createTestNeed("one")
	s.createTestNeed("two")

	needs, err := s.needRepo.List(s.ctx, nil)
	s.NoError(err)
	s.Len(needs, 2)
}

func (s *NeedRepositoryTestSuite) TestDeleteCascadesTraces() {
	need := s.createTestNeed("doomed")

	trace := &models.NeedTrace{
		NeedID:       need.ID,
		OldStatus:    models.TaskStatusNew,
		NewStatus:    models.TaskStatusToDo,
		OldValidated: false,
		NewValidated: true,
	}
	s.Require().NoError(s.traceRepo.Create(s.ctx, trace))

	err := s.needRepo.Delete(s.ctx, need.ID)
	s.NoError(err)

	_, err = s.needRepo.GetByID(s.ctx, need.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	traces, err := s.traceRepo.ListByNeed(s.ctx, need.ID)
	s.NoError(err)
	s.Empty(traces)
}

func (s *NeedRepositoryTestSuite) TestTracesOrderedByID() {
	need := s.createTestNeed("audited")

	first := &models.NeedTrace{NeedID: need.ID, OldStatus: models.TaskStatusNew, NewStatus: models.TaskStatusToDo}
	second := &models.NeedTrace{NeedID: need.ID, OldStatus: models.TaskStatusToDo, NewStatus: models.TaskStatusInProgress}
	s.Require().NoError(s.traceRepo.Create(s.ctx, first))
	s.Require().NoError(s.traceRepo.Create(s.ctx, second))

	traces, err := s.traceRepo.ListByNeed(s.ctx, need.ID)
	s.NoError(err)
	s.Require().Len(traces, 2)
	s.Equal(models.TaskStatusToDo, traces[0].NewStatus)
	s.Equal(models.TaskStatusInProgress, traces[1].NewStatus)
	s.False(traces[0].Timestamp.IsZero())
}
