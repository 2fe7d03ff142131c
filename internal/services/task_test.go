package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/taskflow-dev/taskflow/internal/db/models"
	"github.com/taskflow-dev/taskflow/internal/types"
)

type TaskServiceTestSuite struct {
	ServiceTestSuite
}

func TestTaskService(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}

func (s *TaskServiceTestSuite) TestCreateWithValidParent() {
	parent := s.createTask("epic")
	child := s.createChild("story", parent.ID)
	s.NotZero(child.ID)
	s.Equal(parent.ID, *child.ParentID)
}

func (s *TaskServiceTestSuite) TestCreateWithMissingParent() {
	missing := uint(4242)
	task := &models.Task{Title: "orphan", ParentID: &missing}
	err := s.taskService.Create(s.ctx, task)
	s.Error(err)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *TaskServiceTestSuite) TestUpdateRejectsSelfParent() {
	task := s.createTask("loner")

	_, err := s.taskService.Update(s.ctx, task.ID, types.TaskUpdateRequest{ParentID: &task.ID})
	s.ErrorIs(err, ErrSelfParent)
}

func (s *TaskServiceTestSuite) TestUpdateRejectsCycle() {
	root := s.createTask("root")
	mid := s.createChild("mid", root.ID)
	leaf := s.createChild("leaf", mid.ID)

	// Reparenting the root under its own descendant closes a cycle
	_, err := s.taskService.Update(s.ctx, root.ID, types.TaskUpdateRequest{ParentID: &leaf.ID})
	s.ErrorIs(err, ErrHierarchyCycle)
}

func (s *TaskServiceTestSuite) TestValidationTerminatesOnCorruptChain() {
	// Wire a two-task cycle directly in storage, bypassing the service
	a := s.createTask("alpha")
	b := s.createChild("beta", a.ID)
	s.Require().NoError(s.db.Model(&models.Task{}).Where("id = ?", a.ID).Update("parent_id", b.ID).Error)

	// A new task hanging below the cycle must error out, not loop forever
	task := &models.Task{Title: "below the cycle", ParentID: &a.ID}
	err := s.taskService.Create(s.ctx, task)
	s.ErrorIs(err, ErrHierarchyTooDeep)
}

func (s *TaskServiceTestSuite) TestUpdateValidatesProgress() {
	task := s.createTask("progressing")

	_, err := s.taskService.Update(s.ctx, task.ID, types.TaskUpdateRequest{Progress: intPtr(150)})
	s.Error(err)

	updated, err := s.taskService.Update(s.ctx, task.ID, types.TaskUpdateRequest{Progress: intPtr(60)})
	s.NoError(err)
	s.Equal(60, updated.Progress)
}

func (s *TaskServiceTestSuite) TestUpdatePartialPatch() {
	task := s.createTask("patchable")

	updated, err := s.taskService.Update(s.ctx, task.ID, types.TaskUpdateRequest{
		Status:   strPtr("InProgress"),
		Priority: strPtr("high"),
	})
	s.NoError(err)
	s.Equal(models.TaskStatusInProgress, updated.Status)
	s.Equal(models.TaskPriorityHigh, updated.Priority)
	// Untouched fields keep their values
	s.Equal("patchable", updated.Title)
	s.Equal(models.TaskTypeTask, updated.Type)
}

func (s *TaskServiceTestSuite) TestUpdateStatusOnly() {
	task := s.createTask("draggable")

	updated, err := s.taskService.Update(s.ctx, task.ID, types.TaskUpdateRequest{
		Status: strPtr("Done"),
	})
	s.NoError(err)
	s.Equal(models.TaskStatusDone, updated.Status)
	s.Equal("draggable", updated.Title)

	_, err = s.taskService.Update(s.ctx, task.ID, types.TaskUpdateRequest{
		Status: strPtr("Archived"),
	})
	s.Error(err)

	_, err = s.taskService.Update(s.ctx, 9999, types.TaskUpdateRequest{
		Status: strPtr("Done"),
	})
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *TaskServiceTestSuite) TestDeleteBlockedWhileInProgress() {
	task := s.createTask("busy")
	_, err := s.taskService.Update(s.ctx, task.ID, types.TaskUpdateRequest{Status: strPtr("InProgress")})
	s.Require().NoError(err)

	err = s.taskService.Delete(s.ctx, task.ID)
	s.ErrorIs(err, ErrTaskInProgress)

	// Still there
	_, err = s.taskService.Get(s.ctx, task.ID)
	s.NoError(err)
}

func (s *TaskServiceTestSuite) TestDeleteRemovesSubtree() {
	root := s.createTask("root")
	child := s.createChild("child", root.ID)

	err := s.taskService.Delete(s.ctx, root.ID)
	s.NoError(err)

	_, err = s.taskService.Get(s.ctx, child.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *TaskServiceTestSuite) TestChildrenReturnsNestedSubtree() {
	root := s.createTask("root")
	child := s.createChild("child", root.ID)
	s.createChild("grandchild", child.ID)

	children, err := s.taskService.Children(s.ctx, root.ID)
	s.NoError(err)
	s.Require().Len(children, 1)
	s.Equal(child.ID, children[0].ID)
	s.Require().Len(children[0].Children, 1)
	s.Equal("grandchild", children[0].Children[0].Title)
}

func (s *TaskServiceTestSuite) TestCreateBatchPreservesFields() {
	reqs := []types.TaskCreateRequest{
		{Title: "one", Type: "epic", Priority: "urgent"},
		{Title: "two", Status: "InProgress"},
		{Title: "three"},
		{Title: "four", Priority: "low", OwnerID: uintPtr(9)},
		{Title: "five", Type: "subtask"},
	}
	tasks := make([]*models.Task, 0, len(reqs))
	for _, req := range reqs {
		s.Require().NoError(req.Validate())
		tasks = append(tasks, req.ToModel())
	}

	err := s.taskService.CreateBatch(s.ctx, tasks)
	s.NoError(err)

	all, err := s.taskService.List(s.ctx, nil)
	s.NoError(err)
	s.Len(all, 5)

	first, err := s.taskService.Get(s.ctx, tasks[0].ID)
	s.NoError(err)
	s.Equal(models.TaskTypeEpic, first.Type)
	s.Equal(models.TaskPriorityUrgent, first.Priority)

	second, err := s.taskService.Get(s.ctx, tasks[1].ID)
	s.NoError(err)
	s.Equal(models.TaskStatusInProgress, second.Status)

	third, err := s.taskService.Get(s.ctx, tasks[2].ID)
	s.NoError(err)
	s.Equal(models.TaskStatusToDo, third.Status)
	s.Equal(models.TaskPriorityMedium, third.Priority)

	fourth, err := s.taskService.Get(s.ctx, tasks[3].ID)
	s.NoError(err)
	s.Require().NotNil(fourth.OwnerID)
	s.Equal(uint(9), *fourth.OwnerID)
}
