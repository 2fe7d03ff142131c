package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskflow-dev/taskflow/internal/db/models"
	"github.com/taskflow-dev/taskflow/internal/types"
)

// APITestSuite boots the full application against an in-memory database
// and drives it over HTTP
type APITestSuite struct {
	suite.Suite
	db  *gorm.DB
	app *fiber.App
}

func TestAPI(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (s *APITestSuite) SetupTest() {
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
	s.app = New(db, Options{
		StorageDir:            s.T().TempDir(),
		DisableStartupMessage: true,
	})
}

func (s *APITestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// request sends a JSON request to the app and returns the response
func (s *APITestSuite) request(method, target string, body interface{}) *http.Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// decode reads the response body into v
func (s *APITestSuite) decode(resp *http.Response, v interface{}) {
	defer func() { _ = resp.Body.Close() }()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(v))
}

func (s *APITestSuite) createTask(title string) models.Task {
	resp := s.request(http.MethodPost, "/api/tasks/", types.TaskCreateRequest{Title: title})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var created struct {
		Data models.Task `json:"data"`
	}
	s.decode(resp, &created)
	return created.Data
}

func (s *APITestSuite) TestHealthCheck() {
	resp := s.request(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var body map[string]string
	s.decode(resp, &body)
	s.Equal("healthy", body["status"])
}

func (s *APITestSuite) TestCreateAndGetTask() {
	task := s.createTask("wire the API")
	s.NotZero(task.ID)
	s.Equal(models.TaskStatusToDo, task.Status)

	resp := s.request(http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var fetched models.Task
	s.decode(resp, &fetched)
	s.Equal(task.ID, fetched.ID)
	s.Equal("wire the API", fetched.Title)
}

func (s *APITestSuite) TestCreateTaskRejectsBadPayload() {
	resp := s.request(http.MethodPost, "/api/tasks/", types.TaskCreateRequest{Title: ""})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var body types.SlugResponse
	s.decode(resp, &body)
	s.Equal(types.InvalidInputSlug, body.Slug)

	resp = s.request(http.MethodPost, "/api/tasks/", types.TaskCreateRequest{Title: "x", Status: "Archived"})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APITestSuite) TestBulkCreate() {
	bulk := types.BulkTaskCreateRequest{Tasks: []types.TaskCreateRequest{
		{Title: "one", Priority: "high"},
		{Title: "two", Type: "story"},
		{Title: "three"},
	}}
	resp := s.request(http.MethodPost, "/api/tasks/", bulk)
	s.Equal(http.StatusCreated, resp.StatusCode)

	var created struct {
		Data []models.Task `json:"data"`
	}
	s.decode(resp, &created)
	s.Len(created.Data, 3)

	resp = s.request(http.MethodGet, "/api/tasks/", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var tasks []models.Task
	s.decode(resp, &tasks)
	s.Len(tasks, 3)
}

func (s *APITestSuite) TestListTasksStatusFilter() {
	s.createTask("open item")
	resp := s.request(http.MethodPost, "/api/tasks/", map[string]interface{}{
		"title":  "closed item",
		"status": "Done",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.request(http.MethodGet, "/api/tasks/?status=Done", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var tasks []models.Task
	s.decode(resp, &tasks)
	s.Require().Len(tasks, 1)
	s.Equal("closed item", tasks[0].Title)

	resp = s.request(http.MethodGet, "/api/tasks/?status=Bogus", nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APITestSuite) TestUpdateTask() {
	task := s.createTask("to update")

	resp := s.request(http.MethodPatch, fmt.Sprintf("/api/tasks/%d", task.ID), map[string]interface{}{
		"status":   "InProgress",
		"progress": 25,
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	var updated models.Task
	s.decode(resp, &updated)
	s.Equal(models.TaskStatusInProgress, updated.Status)
	s.Equal(25, updated.Progress)
}

func (s *APITestSuite) TestDeleteGuardsInProgress() {
	task := s.createTask("active work")
	resp := s.request(http.MethodPatch, fmt.Sprintf("/api/tasks/%d", task.ID), map[string]interface{}{
		"status": "InProgress",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp = s.request(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var body types.SlugResponse
	s.decode(resp, &body)
	s.Equal(types.BusinessRuleSlug, body.Slug)
}

func (s *APITestSuite) TestDeleteTask() {
	task := s.createTask("short lived")

	resp := s.request(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.request(http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APITestSuite) TestSelfParentRejected() {
	task := s.createTask("self referential")

	resp := s.request(http.MethodPatch, fmt.Sprintf("/api/tasks/%d", task.ID), map[string]interface{}{
		"parent_id": task.ID,
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APITestSuite) TestLinkEndpoints() {
	src := s.createTask("link source")
	dst := s.createTask("link target")

	// Missing fields
	resp := s.request(http.MethodPost, fmt.Sprintf("/api/tasks/%d/link", src.ID), map[string]interface{}{})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	// Valid link
	resp = s.request(http.MethodPost, fmt.Sprintf("/api/tasks/%d/link", src.ID), map[string]interface{}{
		"target": dst.ID,
		"type":   "blocks",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var link models.TaskLink
	s.decode(resp, &link)
	s.Equal(src.ID, link.SrcTaskID)
	s.Equal(dst.ID, link.DstTaskID)

	// Duplicate is a validation error
	resp = s.request(http.MethodPost, fmt.Sprintf("/api/tasks/%d/link", src.ID), map[string]interface{}{
		"target": dst.ID,
		"type":   "blocks",
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	// Unknown target task
	resp = s.request(http.MethodPost, fmt.Sprintf("/api/tasks/%d/link", src.ID), map[string]interface{}{
		"target": 9999,
		"type":   "blocks",
	})
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APITestSuite) TestKanbanShape() {
	s.createTask("pending work")

	resp := s.request(http.MethodGet, "/api/tasks/kanban", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var board map[string][]models.Task
	s.decode(resp, &board)
	for _, column := range []string{"New", "ToDo", "InProgress", "Done"} {
		_, ok := board[column]
		s.True(ok, "missing column %s", column)
	}
	s.Len(board["ToDo"], 1)
}

func (s *APITestSuite) TestGantt() {
	resp := s.request(http.MethodPost, "/api/tasks/", map[string]interface{}{
		"title":      "scheduled task",
		"start_date": "2026-05-01T00:00:00Z",
		"due_date":   "2026-05-15T00:00:00Z",
		"progress":   10,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.createTask("unscheduled task")

	resp = s.request(http.MethodGet, "/api/tasks/gantt", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var rows []types.GanttRow
	s.decode(resp, &rows)
	s.Require().Len(rows, 1)
	s.Equal("scheduled task", rows[0].Title)
}

func (s *APITestSuite) TestChildrenEndpoint() {
	parent := s.createTask("parent")
	resp := s.request(http.MethodPost, "/api/tasks/", map[string]interface{}{
		"title":     "child",
		"parent_id": parent.ID,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.request(http.MethodGet, fmt.Sprintf("/api/tasks/%d/children", parent.ID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var children []models.Task
	s.decode(resp, &children)
	s.Require().Len(children, 1)
	s.Equal("child", children[0].Title)
}

func (s *APITestSuite) TestNeedLifecycleWithPromotion() {
	resp := s.request(http.MethodPost, "/api/needs/", types.NeedCreateRequest{Title: "export to CSV"})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var created struct {
		Data models.Need `json:"data"`
	}
	s.decode(resp, &created)
	need := created.Data
	s.Equal(models.TaskStatusNew, need.Status)

	// Validate the need as user 42
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/needs/%d", need.ID),
		bytes.NewReader([]byte(`{"status":"ToDo","is_validated":true}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	patchResp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, patchResp.StatusCode)

	var updated models.Need
	s.decode(patchResp, &updated)
	s.True(updated.IsValidated)

	// The promoted task exists and belongs to the acting user
	resp = s.request(http.MethodGet, "/api/tasks/", nil)
	var tasks []models.Task
	s.decode(resp, &tasks)
	s.Require().Len(tasks, 1)
	s.Equal("export to CSV", tasks[0].Title)
	s.Require().NotNil(tasks[0].OwnerID)
	s.Equal(uint(42), *tasks[0].OwnerID)

	// One trace row recorded the mutation
	resp = s.request(http.MethodGet, fmt.Sprintf("/api/needs/%d/traces", need.ID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var traces []models.NeedTrace
	s.decode(resp, &traces)
	s.Require().Len(traces, 1)
	s.Equal(models.TaskStatusNew, traces[0].OldStatus)
	s.Equal(models.TaskStatusToDo, traces[0].NewStatus)
	s.True(traces[0].NewValidated)
}

func (s *APITestSuite) TestNeedDeleteGuard() {
	resp := s.request(http.MethodPost, "/api/needs/", types.NeedCreateRequest{Title: "busy need"})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var created struct {
		Data models.Need `json:"data"`
	}
	s.decode(resp, &created)

	resp = s.request(http.MethodPatch, fmt.Sprintf("/api/needs/%d", created.Data.ID), map[string]interface{}{
		"status": "InProgress",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp = s.request(http.MethodDelete, fmt.Sprintf("/api/needs/%d", created.Data.ID), nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var body types.SlugResponse
	s.decode(resp, &body)
	s.Equal(types.BusinessRuleSlug, body.Slug)
}

func (s *APITestSuite) TestProjectEndpoints() {
	resp := s.request(http.MethodPost, "/api/projects/", types.ProjectCreateRequest{Name: "TaskFlow", Code: "TFL"})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var created struct {
		Data models.Project `json:"data"`
	}
	s.decode(resp, &created)
	project := created.Data
	s.NotZero(project.ID)

	// A done task inside the project drives its progression
	resp = s.request(http.MethodPost, "/api/tasks/", map[string]interface{}{
		"title":      "done work",
		"status":     "Done",
		"project_id": project.ID,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.request(http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var fetched models.Project
	s.decode(resp, &fetched)
	s.Equal(100, fetched.Progression)

	resp = s.request(http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ID), nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.request(http.MethodGet, "/api/tasks/", nil)
	var tasks []models.Task
	s.decode(resp, &tasks)
	s.Empty(tasks)
}

func (s *APITestSuite) TestProjectByCodeEndpoint() {
	resp := s.request(http.MethodPost, "/api/projects/", types.ProjectCreateRequest{Name: "Core", Code: "CORE"})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.request(http.MethodGet, "/api/projects/code/CORE", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var fetched models.Project
	s.decode(resp, &fetched)
	s.Equal("Core", fetched.Name)

	resp = s.request(http.MethodGet, "/api/projects/code/NOPE", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APITestSuite) TestProjectMemberEndpoint() {
	resp := s.request(http.MethodPost, "/api/projects/", types.ProjectCreateRequest{Name: "Team", Code: "TEAM"})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var created struct {
		Data models.Project `json:"data"`
	}
	s.decode(resp, &created)
	project := created.Data

	userID := uint(5)
	target := fmt.Sprintf("/api/projects/%d/members", project.ID)
	resp = s.request(http.MethodPost, target, types.ProjectMemberRequest{UserID: &userID, Role: "developer"})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var added struct {
		Data models.ProjectMember `json:"data"`
	}
	s.decode(resp, &added)
	s.Equal(models.ProjectRoleDeveloper, added.Data.Role)

	// Same user twice on one project is rejected
	resp = s.request(http.MethodPost, target, types.ProjectMemberRequest{UserID: &userID})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	// Missing user_id is rejected
	resp = s.request(http.MethodPost, target, map[string]interface{}{"role": "viewer"})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.request(http.MethodPost, "/api/projects/9999/members", types.ProjectMemberRequest{UserID: &userID})
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.request(http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var fetched models.Project
	s.decode(resp, &fetched)
	s.Len(fetched.Members, 1)
}

func (s *APITestSuite) TestUserEndpoints() {
	resp := s.request(http.MethodPost, "/api/users/", types.UserCreateRequest{Username: "carol", Email: "carol@example.com"})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var created struct {
		Data models.User `json:"data"`
	}
	s.decode(resp, &created)
	s.Equal("carol", created.Data.Username)

	resp = s.request(http.MethodGet, "/api/users/", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var users []models.User
	s.decode(resp, &users)
	s.Len(users, 1)
}

func (s *APITestSuite) TestUploadAttachment() {
	task := s.createTask("with attachment")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "design.png")
	s.Require().NoError(err)
	_, err = part.Write([]byte("png bytes"))
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/tasks/%d/upload", task.ID), &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(http.StatusCreated, resp.StatusCode)

	var attachment models.Attachment
	s.decode(resp, &attachment)
	s.Equal("design.png", attachment.FileName)

	// Missing file field
	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/tasks/%d/upload", task.ID), nil)
	resp, err = s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}
