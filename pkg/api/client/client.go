// Package client provides the API client for interacting with the TaskFlow API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/taskflow-dev/taskflow/internal/api/routes"
	"github.com/taskflow-dev/taskflow/internal/db/models"
	"github.com/taskflow-dev/taskflow/internal/types"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client is the interface for the API client
type Client interface {
	// Health check
	HealthCheck(ctx context.Context) (map[string]string, error)

	// Task endpoints
	CreateTask(ctx context.Context, req types.TaskCreateRequest) (models.Task, error)
	CreateTasks(ctx context.Context, req types.BulkTaskCreateRequest) ([]models.Task, error)
	GetTask(ctx context.Context, id uint) (models.Task, error)
	ListTasks(ctx context.Context, projectID *uint, page int) ([]models.Task, error)
	UpdateTask(ctx context.Context, id uint, req types.TaskUpdateRequest) (models.Task, error)
	DeleteTask(ctx context.Context, id uint) error
	GetChildren(ctx context.Context, id uint) ([]models.Task, error)
	CreateLink(ctx context.Context, id uint, req types.LinkRequest) (models.TaskLink, error)
	GetKanban(ctx context.Context, projectID *uint) (types.KanbanBoard, error)
	GetGantt(ctx context.Context, projectID *uint) ([]types.GanttRow, error)

	// Need endpoints
	CreateNeed(ctx context.Context, req types.NeedCreateRequest) (models.Need, error)
	GetNeed(ctx context.Context, id uint) (models.Need, error)
	ListNeeds(ctx context.Context, page int) ([]models.Need, error)
	UpdateNeed(ctx context.Context, id uint, req types.NeedUpdateRequest) (models.Need, error)
	DeleteNeed(ctx context.Context, id uint) error
	ListNeedTraces(ctx context.Context, id uint) ([]models.NeedTrace, error)

	// Project endpoints
	CreateProject(ctx context.Context, req types.ProjectCreateRequest) (models.Project, error)
	GetProject(ctx context.Context, id uint) (models.Project, error)
	GetProjectByCode(ctx context.Context, code string) (models.Project, error)
	ListProjects(ctx context.Context, page int) ([]models.Project, error)
	AddProjectMember(ctx context.Context, id uint, req types.ProjectMemberRequest) (models.ProjectMember, error)
	DeleteProject(ctx context.Context, id uint) error

	// User endpoints
	CreateUser(ctx context.Context, req types.UserCreateRequest) (models.User, error)
	ListUsers(ctx context.Context, page int) ([]models.User, error)
}

var _ Client = &APIClient{}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration

	// UserID, when non-zero, is sent as the acting user on every request
	UserID uint
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: routes.DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL string
	timeout time.Duration
	userID  uint
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &APIClient{
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
		userID:  opts.UserID,
	}, nil
}

// createAgent creates a new fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	fullURL := c.baseURL + endpoint

	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPatch:
		agent = fiber.Patch(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")
	if c.userID != 0 {
		agent.Set("X-User-ID", fmt.Sprintf("%d", c.userID))
	}

	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// doRequest sends the HTTP request and decodes the response into v
func (c *APIClient) doRequest(agent *fiber.Agent, v interface{}) error {
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	if statusCode < 200 || statusCode >= 300 {
		return &fiber.Error{
			Code:    statusCode,
			Message: string(body),
		}
	}

	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

// executeRequest creates an agent, sends the request, and processes the response
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, body, response interface{}) error {
	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	return c.doRequest(agent, response)
}

// messageEnvelope matches the {"message": ..., "data": ...} create responses
type messageEnvelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func listQuery(page int) string {
	if page > 1 {
		return fmt.Sprintf("?page=%d", page)
	}
	return ""
}

func projectQuery(projectID *uint) string {
	if projectID != nil {
		return fmt.Sprintf("?project=%d", *projectID)
	}
	return ""
}

// HealthCheck checks the health of the API server
func (c *APIClient) HealthCheck(ctx context.Context) (map[string]string, error) {
	var result map[string]string
	err := c.executeRequest(ctx, http.MethodGet, "/health", nil, &result)
	return result, err
}

// CreateTask creates a single task
func (c *APIClient) CreateTask(ctx context.Context, req types.TaskCreateRequest) (models.Task, error) {
	var envelope messageEnvelope[models.Task]
	err := c.executeRequest(ctx, http.MethodPost, routes.APIPrefix+"/tasks/", req, &envelope)
	return envelope.Data, err
}

// CreateTasks creates multiple tasks in one call
func (c *APIClient) CreateTasks(ctx context.Context, req types.BulkTaskCreateRequest) ([]models.Task, error) {
	var envelope messageEnvelope[[]models.Task]
	err := c.executeRequest(ctx, http.MethodPost, routes.APIPrefix+"/tasks/", req, &envelope)
	return envelope.Data, err
}

// GetTask retrieves a task by ID
func (c *APIClient) GetTask(ctx context.Context, id uint) (models.Task, error) {
	var task models.Task
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("%s/tasks/%d", routes.APIPrefix, id), nil, &task)
	return task, err
}

// ListTasks lists tasks, optionally filtered by project
func (c *APIClient) ListTasks(ctx context.Context, projectID *uint, page int) ([]models.Task, error) {
	endpoint := routes.APIPrefix + "/tasks/" + listQuery(page)
	if projectID != nil {
		endpoint = fmt.Sprintf("%s/tasks/?project=%d&page=%d", routes.APIPrefix, *projectID, page)
	}
	var tasks []models.Task
	err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &tasks)
	return tasks, err
}

// UpdateTask partially updates a task
func (c *APIClient) UpdateTask(ctx context.Context, id uint, req types.TaskUpdateRequest) (models.Task, error) {
	var task models.Task
	err := c.executeRequest(ctx, http.MethodPatch, fmt.Sprintf("%s/tasks/%d", routes.APIPrefix, id), req, &task)
	return task, err
}

// DeleteTask deletes a task
func (c *APIClient) DeleteTask(ctx context.Context, id uint) error {
	return c.executeRequest(ctx, http.MethodDelete, fmt.Sprintf("%s/tasks/%d", routes.APIPrefix, id), nil, nil)
}

// GetChildren retrieves the subtree below a task
func (c *APIClient) GetChildren(ctx context.Context, id uint) ([]models.Task, error) {
	var children []models.Task
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("%s/tasks/%d/children", routes.APIPrefix, id), nil, &children)
	return children, err
}

// CreateLink links a task to another
func (c *APIClient) CreateLink(ctx context.Context, id uint, req types.LinkRequest) (models.TaskLink, error) {
	var link models.TaskLink
	err := c.executeRequest(ctx, http.MethodPost, fmt.Sprintf("%s/tasks/%d/link", routes.APIPrefix, id), req, &link)
	return link, err
}

// GetKanban retrieves the kanban board projection
func (c *APIClient) GetKanban(ctx context.Context, projectID *uint) (types.KanbanBoard, error) {
	var board types.KanbanBoard
	err := c.executeRequest(ctx, http.MethodGet, routes.APIPrefix+"/tasks/kanban"+projectQuery(projectID), nil, &board)
	return board, err
}

// GetGantt retrieves the gantt projection
func (c *APIClient) GetGantt(ctx context.Context, projectID *uint) ([]types.GanttRow, error) {
	var rows []types.GanttRow
	err := c.executeRequest(ctx, http.MethodGet, routes.APIPrefix+"/tasks/gantt"+projectQuery(projectID), nil, &rows)
	return rows, err
}

// CreateNeed creates a need
func (c *APIClient) CreateNeed(ctx context.Context, req types.NeedCreateRequest) (models.Need, error) {
	var envelope messageEnvelope[models.Need]
	err := c.executeRequest(ctx, http.MethodPost, routes.APIPrefix+"/needs/", req, &envelope)
	return envelope.Data, err
}

// GetNeed retrieves a need by ID
func (c *APIClient) GetNeed(ctx context.Context, id uint) (models.Need, error) {
	var need models.Need
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("%s/needs/%d", routes.APIPrefix, id), nil, &need)
	return need, err
}

// ListNeeds lists needs
func (c *APIClient) ListNeeds(ctx context.Context, page int) ([]models.Need, error) {
	var needs []models.Need
	err := c.executeRequest(ctx, http.MethodGet, routes.APIPrefix+"/needs/"+listQuery(page), nil, &needs)
	return needs, err
}

// UpdateNeed partially updates a need, triggering trace recording and a
// possible task auto-promotion on the server
func (c *APIClient) UpdateNeed(ctx context.Context, id uint, req types.NeedUpdateRequest) (models.Need, error) {
	var need models.Need
	err := c.executeRequest(ctx, http.MethodPatch, fmt.Sprintf("%s/needs/%d", routes.APIPrefix, id), req, &need)
	return need, err
}

// DeleteNeed deletes a need
func (c *APIClient) DeleteNeed(ctx context.Context, id uint) error {
	return c.executeRequest(ctx, http.MethodDelete, fmt.Sprintf("%s/needs/%d", routes.APIPrefix, id), nil, nil)
}

// ListNeedTraces retrieves the audit history of a need
func (c *APIClient) ListNeedTraces(ctx context.Context, id uint) ([]models.NeedTrace, error) {
	var traces []models.NeedTrace
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("%s/needs/%d/traces", routes.APIPrefix, id), nil, &traces)
	return traces, err
}

// CreateProject creates a project
func (c *APIClient) CreateProject(ctx context.Context, req types.ProjectCreateRequest) (models.Project, error) {
	var envelope messageEnvelope[models.Project]
	err := c.executeRequest(ctx, http.MethodPost, routes.APIPrefix+"/projects/", req, &envelope)
	return envelope.Data, err
}

// GetProject retrieves a project by ID
func (c *APIClient) GetProject(ctx context.Context, id uint) (models.Project, error) {
	var project models.Project
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("%s/projects/%d", routes.APIPrefix, id), nil, &project)
	return project, err
}

// GetProjectByCode retrieves a project by its unique code
func (c *APIClient) GetProjectByCode(ctx context.Context, code string) (models.Project, error) {
	var project models.Project
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("%s/projects/code/%s", routes.APIPrefix, url.PathEscape(code)), nil, &project)
	return project, err
}

// AddProjectMember adds a user to a project's membership
func (c *APIClient) AddProjectMember(ctx context.Context, id uint, req types.ProjectMemberRequest) (models.ProjectMember, error) {
	var envelope messageEnvelope[models.ProjectMember]
	err := c.executeRequest(ctx, http.MethodPost, fmt.Sprintf("%s/projects/%d/members", routes.APIPrefix, id), req, &envelope)
	return envelope.Data, err
}

// ListProjects lists projects
func (c *APIClient) ListProjects(ctx context.Context, page int) ([]models.Project, error) {
	var projects []models.Project
	err := c.executeRequest(ctx, http.MethodGet, routes.APIPrefix+"/projects/"+listQuery(page), nil, &projects)
	return projects, err
}

// DeleteProject deletes a project and its tasks
func (c *APIClient) DeleteProject(ctx context.Context, id uint) error {
	return c.executeRequest(ctx, http.MethodDelete, fmt.Sprintf("%s/projects/%d", routes.APIPrefix, id), nil, nil)
}

// CreateUser creates a user
func (c *APIClient) CreateUser(ctx context.Context, req types.UserCreateRequest) (models.User, error) {
	var envelope messageEnvelope[models.User]
	err := c.executeRequest(ctx, http.MethodPost, routes.APIPrefix+"/users/", req, &envelope)
	return envelope.Data, err
}

// ListUsers lists users
func (c *APIClient) ListUsers(ctx context.Context, page int) ([]models.User, error) {
	var users []models.User
	err := c.executeRequest(ctx, http.MethodGet, routes.APIPrefix+"/users/"+listQuery(page), nil, &users)
	return users, err
}
