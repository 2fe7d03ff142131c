// Package handlers provides HTTP request handling
package handlers

// Common error messages
const (
	ErrMsgInvalidReqBody = "Invalid request body"
	ErrMsgInvalidID      = "Invalid id"
)

// Task error messages
const (
	ErrMsgTaskNotFound     = "Task not found"
	ErrMsgTaskCreateFailed = "Failed to create task"
	ErrMsgTaskListFailed   = "Failed to list tasks"
	ErrMsgTaskUpdateFailed = "Failed to update task"
	ErrMsgTaskDeleteFailed = "Failed to delete task"
	ErrMsgLinkFieldsReqd   = "Fields required: target, type"
	ErrMsgLinkCreateFailed = "Failed to create link"
	ErrMsgFileRequired     = "File is required"
	ErrMsgUploadFailed     = "Failed to store attachment"
	ErrMsgKanbanFailed     = "Failed to build kanban board"
	ErrMsgGanttFailed      = "Failed to build gantt projection"
	ErrMsgChildrenFailed   = "Failed to list children"
)

// Need error messages
const (
	ErrMsgNeedNotFound     = "Need not found"
	ErrMsgNeedCreateFailed = "Failed to create need"
	ErrMsgNeedListFailed   = "Failed to list needs"
	ErrMsgNeedUpdateFailed = "Failed to update need"
	ErrMsgNeedDeleteFailed = "Failed to delete need"
	ErrMsgTracesFailed     = "Failed to list need traces"
)

// Project error messages
const (
	ErrMsgProjNotFound     = "Project not found"
	ErrMsgProjCreateFailed = "Failed to create project"
	ErrMsgProjListFailed   = "Failed to list projects"
	ErrMsgProjDeleteFailed = "Failed to delete project"
	ErrMsgMemberAddFailed  = "Failed to add project member"
)

// User error messages
const (
	ErrMsgUserNotFound     = "User not found"
	ErrMsgCreateUserFailed = "Failed to create user"
	ErrMsgGetUsersFailed   = "Failed to get users"
)
