// Package authz is the task authorization engine. For every sensitive
// operation it combines the caller's identity and role, the answers of the
// project and user authority services, and the task at hand into a single
// allow-or-typed-deny outcome. Checks are strictly sequential: each one's
// precondition is that the previous one passed.
package authz

import (
	"context"

	"github.com/yukikurage/task-service/internal/client"
	"github.com/yukikurage/task-service/internal/identity"
	"github.com/yukikurage/task-service/internal/models"
)

// CallerRole is the caller's effective role, resolved once per request and
// then matched exhaustively. Manager wins when a user holds both roles.
type CallerRole int

const (
	CallerOther CallerRole = iota
	CallerManager
	CallerEmployee
)

// Engine performs the authority fetches and applies the decision helpers.
type Engine struct {
	projects client.ProjectClient
	users    client.UserClient
	identity identity.Service
}

// NewEngine creates an Engine over the given authority clients.
func NewEngine(projects client.ProjectClient, users client.UserClient, idSvc identity.Service) *Engine {
	return &Engine{
		projects: projects,
		users:    users,
		identity: idSvc,
	}
}

// RequireProjectExists verifies the referenced project against the project
// service. An unsuccessful envelope (or transport failure) and a missing
// project are distinct outcomes.
func (e *Engine) RequireProjectExists(ctx context.Context, projectCode string) error {
	token := e.identity.AccessToken(ctx)
	res, err := e.projects.CheckByProjectCode(ctx, token, projectCode)
	return decideProjectExists(res, err)
}

// RequireEmployeeExists verifies that the username holds the Employee role
// and exists in the user service. The role check comes first and fails
// without any remote existence call.
func (e *Engine) RequireEmployeeExists(ctx context.Context, username string) error {
	if !e.identity.HasRole(ctx, username, identity.RoleEmployee) {
		return ErrEmployeeNotFound
	}

	token := e.identity.AccessToken(ctx)
	res, err := e.users.CheckByUsername(ctx, token, username)
	return decideEmployeeExists(res, err)
}

// RequireManagerAccess verifies that caller manages the project, using the
// project service as the authority for ownership.
func (e *Engine) RequireManagerAccess(ctx context.Context, caller, projectCode string) error {
	token := e.identity.AccessToken(ctx)
	res, err := e.projects.ManagerByProjectCode(ctx, token, projectCode)
	return decideManagerAccess(caller, res, err)
}

// RequireEmployeeAccess verifies that caller is the task's assignee. Purely
// local, no remote calls.
func (e *Engine) RequireEmployeeAccess(caller string, task *models.Task) error {
	return decideEmployeeAccess(caller, task)
}

// RequireAccess is the composite check used for generic reads: managers must
// own the task's project, employees must own the task, anyone else is denied.
func (e *Engine) RequireAccess(ctx context.Context, task *models.Task) error {
	caller := e.identity.Username(ctx)

	switch e.resolveCallerRole(ctx, caller) {
	case CallerManager:
		return e.RequireManagerAccess(ctx, caller, task.ProjectCode)
	case CallerEmployee:
		return e.RequireEmployeeAccess(caller, task)
	default:
		return ErrAccessDenied
	}
}

func (e *Engine) resolveCallerRole(ctx context.Context, caller string) CallerRole {
	if e.identity.HasRole(ctx, caller, identity.RoleManager) {
		return CallerManager
	}
	if e.identity.HasRole(ctx, caller, identity.RoleEmployee) {
		return CallerEmployee
	}
	return CallerOther
}
