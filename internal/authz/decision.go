package authz

import (
	"github.com/yukikurage/task-service/internal/client"
	"github.com/yukikurage/task-service/internal/models"
)

// Pure decision helpers. They take already-fetched authority answers and
// return the typed outcome, leaving all I/O to the Engine. A nil envelope
// together with a non-nil fetch error counts as a transport-level failure.

func decideProjectExists(res *client.CheckResponse, fetchErr error) error {
	if fetchErr != nil || !res.Success {
		return ErrProjectCheckFailed
	}
	if !res.Data {
		return ErrProjectNotFound
	}
	return nil
}

func decideEmployeeExists(res *client.CheckResponse, fetchErr error) error {
	if fetchErr != nil || !res.Success {
		return ErrEmployeeCheckFailed
	}
	if !res.Data {
		return ErrEmployeeNotFound
	}
	return nil
}

func decideManagerAccess(caller string, res *client.ManagerResponse, fetchErr error) error {
	if fetchErr != nil || !res.Success {
		return ErrManagerNotRetrieved
	}
	if res.Data != caller {
		return ErrAccessDenied
	}
	return nil
}

func decideEmployeeAccess(caller string, task *models.Task) error {
	if caller != task.AssignedEmployee {
		return ErrAccessDenied
	}
	return nil
}
