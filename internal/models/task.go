package models

import (
	"time"
)

type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task references its project and assignee by code/username only; both live
// in other services and are validated remotely at mutation time, never by a
// local foreign key.
type Task struct {
	ID               uint64    `gorm:"primarykey" json:"id"`
	TaskCode         string    `gorm:"type:varchar(50);not null;index" json:"task_code"`
	TaskSubject      string    `gorm:"type:varchar(255);not null" json:"task_subject"`
	TaskDetail       string    `gorm:"type:text" json:"task_detail"`
	TaskStatus       Status    `gorm:"type:varchar(20);not null;default:'OPEN'" json:"task_status"`
	ProjectCode      string    `gorm:"type:varchar(50);not null;index" json:"project_code"`
	AssignedEmployee string    `gorm:"type:varchar(255);not null;index" json:"assigned_employee"`
	AssignedDate     time.Time `json:"assigned_date"`
	// IsDeleted is a plain flag rather than gorm.DeletedAt: deleted tasks get
	// their code renamed to <code>-<id> and must stay findable under the
	// renamed code, which frees the original code for reuse.
	IsDeleted bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
