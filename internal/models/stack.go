package models

import (
	"strings"
	"time"
)

// Stack represents a CloudFormation stack associated with a gateway deployment
type Stack struct {
	Name         string            `json:"stack_name"`
	ID           string            `json:"stack_id,omitempty"`
	Status       string            `json:"stack_status"`
	StatusReason string            `json:"status_reason,omitempty"`
	Description  string            `json:"description,omitempty"`
	Outputs      map[string]string `json:"outputs,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at,omitempty"`
}

// IsHealthy returns true when the stack ended its last operation successfully
func (s *Stack) IsHealthy() bool {
	switch s.Status {
	case "CREATE_COMPLETE", "UPDATE_COMPLETE", "IMPORT_COMPLETE":
		return true
	}
	return false
}

// IsInProgress returns true while a stack operation is still running
func (s *Stack) IsInProgress() bool {
	return strings.HasSuffix(s.Status, "_IN_PROGRESS")
}

// IsRolledBack returns true when the last stack operation was rolled back
func (s *Stack) IsRolledBack() bool {
	return strings.Contains(s.Status, "ROLLBACK")
}
