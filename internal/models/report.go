package models

import (
	"time"

	"github.com/google/uuid"
)

// CheckStatus represents the outcome of a single deployment check
type CheckStatus string

const (
	CheckStatusPass CheckStatus = "pass"
	CheckStatusWarn CheckStatus = "warn"
	CheckStatusFail CheckStatus = "fail"
	CheckStatusInfo CheckStatus = "info"
)

// CheckResult represents the outcome of one deployment check
type CheckResult struct {
	Name     string        `json:"name"`
	Status   CheckStatus   `json:"status"`
	Messages []string      `json:"messages,omitempty"`
	Duration time.Duration `json:"duration"`
}

// AddMessage appends a detail line to the check result
func (r *CheckResult) AddMessage(msg string) {
	r.Messages = append(r.Messages, msg)
}

// ValidationReport collects the results of a deployment validation run
type ValidationReport struct {
	RunID      string        `json:"run_id"`
	GatewayID  string        `json:"gateway_id"`
	Region     string        `json:"region,omitempty"`
	AccountID  string        `json:"account_id,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at,omitempty"`
	Checks     []CheckResult `json:"checks"`
}

// NewValidationReport creates a report for a validation run against a gateway
func NewValidationReport(gatewayID string) *ValidationReport {
	return &ValidationReport{
		RunID:     uuid.New().String(),
		GatewayID: gatewayID,
		StartedAt: time.Now(),
	}
}

// Add appends a check result to the report
func (r *ValidationReport) Add(result CheckResult) {
	r.Checks = append(r.Checks, result)
}

// Finish records the end time of the validation run
func (r *ValidationReport) Finish() {
	r.FinishedAt = time.Now()
}

// HasFailure returns true if any check in the report failed
func (r *ValidationReport) HasFailure() bool {
	for _, check := range r.Checks {
		if check.Status == CheckStatusFail {
			return true
		}
	}
	return false
}

// Counts returns the number of checks per outcome
func (r *ValidationReport) Counts() (passed, warned, failed, informational int) {
	for _, check := range r.Checks {
		switch check.Status {
		case CheckStatusPass:
			passed++
		case CheckStatusWarn:
			warned++
		case CheckStatusFail:
			failed++
		case CheckStatusInfo:
			informational++
		}
	}
	return passed, warned, failed, informational
}
