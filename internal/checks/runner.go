package checks

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/zxkane/aws-skills/internal/logger"
	"github.com/zxkane/aws-skills/internal/models"
	"github.com/zxkane/aws-skills/internal/utils"

	"go.uber.org/zap"
)

// CheckFunc runs a single deployment check and reports its outcome
type CheckFunc func(ctx context.Context) models.CheckResult

// Check pairs a display name with the function that performs the check
type Check struct {
	Name string
	Run  CheckFunc
}

// Runner executes deployment checks in order, printing one status block per
// check and collecting the results into a validation report. Execution stops
// at the first failed check.
type Runner struct {
	out    io.Writer
	report *models.ValidationReport
}

// NewRunner creates a runner that writes progress to out and records
// results in report
func NewRunner(out io.Writer, report *models.ValidationReport) *Runner {
	return &Runner{
		out:    out,
		report: report,
	}
}

// Execute runs the checks sequentially and returns the finished report
func (r *Runner) Execute(ctx context.Context, checks []Check) *models.ValidationReport {
	for i, check := range checks {
		fmt.Fprintf(r.out, "[%d/%d] %s\n", i+1, len(checks), check.Name)

		start := time.Now()
		result := check.Run(ctx)
		result.Name = check.Name
		result.Duration = time.Since(start)

		logger.GetLogger().Debug("Check completed",
			zap.String("check", check.Name),
			zap.String("status", string(result.Status)),
			zap.Duration("duration", result.Duration))

		r.report.Add(result)
		r.printResult(result)

		if result.Status == models.CheckStatusFail {
			break
		}
	}

	r.report.Finish()
	return r.report
}

func (r *Runner) printResult(result models.CheckResult) {
	fmt.Fprintf(r.out, "%s %s\n", statusMark(result.Status), result.Name)
	for _, msg := range result.Messages {
		fmt.Fprintf(r.out, "       %s\n", msg)
	}
}

// PrintSummary writes the per-outcome counts and total duration of the run
func (r *Runner) PrintSummary() {
	passed, warned, failed, informational := r.report.Counts()

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Validation summary: %d passed, %d warnings, %d failed", passed, warned, failed)
	if informational > 0 {
		fmt.Fprintf(r.out, ", %d informational", informational)
	}
	fmt.Fprintln(r.out)

	if !r.report.FinishedAt.IsZero() {
		fmt.Fprintf(r.out, "Completed in %s\n", r.report.FinishedAt.Sub(r.report.StartedAt).Round(time.Millisecond))
	}
}

func statusMark(status models.CheckStatus) string {
	switch status {
	case models.CheckStatusPass:
		return utils.PassMark()
	case models.CheckStatusWarn:
		return utils.WarnMark()
	case models.CheckStatusFail:
		return utils.FailMark()
	default:
		return utils.InfoMark()
	}
}
