package policy

import (
	"fmt"
	"strings"

	"github.com/SundayYogurt/placement_service/internal/domain"
)

// Rule names, in evaluation order. The order is fixed so reasoning output is
// reproducible for identical snapshots.
const (
	RuleCGPA     = "Minimum CGPA"
	RuleBacklogs = "Active Backlogs"
	RuleBranch   = "Branch Eligibility"
)

type Check struct {
	Rule     string `json:"rule"`
	Required string `json:"required"`
	Actual   string `json:"actual"`
	Passed   bool   `json:"passed"`
	Detail   string `json:"detail"`
}

type Result struct {
	Eligible  bool    `json:"eligible"`
	Checks    []Check `json:"checks"`
	Reasoning string  `json:"reasoning"`
}

// Evaluate runs every hard rule against the given snapshots. All checks run
// even after a failure so the caller always sees the full diagnostic set.
// Pure: no I/O, no mutation.
func Evaluate(student *domain.Student, drive *domain.Drive) Result {
	checks := []Check{
		cgpaCheck(student, drive),
		backlogCheck(student, drive),
		branchCheck(student, drive),
	}

	eligible := true
	var failed []Check
	for _, c := range checks {
		if !c.Passed {
			eligible = false
			failed = append(failed, c)
		}
	}

	return Result{
		Eligible:  eligible,
		Checks:    checks,
		Reasoning: buildReasoning(student.Name, len(checks), failed),
	}
}

func cgpaCheck(student *domain.Student, drive *domain.Drive) Check {
	passed := student.CGPA >= drive.MinCGPA
	op := "<"
	if passed {
		op = ">="
	}
	return Check{
		Rule:     RuleCGPA,
		Required: fmt.Sprintf(">= %.1f", drive.MinCGPA),
		Actual:   fmt.Sprintf("%.1f", student.CGPA),
		Passed:   passed,
		Detail:   fmt.Sprintf("CGPA %.1f %s required %.1f", student.CGPA, op, drive.MinCGPA),
	}
}

func backlogCheck(student *domain.Student, drive *domain.Drive) Check {
	passed := student.ActiveBacklogs <= drive.MaxBacklogs
	return Check{
		Rule:     RuleBacklogs,
		Required: fmt.Sprintf("<= %d", drive.MaxBacklogs),
		Actual:   fmt.Sprintf("%d", student.ActiveBacklogs),
		Passed:   passed,
		Detail:   fmt.Sprintf("Student has %d backlog(s), max allowed is %d", student.ActiveBacklogs, drive.MaxBacklogs),
	}
}

func branchCheck(student *domain.Student, drive *domain.Drive) Check {
	// Empty eligible list means the drive is open to all branches.
	passed := len(drive.EligibleBranches) == 0 || drive.EligibleBranches.Contains(student.Branch)
	required := "All"
	if len(drive.EligibleBranches) > 0 {
		required = strings.Join(drive.EligibleBranches, ", ")
	}
	verdict := "is"
	if !passed {
		verdict = "is NOT"
	}
	return Check{
		Rule:     RuleBranch,
		Required: required,
		Actual:   student.Branch,
		Passed:   passed,
		Detail:   fmt.Sprintf("Branch '%s' %s in eligible list", student.Branch, verdict),
	}
}

func buildReasoning(name string, total int, failed []Check) string {
	if len(failed) == 0 {
		return fmt.Sprintf("Student '%s' passed all %d policy checks. Proceeding to scoring.", name, total)
	}
	details := make([]string, 0, len(failed))
	for _, c := range failed {
		details = append(details, c.Detail)
	}
	return fmt.Sprintf("Student '%s' failed %d rule(s): %s. Rejected without scoring.",
		name, len(failed), strings.Join(details, "; "))
}
