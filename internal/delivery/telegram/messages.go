package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"staffbook/internal/app/service"
	"staffbook/internal/domain"
	"staffbook/internal/repository/sqlite"
)

const helpText = `Staff directory commands:
/employees - list everyone
` + usageEmployee + ` - show one employee
` + usageFind + ` - look up by exact name
` + usageHire + `
` + usageRetitle + `
` + usageTransfer + `
` + usageFire

func formatEmployee(e *domain.Employee) string {
	return fmt.Sprintf("#%d %s\nJob title: %s\nDepartment: %d", e.ID, e.Name, e.JobTitle, e.DepartmentID)
}

// maxListed caps /employees output so the reply stays under Telegram's
// message and keyboard limits.
const maxListed = 50

func formatList(employees []*domain.Employee) string {
	if len(employees) == 0 {
		return "No employees yet."
	}
	shown := employees
	if len(shown) > maxListed {
		shown = shown[:maxListed]
	}
	var b strings.Builder
	b.WriteString("Employees:")
	for _, e := range shown {
		fmt.Fprintf(&b, "\n#%d %s (%s)", e.ID, e.Name, e.JobTitle)
	}
	if rest := len(employees) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "\n...and %d more. Use /find or /employee <id>.", rest)
	}
	return b.String()
}

// userMessage turns an error into text that is safe to show in chat.
func userMessage(err error) string {
	var usage usageError
	var invalid *service.ValidationError
	switch {
	case errors.As(err, &usage):
		return usage.Error()
	case errors.As(err, &invalid):
		return invalid.Error()
	case errors.Is(err, service.ErrEmployeeNotFound):
		return "Employee not found."
	case sqlite.IsForeignKeyViolation(err):
		return "Unknown department."
	case errors.Is(err, context.DeadlineExceeded):
		return "The directory is busy, try again."
	}
	return "Something went wrong."
}
