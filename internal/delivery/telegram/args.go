package telegram

import (
	"strconv"
	"strings"

	"staffbook/internal/app/service"
)

const (
	usageEmployee = "/employee <id>"
	usageFind     = "/find <name>"
	usageHire     = "/hire <name>; <job title>; <department id>"
	usageRetitle  = "/retitle <id>; <job title>"
	usageTransfer = "/transfer <id>; <department id>"
	usageFire     = "/fire <id>"
)

type usageError struct {
	usage string
}

func (e usageError) Error() string {
	return "usage: " + e.usage
}

// splitArgs splits a ";" separated payload into exactly n trimmed parts.
func splitArgs(payload string, n int) ([]string, bool) {
	parts := strings.Split(payload, ";")
	if len(parts) != n {
		return nil, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, true
}

func parsePositive(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}

func parseIDArg(payload, usage string) (int64, error) {
	id, ok := parsePositive(payload)
	if !ok {
		return 0, usageError{usage}
	}
	return id, nil
}

func parseHire(payload string) (service.HireInput, error) {
	parts, ok := splitArgs(payload, 3)
	if !ok {
		return service.HireInput{}, usageError{usageHire}
	}
	dept, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return service.HireInput{}, usageError{usageHire}
	}
	return service.HireInput{Name: parts[0], JobTitle: parts[1], DepartmentID: dept}, nil
}

func parseRetitle(payload string) (int64, string, error) {
	parts, ok := splitArgs(payload, 2)
	if !ok {
		return 0, "", usageError{usageRetitle}
	}
	id, ok := parsePositive(parts[0])
	if !ok {
		return 0, "", usageError{usageRetitle}
	}
	return id, parts[1], nil
}

func parseTransfer(payload string) (int64, int64, error) {
	parts, ok := splitArgs(payload, 2)
	if !ok {
		return 0, 0, usageError{usageTransfer}
	}
	id, ok := parsePositive(parts[0])
	if !ok {
		return 0, 0, usageError{usageTransfer}
	}
	dept, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, usageError{usageTransfer}
	}
	return id, dept, nil
}
