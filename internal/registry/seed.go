package registry

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	remedyerrors "github.com/randalmurphal/remedy/internal/errors"
	"github.com/randalmurphal/remedy/internal/task"
)

// DefaultSeed returns the built-in remediation task set. A real
// deployment would source tasks from an external intake process; this
// fixed set mirrors the reference data used across environments.
func DefaultSeed() []task.Task {
	return []task.Task{
		{
			ID:              1,
			Title:           "Phone anomaly detection",
			Description:     "Detect and handle 1,247 anomalous phone numbers",
			Category:        task.CategoryPhone,
			Priority:        task.PriorityHigh,
			Status:          task.StatusInProgress,
			Progress:        75,
			Assignee:        "operator-001",
			Deadline:        date(2024, 1, 15),
			AutoProcessable: true,
		},
		{
			ID:              2,
			Title:           "Address completion",
			Description:     "Complete 2,156 incomplete address records",
			Category:        task.CategoryAddress,
			Priority:        task.PriorityMedium,
			Status:          task.StatusCompleted,
			Progress:        100,
			Assignee:        "ai-agent",
			Deadline:        date(2024, 1, 14),
			AutoProcessable: true,
		},
		{
			ID:              3,
			Title:           "Contract verification",
			Description:     "Verify consistency of 867 contract records",
			Category:        task.CategoryContract,
			Priority:        task.PriorityHigh,
			Status:          task.StatusPending,
			Progress:        0,
			Assignee:        "operator-005",
			Deadline:        date(2024, 1, 16),
			AutoProcessable: false,
		},
		{
			ID:              4,
			Title:           "Certificate expiry check",
			Description:     "Check validity of 134 certificates",
			Category:        task.CategoryCertificate,
			Priority:        task.PriorityLow,
			Status:          task.StatusInProgress,
			Progress:        60,
			Assignee:        "ai-agent",
			Deadline:        date(2024, 1, 17),
			AutoProcessable: true,
		},
		{
			ID:              5,
			Title:           "Outbound call verification",
			Description:     "Verify 3,421 phone numbers by outbound call",
			Category:        task.CategoryCall,
			Priority:        task.PriorityMedium,
			Status:          task.StatusInProgress,
			Progress:        45,
			Assignee:        "call-agent",
			Deadline:        date(2024, 1, 15),
			AutoProcessable: true,
		},
	}
}

// LoadSeedFile reads a YAML task seed file.
func LoadSeedFile(path string) ([]task.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var seed struct {
		Tasks []task.Task `yaml:"tasks"`
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, remedyerrors.ErrSeedInvalid("not valid YAML").WithCause(err)
	}
	if len(seed.Tasks) == 0 {
		return nil, remedyerrors.ErrSeedInvalid("seed file defines no tasks")
	}

	return seed.Tasks, nil
}

// Open builds a registry from the seed file at path, or from the
// built-in seed when path is empty.
func Open(path string) (*Registry, error) {
	if path == "" {
		return New(DefaultSeed())
	}
	tasks, err := LoadSeedFile(path)
	if err != nil {
		return nil, err
	}
	return New(tasks)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
