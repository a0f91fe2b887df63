// Package cli implements the remedy command-line interface.
package cli

import (
	"github.com/randalmurphal/remedy/internal/config"
	"github.com/randalmurphal/remedy/internal/events"
	"github.com/randalmurphal/remedy/internal/merge"
	"github.com/randalmurphal/remedy/internal/registry"
	"github.com/randalmurphal/remedy/internal/session"
	"github.com/randalmurphal/remedy/internal/task"
)

// app bundles the pieces most commands need. Each invocation loads
// config and seed fresh; task state lives for the life of the command.
type app struct {
	cfg        *config.Config
	registry   *registry.Registry
	controller *session.Controller
}

func loadApp() (*app, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	seed := cfg.SeedFile
	if seedFile != "" {
		seed = seedFile
	}
	reg, err := registry.Open(seed)
	if err != nil {
		return nil, err
	}

	eng := merge.New(reg, events.NewNopPublisher(), cfg.AgentLabel)
	return &app{
		cfg:        cfg,
		registry:   reg,
		controller: session.NewController(reg, eng, nil),
	}, nil
}

// Helper functions

func statusIcon(status task.Status) string {
	switch status {
	case task.StatusPending:
		return "○"
	case task.StatusInProgress:
		return "◐"
	case task.StatusCompleted:
		return "●"
	default:
		return "?"
	}
}

func priorityIcon(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return "▲"
	case task.PriorityMedium:
		return "■"
	case task.PriorityLow:
		return "▽"
	default:
		return "?"
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
