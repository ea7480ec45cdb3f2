// Package inventory lists locally installed Ollama models by shelling
// out to the `ollama list` CLI and parsing its tabular output.
package inventory

import (
	"context"
	"os/exec"
	"time"

	"github.com/sachinth/koda/internal/logger"
)

// ModelRecord describes one installed model as reported by the CLI
type ModelRecord struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Size     string `json:"size"`
	Modified string `json:"modified"`
}

// PlaceholderRecord is returned whenever the inventory command fails or
// yields no parseable rows, so callers always have at least one model
// to offer.
func PlaceholderRecord() ModelRecord {
	return ModelRecord{
		Name:     "llama2",
		FullName: "llama2:7b",
		Size:     "Unknown",
		Modified: "Unknown",
	}
}

// CommandRunner executes the inventory command and returns its stdout
type CommandRunner interface {
	Run(ctx context.Context) ([]byte, error)
}

// ExecRunner runs a real command via os/exec
type ExecRunner struct {
	Command string
	Args    []string
}

func (r *ExecRunner) Run(ctx context.Context) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.Command, r.Args...)
	return cmd.Output()
}

// Reader produces ModelRecords from the inventory command
type Reader struct {
	runner  CommandRunner
	logger  *logger.StyledLogger
	timeout time.Duration
}

func NewReader(runner CommandRunner, timeout time.Duration, logger *logger.StyledLogger) *Reader {
	return &Reader{
		runner:  runner,
		logger:  logger,
		timeout: timeout,
	}
}

// List invokes the inventory command and returns the parsed records.
// It never returns an empty slice and never returns an error: any
// failure collapses to the single placeholder record.
func (r *Reader) List(ctx context.Context) []ModelRecord {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	output, err := r.runner.Run(runCtx)
	if err != nil {
		r.logger.Error("Failed to run model inventory command", "error", err)
		return []ModelRecord{PlaceholderRecord()}
	}

	records := ParseTable(output)
	if len(records) == 0 {
		r.logger.Warn("Model inventory returned no parseable rows, using placeholder")
		return []ModelRecord{PlaceholderRecord()}
	}

	r.logger.InfoWithCount("Discovered local models", len(records))
	return records
}
