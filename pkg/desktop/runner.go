package desktop

import (
	"context"
	"os/exec"
)

// Runner starts host processes.
type Runner interface {
	// Start launches a process without waiting for it to exit.
	Start(name string, args ...string) error
	// Run waits for the process and returns its combined output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	LookPath(file string) (string, error)
}

type execRunner struct{}

func NewExecRunner() Runner {
	return execRunner{}
}

func (execRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

func (execRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}
