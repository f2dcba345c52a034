package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// ErrAlreadyRunning is returned when another process with the same executable name exists.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Lister returns a snapshot of the process table.
type Lister func() ([]ps.Process, error)

// Guard finds other processes sharing an executable name.
type Guard struct {
	// list reads the process table.
	list Lister
	// pid is excluded from every lookup.
	pid int
}

// Option configures a Guard.
type Option func(*Guard)

// WithLister replaces the process table source.
func WithLister(list Lister) Option {
	return func(g *Guard) {
		g.list = list
	}
}

// WithPID sets the process id treated as the current process.
func WithPID(pid int) Option {
	return func(g *Guard) {
		g.pid = pid
	}
}

// NewGuard returns a guard over the live process table excluding the current process.
func NewGuard(opts ...Option) *Guard {
	g := &Guard{
		list: ps.Processes,
		pid:  os.Getpid(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Others returns pids of processes running the named executable, except the current one.
func (g *Guard) Others(name string) ([]int, error) {
	processList, err := g.list()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	var pids []int

	for _, process := range processList {
		if process.Pid() == g.pid {
			continue
		}

		if !sameExecutable(process.Executable(), name) {
			continue
		}

		pids = append(pids, process.Pid())
	}

	return pids, nil
}

// Ensure fails with ErrAlreadyRunning when another process runs the named executable.
func (g *Guard) Ensure(ctx context.Context, name string) error {
	pids, err := g.Others(name)
	if err != nil {
		return err
	}

	if len(pids) > 0 {
		logger.DebugKV(ctx, "Found running instances", "executable", name, "pids", pids)

		return fmt.Errorf("%w: %s (pid %d)", ErrAlreadyRunning, name, pids[0])
	}

	return nil
}

// CurrentExecutable is the base name of the running binary.
func CurrentExecutable() string {
	path, err := os.Executable()
	if err != nil {
		return filepath.Base(os.Args[0])
	}

	return filepath.Base(path)
}

// sameExecutable compares names, ignoring case and the .exe suffix on Windows.
func sameExecutable(a, b string) bool {
	if runtime.GOOS != "windows" {
		return a == b
	}

	return strings.EqualFold(strings.TrimSuffix(strings.ToLower(a), ".exe"),
		strings.TrimSuffix(strings.ToLower(b), ".exe"))
}
