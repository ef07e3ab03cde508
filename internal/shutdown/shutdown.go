// Package shutdown maintains the process-wide list of cleanup actions run
// once at normal exit.
//
// Hooks are the secondary defense for restoring mutated global
// configuration: the primary path is the guard package's deferred restore
// at the call site. Hooks are not invoked on abnormal termination
// (signal kill), which is a known gap rather than a feature.
package shutdown

import (
	"sync"

	"github.com/glowkit-dev/glowkit/packages/sandbox-gen/internal/logging"
)

var (
	mu    sync.Mutex
	hooks []func()
	ran   bool
)

// Register appends a zero-argument cleanup action to the process-wide list.
// Hooks registered after Run has executed are never invoked.
func Register(hook func()) {
	mu.Lock()
	defer mu.Unlock()
	hooks = append(hooks, hook)
}

// Run invokes all registered hooks once, in registration order. A panicking
// hook does not stop the remaining hooks. Subsequent calls are no-ops.
func Run() {
	mu.Lock()
	if ran {
		mu.Unlock()
		return
	}
	ran = true
	pending := hooks
	hooks = nil
	mu.Unlock()

	for _, hook := range pending {
		runOne(hook)
	}
}

func runOne(hook func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.Warn("shutdown hook panicked", "panic", r)
		}
	}()
	hook()
}

// Reset clears all registered hooks and re-arms Run (useful for testing).
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	hooks = nil
	ran = false
}
