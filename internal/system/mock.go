package system

import (
	"context"
	"strings"
	"sync"
)

// MockRunner implements Runner for testing.
type MockRunner struct {
	mu sync.Mutex

	// Calls records all executed commands for verification.
	Calls []MockCall

	// Responses maps command patterns to responses. A pattern matches
	// when it is a prefix of the command string.
	Responses map[string]MockResponse

	// DefaultResponse is used when no matching response is found.
	DefaultResponse MockResponse

	// Hook, if set, runs for every call before the response is resolved.
	// Tests use it to simulate side effects of external tools, such as a
	// scaffolding tool populating its working directory.
	Hook func(call MockCall) error
}

// MockCall records one Run invocation.
type MockCall struct {
	Command string
	Dir     string
	Env     map[string]string
	Inherit bool
}

// MockResponse defines the response for a command.
type MockResponse struct {
	Stdout string
	Err    error
}

// NewMockRunner creates a new MockRunner.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		Calls:     make([]MockCall, 0),
		Responses: make(map[string]MockResponse),
	}
}

// AddResponse adds a response for commands starting with pattern.
func (m *MockRunner) AddResponse(pattern, stdout string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[pattern] = MockResponse{Stdout: stdout, Err: err}
}

func (m *MockRunner) Run(ctx context.Context, command string, opts RunOptions) (Result, error) {
	m.mu.Lock()
	call := MockCall{
		Command: command,
		Dir:     opts.Dir,
		Env:     opts.Env,
		Inherit: opts.InheritOutput,
	}
	m.Calls = append(m.Calls, call)
	hook := m.Hook

	// Longest matching prefix wins so "npm config get registry" beats
	// "npm config".
	var resp MockResponse
	matched := -1
	for pattern, r := range m.Responses {
		if strings.HasPrefix(command, pattern) && len(pattern) > matched {
			resp = r
			matched = len(pattern)
		}
	}
	if matched < 0 {
		resp = m.DefaultResponse
	}
	m.mu.Unlock()

	if hook != nil {
		if err := hook(call); err != nil {
			return Result{}, err
		}
	}

	if resp.Err != nil {
		return Result{}, resp.Err
	}
	return Result{Stdout: resp.Stdout}, nil
}

// LastCall returns the most recently executed command.
func (m *MockRunner) LastCall() (MockCall, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return MockCall{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}

// Commands returns the command strings of all recorded calls, in order.
func (m *MockRunner) Commands() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	commands := make([]string, len(m.Calls))
	for i, call := range m.Calls {
		commands[i] = call.Command
	}
	return commands
}

// Reset clears all recorded calls.
func (m *MockRunner) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = make([]MockCall, 0)
}
