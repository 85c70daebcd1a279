// Package toolchaintest provides a scripted Executor for service tests.
package toolchaintest

import (
	"context"
	"strings"
	"sync"
)

// Call records one invocation received by the fake.
type Call struct {
	// Name is the tool that was invoked.
	Name string
	// Args are the arguments it was invoked with.
	Args []string
}

// Line renders the call the way it would appear on a shell command line.
func (c Call) Line() string {
	if len(c.Args) == 0 {
		return c.Name
	}

	return c.Name + " " + strings.Join(c.Args, " ")
}

// Fake is a scripted Executor. Responses are matched by command prefix;
// unmatched invocations succeed with empty output.
type Fake struct {
	mu sync.Mutex

	// Calls lists every invocation in order.
	Calls []Call

	// Errors maps a command-line prefix to the error returned for it.
	Errors map[string]error

	// Outputs maps a command-line prefix to the stdout returned for it.
	Outputs map[string]string

	// Hooks maps a command-line prefix to a side effect executed on match,
	// letting tests create the files a real tool would have produced.
	Hooks map[string]func() error
}

// Run records the invocation and returns the scripted error, if any.
func (f *Fake) Run(_ context.Context, name string, args ...string) error {
	return f.record(name, args)
}

// Output records the invocation and returns the scripted stdout and error.
func (f *Fake) Output(_ context.Context, name string, args ...string) (string, error) {
	err := f.record(name, args)

	line := Call{Name: name, Args: args}.Line()
	for prefix, out := range f.Outputs {
		if strings.HasPrefix(line, prefix) {
			return out, err
		}
	}

	return "", err
}

// CommandLines returns every recorded invocation rendered as a command line.
func (f *Fake) CommandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines := make([]string, 0, len(f.Calls))
	for _, call := range f.Calls {
		lines = append(lines, call.Line())
	}

	return lines
}

func (f *Fake) record(name string, args []string) error {
	f.mu.Lock()
	call := Call{Name: name, Args: args}
	f.Calls = append(f.Calls, call)
	f.mu.Unlock()

	line := call.Line()

	for prefix, hook := range f.Hooks {
		if strings.HasPrefix(line, prefix) {
			if err := hook(); err != nil {
				return err
			}
		}
	}

	for prefix, err := range f.Errors {
		if strings.HasPrefix(line, prefix) {
			return err
		}
	}

	return nil
}
