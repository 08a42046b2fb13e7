package cli

import (
	"sort"
	"sync"

	"github.com/arthur-debert/turboterm/pkg/errors"
	"github.com/arthur-debert/turboterm/pkg/logging"
)

// Registry holds the commands an application exposes. It is filled at
// startup and safe for concurrent reads.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*Command
}

// NewRegistry creates an empty command registry
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Register validates and adds a command. Names are unique.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil {
		return errors.New(errors.ErrCommandInvalid, "command cannot be nil")
	}
	if err := cmd.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[cmd.Name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "command %q is already registered", cmd.Name).
			WithDetail("command", cmd.Name)
	}
	r.commands[cmd.Name] = cmd

	logger := logging.GetLogger("cli")

	logger.Trace().
		Str("command", cmd.Name).
		Int("params", len(cmd.Params)).
		Msg("Registered command")
	return nil
}

// MustRegister registers a command and panics on failure.
// A command table that does not register is a programming error.
func (r *Registry) MustRegister(cmd *Command) {
	if err := r.Register(cmd); err != nil {
		panic(err)
	}
}

// Get returns a registered command
func (r *Registry) Get(name string) (*Command, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, exists := r.commands[name]
	if !exists {
		return nil, errors.Newf(errors.ErrNotFound, "unknown command %q", name).
			WithDetail("command", name)
	}
	return cmd, nil
}

// List returns the registered command names in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames()
}

// Commands returns the registered commands ordered by name
func (r *Registry) Commands() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.sortedNames()
	cmds := make([]*Command, len(names))
	for i, name := range names {
		cmds[i] = r.commands[name]
	}
	return cmds
}

// Count returns the number of registered commands
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
