package plugin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Monitor names the synchronization a post-build step needs from the host.
type Monitor string

const (
	MonitorNone  Monitor = "NONE"
	MonitorStep  Monitor = "STEP"
	MonitorBuild Monitor = "BUILD"
)

// ErrUnknownPlugin is returned by Lookup for names that were never registered.
var ErrUnknownPlugin = errors.New("unknown plugin")

// Plugin is what a post-build publisher exposes to the host CI system.
type Plugin interface {
	Name() string
	DisplayName() string
	HelpFile() string
	IsApplicable(jobType string) bool
	NeedsToRunAfterFinalized() bool
	RequiredMonitor() Monitor
	// CheckWorkspaceFileMask validates a comma separated list of glob
	// patterns against the files of workspace.
	CheckWorkspaceFileMask(ctx context.Context, workspace, mask string) FormValidation
	// NewInstance builds a configured instance from submitted form data.
	NewInstance(form map[string]any) (*Instance, error)
}

// Description is a printable snapshot of a plugin's registration data.
type Description struct {
	Name                     string  `json:"name"`
	DisplayName              string  `json:"display_name"`
	HelpFile                 string  `json:"help_file"`
	NeedsToRunAfterFinalized bool    `json:"needs_to_run_after_finalized"`
	RequiredMonitor          Monitor `json:"required_monitor"`
}

// Describe returns the registration data of p.
func Describe(p Plugin) Description {
	return Description{
		Name:                     p.Name(),
		DisplayName:              p.DisplayName(),
		HelpFile:                 p.HelpFile(),
		NeedsToRunAfterFinalized: p.NeedsToRunAfterFinalized(),
		RequiredMonitor:          p.RequiredMonitor(),
	}
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Plugin{}
)

// Register makes p available through Lookup. Names must be unique.
func Register(p Plugin) error {
	if p == nil || p.Name() == "" {
		return fmt.Errorf("plugin must have a name")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[p.Name()]; exists {
		return fmt.Errorf("plugin %s is already registered", p.Name())
	}
	registry[p.Name()] = p
	return nil
}

// Lookup returns the plugin registered under name.
func Lookup(name string) (Plugin, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlugin, name)
	}
	return p, nil
}

// All returns every registered plugin ordered by name.
func All() []Plugin {
	registryMu.RLock()
	defer registryMu.RUnlock()
	plugins := make([]Plugin, 0, len(registry))
	for _, p := range registry {
		plugins = append(plugins, p)
	}
	sort.Slice(plugins, func(i, j int) bool { return plugins[i].Name() < plugins[j].Name() })
	return plugins
}
