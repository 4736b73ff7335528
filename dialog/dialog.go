// Package dialog provides file-selection collaborators for the bridge
// commands.
package dialog

import (
	"context"
	"os"
	"path/filepath"

	"github.com/zoobzio/hhsav"
	"github.com/zoobzio/hhsav/bridge"
)

// fixed answers every request with the same path.
type fixed struct {
	path string
}

// Fixed returns a picker that always selects path. When path names an
// existing directory, save requests resolve to the suggested name inside it.
func Fixed(path string) bridge.Picker {
	return &fixed{path: path}
}

func (p *fixed) PickLoad(_ context.Context, _ bridge.Filter) (string, error) {
	if p.path == "" {
		return "", hhsav.ErrCancelled
	}
	return p.path, nil
}

func (p *fixed) PickSave(_ context.Context, _ bridge.Filter, suggestedName string) (string, error) {
	if p.path == "" {
		return "", hhsav.ErrCancelled
	}
	if info, err := os.Stat(p.path); err == nil && info.IsDir() {
		return filepath.Join(p.path, suggestedName), nil
	}
	return p.path, nil
}

// cancelled dismisses every request.
type cancelled struct{}

// Cancelled returns a picker that never selects a path.
func Cancelled() bridge.Picker {
	return cancelled{}
}

func (cancelled) PickLoad(context.Context, bridge.Filter) (string, error) {
	return "", hhsav.ErrCancelled
}

func (cancelled) PickSave(context.Context, bridge.Filter, string) (string, error) {
	return "", hhsav.ErrCancelled
}
