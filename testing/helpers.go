// Package testing provides test utilities for hhsav.
package testing

import (
	"context"
	"errors"
	"io/fs"
	"sync"
	stdtesting "testing"

	"github.com/zoobzio/hhsav"
	"github.com/zoobzio/hhsav/bridge"
)

// ScenarioDocument returns {"level": 3, "items": ["sword", "shield"]}.
func ScenarioDocument() hhsav.Document {
	return hhsav.Object(map[string]hhsav.Document{
		"level": hhsav.Int(3),
		"items": hhsav.Array(hhsav.String("sword"), hhsav.String("shield")),
	})
}

// SampleSave returns a document shaped like a real save: app store
// purchases, bank accounts, quests, terminal state, and suspicion.
func SampleSave() hhsav.Document {
	account := func(id, name, provider, iban string, balance int64, mine bool) hhsav.Document {
		return hhsav.Object(map[string]hhsav.Document{
			"id":          hhsav.String(id),
			"accountName": hhsav.String(name),
			"provider":    hhsav.String(provider),
			"IBAN":        hhsav.String(iban),
			"balance":     hhsav.Int(balance),
			"isMine":      hhsav.Bool(mine),
			"history":     hhsav.Array(),
		})
	}

	return hhsav.Object(map[string]hhsav.Document{
		"AppStore": hhsav.Object(map[string]hhsav.Document{
			"purchasedItems":      hhsav.Array(hhsav.String("vpn"), hhsav.String("cracker")),
			"unlockedMarketItems": hhsav.Array(),
		}),
		"Bank": hhsav.Object(map[string]hhsav.Document{
			"accounts": hhsav.Array(
				account("acc-1", "John Smith", "Fleeca", "GB82WEST12345698765432", 1500, true),
				account("acc-2", "Jane Doe", "Maze", "DE89370400440532013000", -20, false),
			),
		}),
		"Quests": hhsav.Array(
			hhsav.Object(map[string]hhsav.Document{
				"id":       hhsav.Int(1),
				"done":     hhsav.Bool(true),
				"reward":   hhsav.Float(12.5),
				"nextStep": hhsav.Null(),
			}),
		),
		"Terminal": hhsav.Object(map[string]hhsav.Document{
			"history": hhsav.Array(hhsav.String("ls -la"), hhsav.String("ssh <root>@10.0.0.1")),
		}),
		"Suspicion": hhsav.Int(9007199254740993),
	})
}

// MustEncode encodes doc as .hhsav bytes or fails the test.
func MustEncode(t stdtesting.TB, doc hhsav.Document) []byte {
	t.Helper()
	data, err := hhsav.EncodeCompressed(context.Background(), doc)
	if err != nil {
		t.Fatalf("EncodeCompressed() error: %v", err)
	}
	return data
}

// MemFS is an in-memory bridge.FileSystem that counts accesses.
type MemFS struct {
	mu     sync.Mutex
	files  map[string][]byte
	Reads  int
	Writes int

	// WriteErr, when set, is returned by every WriteFile call.
	WriteErr error
}

// NewMemFS returns an empty MemFS.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

// ReadFile implements bridge.FileSystem.
func (m *MemFS) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

// WriteFile implements bridge.FileSystem.
func (m *MemFS) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

// Put stores a file without counting a write.
func (m *MemFS) Put(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), data...)
}

// Get returns a stored file without counting a read.
func (m *MemFS) Get(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	return data, ok
}

// Touched reports whether any read or write happened.
func (m *MemFS) Touched() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Reads > 0 || m.Writes > 0
}

// ScriptedPicker answers with a fixed path, or cancels when Path is empty,
// and records what it was asked.
type ScriptedPicker struct {
	Path string
	Err  error

	Filters   []bridge.Filter
	Suggested []string
}

// PickLoad implements bridge.Picker.
func (p *ScriptedPicker) PickLoad(_ context.Context, filter bridge.Filter) (string, error) {
	p.Filters = append(p.Filters, filter)
	return p.answer()
}

// PickSave implements bridge.Picker.
func (p *ScriptedPicker) PickSave(_ context.Context, filter bridge.Filter, suggestedName string) (string, error) {
	p.Filters = append(p.Filters, filter)
	p.Suggested = append(p.Suggested, suggestedName)
	return p.answer()
}

func (p *ScriptedPicker) answer() (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	if p.Path == "" {
		return "", hhsav.ErrCancelled
	}
	return p.Path, nil
}

// ErrDiskFull is a canned write failure.
var ErrDiskFull = errors.New("no space left on device")
