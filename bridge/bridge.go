// Package bridge exposes the save codec to an application shell as three
// commands: load a save, save it as .hhsav, and export it as plain JSON.
//
// File selection and file access are collaborators injected through the
// Picker and FileSystem interfaces, so the commands run the same under a
// desktop shell, a terminal, or a test.
package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zoobzio/hhsav"
)

// Filter restricts a file dialog to a set of extensions.
type Filter struct {
	Name       string   // Label shown by the dialog (e.g., "Save Files")
	Extensions []string // Extensions without the dot (e.g., "hhsav")
}

// Dialog filters used by the commands.
var (
	LoadFilter = Filter{Name: "Save Files", Extensions: []string{hhsav.ExtSave}}
	SaveFilter = Filter{Name: "HHSV Save File", Extensions: []string{hhsav.ExtSave}}
	JSONFilter = Filter{Name: "JSON File", Extensions: []string{hhsav.ExtExport}}
)

// Picker asks the user for a file path.
//
// Both methods return an error wrapping hhsav.ErrCancelled when the user
// dismisses the dialog without choosing a path.
type Picker interface {
	// PickLoad asks for an existing file to open.
	PickLoad(ctx context.Context, filter Filter) (string, error)

	// PickSave asks for a destination path, pre-filled with suggestedName.
	PickSave(ctx context.Context, filter Filter, suggestedName string) (string, error)
}

// FileSystem reads and writes whole files. Partial reads and writes are
// reported as errors; nothing is retried.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// Status strings returned by successful saves.
const (
	StatusSaved    = "File saved successfully!"
	StatusExported = "JSON exported successfully!"
)

// Commands runs the shell commands against a picker and a filesystem.
// Commands holds no mutable state and is safe for concurrent use.
type Commands struct {
	picker Picker
	fs     FileSystem
	codec  *hhsav.SaveCodec
	logger *slog.Logger
}

// Option configures Commands.
type Option func(*Commands)

// WithFileSystem replaces the default OS filesystem.
func WithFileSystem(fs FileSystem) Option {
	return func(c *Commands) {
		c.fs = fs
	}
}

// WithCodec replaces the default .hhsav codec.
func WithCodec(codec *hhsav.SaveCodec) Option {
	return func(c *Commands) {
		c.codec = codec
	}
}

// WithLogger sets the logger for command outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Commands) {
		c.logger = logger
	}
}

// New creates Commands that select paths with picker.
func New(picker Picker, opts ...Option) *Commands {
	c := &Commands{
		picker: picker,
		fs:     OSFileSystem{},
		codec:  hhsav.Default(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Codec returns the codec used by the commands.
func (c *Commands) Codec() *hhsav.SaveCodec {
	return c.codec
}

// LoadSave asks for a .hhsav file, then reads, decompresses, and parses it.
func (c *Commands) LoadSave(ctx context.Context) (doc hhsav.Document, err error) {
	start := time.Now()
	var path string
	emitCommandStart(ctx, CommandLoad)
	defer func() {
		c.finish(ctx, CommandLoad, path, time.Since(start), err)
	}()

	path, err = c.picker.PickLoad(ctx, LoadFilter)
	if err != nil {
		return hhsav.Document{}, pickError("load", hhsav.MessageNoFileSelected, err)
	}

	data, err := c.fs.ReadFile(path)
	if err != nil {
		return hhsav.Document{}, hhsav.NewPathError(hhsav.ErrIO, "read", path, err)
	}

	return c.codec.DecodeCompressed(ctx, data)
}

// SaveHHSAV asks for a destination, then writes doc as a .hhsav file.
func (c *Commands) SaveHHSAV(ctx context.Context, doc hhsav.Document, suggestedName string) (status string, err error) {
	start := time.Now()
	var path string
	emitCommandStart(ctx, CommandSaveHHSAV)
	defer func() {
		c.finish(ctx, CommandSaveHHSAV, path, time.Since(start), err)
	}()

	path, err = c.picker.PickSave(ctx, SaveFilter, suggestedName)
	if err != nil {
		return "", pickError("save", hhsav.MessageSaveCancelled, err)
	}

	data, err := c.codec.EncodeCompressed(ctx, doc)
	if err != nil {
		return "", err
	}

	if err := c.fs.WriteFile(path, data); err != nil {
		return "", hhsav.NewPathError(hhsav.ErrIO, "write", path, err)
	}
	return StatusSaved, nil
}

// SaveJSON asks for a destination, then writes doc as indented JSON.
func (c *Commands) SaveJSON(ctx context.Context, doc hhsav.Document, suggestedName string) (status string, err error) {
	start := time.Now()
	var path string
	emitCommandStart(ctx, CommandSaveJSON)
	defer func() {
		c.finish(ctx, CommandSaveJSON, path, time.Since(start), err)
	}()

	path, err = c.picker.PickSave(ctx, JSONFilter, suggestedName)
	if err != nil {
		return "", pickError("save", hhsav.MessageSaveCancelled, err)
	}

	data, err := c.codec.EncodePlain(ctx, doc)
	if err != nil {
		return "", err
	}

	if err := c.fs.WriteFile(path, data); err != nil {
		return "", hhsav.NewPathError(hhsav.ErrIO, "write", path, err)
	}
	return StatusExported, nil
}

// finish logs and signals the outcome of a command.
func (c *Commands) finish(ctx context.Context, command, path string, duration time.Duration, err error) {
	emitCommandComplete(ctx, command, path, duration, err)

	switch {
	case err == nil:
		c.logger.InfoContext(ctx, "command complete", "command", command, "path", path, "duration", duration)
	case hhsav.IsCancelled(err):
		c.logger.DebugContext(ctx, "command cancelled", "command", command)
	default:
		c.logger.ErrorContext(ctx, "command failed", "command", command, "path", path, "error", err)
	}
}

// pickError normalizes picker failures. Any cancellation carries the
// shell-facing message for the operation.
func pickError(op, cancelMessage string, err error) error {
	if hhsav.IsCancelled(err) {
		return hhsav.Cancelled(op, cancelMessage)
	}
	return hhsav.NewError(hhsav.ErrIO, "pick "+op, err)
}

// SuggestedName returns the default file name offered by the save dialog,
// e.g. hackhub_edited_1700000000000.hhsav or hackhub_raw_1700000000000.json.
func SuggestedName(ext string, now time.Time) string {
	kind := "raw"
	if ext == hhsav.ExtSave {
		kind = "edited"
	}
	return fmt.Sprintf("hackhub_%s_%d.%s", kind, now.UnixMilli(), ext)
}
