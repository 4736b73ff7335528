package bridge

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/hhsav"
)

// Command names as the shell invokes them.
const (
	CommandLoad      = "load_save_file"
	CommandSaveHHSAV = "save_hhsav_file"
	CommandSaveJSON  = "save_json_file"
)

// Signals for command events.
var (
	SignalCommandStart    = capitan.NewSignal("hhsav.command.start", "Shell command beginning")
	SignalCommandComplete = capitan.NewSignal("hhsav.command.complete", "Shell command finished")
)

// Keys for typed event data.
var (
	KeyCommand = capitan.NewStringKey("command")
	KeyPath    = capitan.NewStringKey("path")
	KeyOutcome = capitan.NewStringKey("outcome")
)

// emitCommandStart emits an event when a command begins.
func emitCommandStart(ctx context.Context, command string) {
	capitan.Emit(ctx, SignalCommandStart,
		KeyCommand.Field(command),
	)
}

// emitCommandComplete emits an event when a command finishes. Cancellation
// is reported as a normal completion.
func emitCommandComplete(ctx context.Context, command, path string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyCommand.Field(command),
		KeyPath.Field(path),
		hhsav.KeyDuration.Field(duration),
	}
	switch {
	case err == nil:
		fields = append(fields, KeyOutcome.Field("ok"))
		capitan.Emit(ctx, SignalCommandComplete, fields...)
	case hhsav.IsCancelled(err):
		fields = append(fields, KeyOutcome.Field("cancelled"))
		capitan.Emit(ctx, SignalCommandComplete, fields...)
	default:
		fields = append(fields, KeyOutcome.Field("error"), hhsav.KeyError.Field(err))
		capitan.Error(ctx, SignalCommandComplete, fields...)
	}
}
