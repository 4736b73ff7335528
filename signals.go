package hhsav

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for codec events.
var (
	SignalEncodeStart    = capitan.NewSignal("hhsav.encode.start", "Compressed encode beginning")
	SignalEncodeComplete = capitan.NewSignal("hhsav.encode.complete", "Compressed encode finished")
	SignalDecodeStart    = capitan.NewSignal("hhsav.decode.start", "Compressed decode beginning")
	SignalDecodeComplete = capitan.NewSignal("hhsav.decode.complete", "Compressed decode finished")
	SignalPlainComplete  = capitan.NewSignal("hhsav.plain.complete", "Plain export finished")
	SignalExportComplete = capitan.NewSignal("hhsav.export.complete", "Format export finished")
	SignalImportComplete = capitan.NewSignal("hhsav.import.complete", "Format import finished")
	SignalViewCreated    = capitan.NewSignal("hhsav.view.created", "View instantiated")
	SignalSendComplete   = capitan.NewSignal("hhsav.view.send.complete", "Masked view produced")
)

// Keys for typed event data.
var (
	KeyContentType    = capitan.NewStringKey("content_type")
	KeyCompression    = capitan.NewStringKey("compression")
	KeyTypeName       = capitan.NewStringKey("type_name")
	KeySize           = capitan.NewIntKey("size")
	KeyCompressedSize = capitan.NewIntKey("compressed_size")
	KeyDuration       = capitan.NewDurationKey("duration")
	KeyError          = capitan.NewErrorKey("error")
	KeyMaskedCount    = capitan.NewIntKey("masked_count")
	KeyRedactedCount  = capitan.NewIntKey("redacted_count")
)

// emitEncodeStart emits an event when a compressed encode begins.
func emitEncodeStart(ctx context.Context, compression string) {
	capitan.Emit(ctx, SignalEncodeStart,
		KeyCompression.Field(compression),
	)
}

// emitEncodeComplete emits an event when a compressed encode finishes.
func emitEncodeComplete(ctx context.Context, compression string, size, compressed int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyCompression.Field(compression),
		KeySize.Field(size),
		KeyCompressedSize.Field(compressed),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}

// emitDecodeStart emits an event when a compressed decode begins.
func emitDecodeStart(ctx context.Context, compression string, compressed int) {
	capitan.Emit(ctx, SignalDecodeStart,
		KeyCompression.Field(compression),
		KeyCompressedSize.Field(compressed),
	)
}

// emitDecodeComplete emits an event when a compressed decode finishes.
func emitDecodeComplete(ctx context.Context, compression string, size, compressed int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyCompression.Field(compression),
		KeySize.Field(size),
		KeyCompressedSize.Field(compressed),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}

// formatFields builds the fields shared by plain, export, and import events.
func formatFields(contentType string, size int, duration time.Duration, err error) []capitan.Field {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
	}
	return fields
}

// emitPlainComplete emits an event when a plain export finishes.
func emitPlainComplete(ctx context.Context, contentType string, size int, duration time.Duration, err error) {
	fields := formatFields(contentType, size, duration, err)
	if err != nil {
		capitan.Error(ctx, SignalPlainComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalPlainComplete, fields...)
	}
}

// emitExportComplete emits an event when a format export finishes.
func emitExportComplete(ctx context.Context, contentType string, size int, duration time.Duration, err error) {
	fields := formatFields(contentType, size, duration, err)
	if err != nil {
		capitan.Error(ctx, SignalExportComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalExportComplete, fields...)
	}
}

// emitImportComplete emits an event when a format import finishes.
func emitImportComplete(ctx context.Context, contentType string, size int, duration time.Duration, err error) {
	fields := formatFields(contentType, size, duration, err)
	if err != nil {
		capitan.Error(ctx, SignalImportComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalImportComplete, fields...)
	}
}

// emitViewCreated emits an event when a view is created.
func emitViewCreated(ctx context.Context, typeName string) {
	capitan.Emit(ctx, SignalViewCreated,
		KeyTypeName.Field(typeName),
	)
}

// emitSendComplete emits an event when a view produces a masked copy.
func emitSendComplete(ctx context.Context, typeName string, masked, redacted int) {
	capitan.Emit(ctx, SignalSendComplete,
		KeyTypeName.Field(typeName),
		KeyMaskedCount.Field(masked),
		KeyRedactedCount.Field(redacted),
	)
}
