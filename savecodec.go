package hhsav

import (
	"context"
	"errors"
	"time"

	"github.com/klauspost/compress/gzip"
)

// File extensions for the two on-disk formats.
const (
	ExtSave   = "hhsav"
	ExtExport = "json"
)

// SaveCodec maps Documents to compressed save envelopes and to plain
// exports.
//
// A SaveCodec holds only immutable configuration, so it is safe for
// concurrent use. Every call works on its own buffers.
type SaveCodec struct {
	compressor Compressor
	payload    Codec
	plain      Codec
}

// Option configures a SaveCodec.
type Option func(*SaveCodec)

// WithCompressor replaces the envelope compressor. Files written with a
// non-gzip compressor are not readable by other .hhsav tools.
func WithCompressor(c Compressor) Option {
	return func(s *SaveCodec) {
		s.compressor = c
	}
}

// WithCompressionLevel sets the gzip level of the envelope.
func WithCompressionLevel(level int) Option {
	return func(s *SaveCodec) {
		s.compressor = Gzip(level)
	}
}

// New creates a SaveCodec. Without options it reads and writes the .hhsav
// format: compact JSON inside a default-level gzip stream.
func New(opts ...Option) *SaveCodec {
	s := &SaveCodec{
		compressor: Gzip(gzip.DefaultCompression),
		payload:    JSON(),
		plain:      JSONIndent(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultCodec = New()

// Default returns the shared .hhsav codec.
func Default() *SaveCodec {
	return defaultCodec
}

// Compressor returns the envelope compressor.
func (s *SaveCodec) Compressor() Compressor {
	return s.compressor
}

// EncodeCompressed serializes doc to compact JSON and compresses it.
// Decompressing the result yields exactly the compact text.
func (s *SaveCodec) EncodeCompressed(ctx context.Context, doc Document) ([]byte, error) {
	start := time.Now()
	emitEncodeStart(ctx, s.compressor.Name())

	var retErr error
	var text, retData []byte
	defer func() {
		emitEncodeComplete(ctx, s.compressor.Name(), len(text), len(retData), time.Since(start), retErr)
	}()

	text, err := s.payload.Marshal(doc)
	if err != nil {
		retErr = newError(ErrSerialize, "encode", err)
		return nil, retErr
	}

	retData, err = s.compressor.Compress(text)
	if err != nil {
		retErr = newError(ErrCompress, "encode", err)
		return nil, retErr
	}
	return retData, nil
}

// DecodeCompressed decompresses data fully into memory and parses the
// payload. A stream that is truncated, corrupt, or carries the wrong magic
// bytes fails with ErrDecompress; a payload that is not a valid document
// fails with ErrParse.
func (s *SaveCodec) DecodeCompressed(ctx context.Context, data []byte) (Document, error) {
	start := time.Now()
	emitDecodeStart(ctx, s.compressor.Name(), len(data))

	var retErr error
	var text []byte
	defer func() {
		emitDecodeComplete(ctx, s.compressor.Name(), len(text), len(data), time.Since(start), retErr)
	}()

	text, err := s.compressor.Decompress(data)
	if err != nil {
		retErr = newError(ErrDecompress, "decode", err)
		return Document{}, retErr
	}

	doc, err := s.payload.Unmarshal(text)
	if err != nil {
		retErr = newError(ErrParse, "decode", err)
		return Document{}, retErr
	}
	return doc, nil
}

// EncodePlain serializes doc to indented JSON for export and inspection.
// Object keys are sorted, so the same Document always yields the same text.
func (s *SaveCodec) EncodePlain(ctx context.Context, doc Document) ([]byte, error) {
	start := time.Now()

	var retErr error
	var retData []byte
	defer func() {
		emitPlainComplete(ctx, s.plain.ContentType(), len(retData), time.Since(start), retErr)
	}()

	retData, err := s.plain.Marshal(doc)
	if err != nil {
		retErr = newError(ErrSerialize, "encode plain", err)
		return nil, retErr
	}
	return retData, nil
}

// DecodePlain parses a plain export back into a Document.
func (s *SaveCodec) DecodePlain(ctx context.Context, data []byte) (Document, error) {
	return s.Import(ctx, data, s.plain)
}

// Export serializes doc with an arbitrary format codec.
func (s *SaveCodec) Export(ctx context.Context, doc Document, codec Codec) ([]byte, error) {
	start := time.Now()

	var retErr error
	var retData []byte
	defer func() {
		emitExportComplete(ctx, codec.ContentType(), len(retData), time.Since(start), retErr)
	}()

	retData, err := codec.Marshal(doc)
	if err != nil {
		retErr = wrapFormatError(ErrSerialize, "export", err)
		return nil, retErr
	}
	return retData, nil
}

// Import parses data with an arbitrary format codec.
func (s *SaveCodec) Import(ctx context.Context, data []byte, codec Codec) (Document, error) {
	start := time.Now()

	var retErr error
	defer func() {
		emitImportComplete(ctx, codec.ContentType(), len(data), time.Since(start), retErr)
	}()

	doc, err := codec.Unmarshal(data)
	if err != nil {
		retErr = wrapFormatError(ErrParse, "import", err)
		return Document{}, retErr
	}
	return doc, nil
}

// wrapFormatError keeps errors a codec already classified (for example
// ErrUnsupported) and wraps the rest in sentinel.
func wrapFormatError(sentinel error, op string, err error) error {
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	return newError(sentinel, op, err)
}

// EncodeCompressed encodes doc with the default .hhsav codec.
func EncodeCompressed(ctx context.Context, doc Document) ([]byte, error) {
	return defaultCodec.EncodeCompressed(ctx, doc)
}

// DecodeCompressed decodes data with the default .hhsav codec.
func DecodeCompressed(ctx context.Context, data []byte) (Document, error) {
	return defaultCodec.DecodeCompressed(ctx, data)
}

// EncodePlain encodes doc as indented JSON with the default codec.
func EncodePlain(ctx context.Context, doc Document) ([]byte, error) {
	return defaultCodec.EncodePlain(ctx, doc)
}
