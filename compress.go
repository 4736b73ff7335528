package hhsav

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compressor wraps a serialized payload in a compressed envelope.
type Compressor interface {
	// Name returns the short identifier of the algorithm (e.g., "gzip").
	Name() string

	// Compress returns the compressed form of data.
	Compress(data []byte) ([]byte, error)

	// Decompress fully materializes the payload held in data.
	Decompress(data []byte) ([]byte, error)
}

// Compression names accepted by ParseCompression.
const (
	CompressionGzip = "gzip"
	CompressionZstd = "zstd"
	CompressionLZ4  = "lz4"
)

// ParseCompression returns the compressor registered under name.
// Gzip uses the default level, which is what the .hhsav format expects.
func ParseCompression(name string) (Compressor, error) {
	switch strings.ToLower(name) {
	case "", CompressionGzip:
		return Gzip(gzip.DefaultCompression), nil
	case CompressionZstd:
		return Zstd(), nil
	case CompressionLZ4:
		return LZ4(), nil
	default:
		return nil, fmt.Errorf("%w: compression %q", ErrUnsupported, name)
	}
}

// gzipCompressor produces a single gzip member. This is the .hhsav envelope.
type gzipCompressor struct {
	level int
}

// Gzip returns a gzip compressor at the given level. Use
// gzip.DefaultCompression for .hhsav files.
func Gzip(level int) Compressor {
	return &gzipCompressor{level: level}
}

func (c *gzipCompressor) Name() string { return CompressionGzip }

func (c *gzipCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, err
	}
	// A zero ModTime and unknown OS byte keep the header identical to
	// what the desktop editor wrote.
	zw.OS = 0xff
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *gzipCompressor) Decompress(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// zstdCompressor wraps payloads in a zstd frame.
type zstdCompressor struct{}

// Zstd returns a zstd compressor at the library's default level.
func Zstd() Compressor {
	return &zstdCompressor{}
}

func (c *zstdCompressor) Name() string { return CompressionZstd }

func (c *zstdCompressor) Compress(data []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer encoder.Close()
	return encoder.EncodeAll(data, nil), nil
}

func (c *zstdCompressor) Decompress(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()
	return decoder.DecodeAll(data, nil)
}

// lz4Compressor wraps payloads in an LZ4 frame with block and content
// checksums, so truncation is detected on decode.
type lz4Compressor struct{}

// LZ4 returns an LZ4 frame compressor.
func LZ4() Compressor {
	return &lz4Compressor{}
}

func (c *lz4Compressor) Name() string { return CompressionLZ4 }

func (c *lz4Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if err := zw.Apply(lz4.ChecksumOption(true), lz4.BlockChecksumOption(true)); err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *lz4Compressor) Decompress(data []byte) ([]byte, error) {
	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, err
	}
	return out, nil
}
