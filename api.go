// Package hhsav reads and writes .hhsav save files.
//
// A .hhsav file is a single gzip stream, written at the default compression
// level, whose payload is compact UTF-8 JSON. There is no header, version
// tag, or checksum beyond gzip's own trailer. The same document can also be
// exported as indented plain JSON for inspection.
//
// # Documents
//
// Save state is schemaless, so it is held in a Document: a tagged union of
// null, bool, number, string, array, and object. Numbers keep their literal
// text and object keys serialize in sorted order, so encoding is
// deterministic.
//
//	doc := hhsav.Object(map[string]hhsav.Document{
//	    "level": hhsav.Int(3),
//	    "items": hhsav.Array(hhsav.String("sword"), hhsav.String("shield")),
//	})
//
// # Basic Usage
//
//	data, _ := hhsav.EncodeCompressed(ctx, doc)  // .hhsav bytes
//	doc, _ = hhsav.DecodeCompressed(ctx, data)   // back to a Document
//	text, _ := hhsav.EncodePlain(ctx, doc)       // indented JSON export
//
// # Errors
//
// Failures wrap one of the sentinel errors (ErrDecompress, ErrParse,
// ErrSerialize, ErrCompress, ErrIO, ErrCancelled, ...) in an *Error. Use
// errors.Is to branch on the kind, and Message to flatten any error into the
// single string handed to an application shell.
//
// # Format Providers
//
// Additional export formats are available as subpackages:
//
//   - json - compact, indented, and lenient (JSONC) JSON
//   - yaml - YAML (application/yaml)
//   - msgpack - MessagePack (application/msgpack)
//   - cbor - CBOR with core deterministic encoding (application/cbor)
//   - bson - BSON, for object documents only (application/bson)
//
// # Compression
//
// Gzip is the .hhsav envelope. Zstd and LZ4 compressors are available for
// private archives through WithCompressor.
//
// # Views
//
// View decodes a section of a Document into a typed struct and produces
// masked copies for display, driven by send.mask and send.redact struct
// tags:
//
//   - iban: GB82WEST12345698765432 → GB82**************5432
//   - name: John Smith → J*** S****
//   - card: 4111111111111111 → ************1111
//   - email: alice@example.com → a***@example.com
//   - uuid: 550e8400-e29b-... → 550e8400-****-****-****-************
//
// # Observability
//
// Every codec operation emits capitan signals (hhsav.encode.*,
// hhsav.decode.*, hhsav.plain.complete, ...) carrying sizes, durations, and
// errors.
package hhsav
