// Package json provides JSON codecs for hhsav documents.
package json

import (
	"github.com/tidwall/jsonc"

	"github.com/zoobzio/hhsav"
)

// New returns the compact JSON codec used inside .hhsav envelopes.
func New() hhsav.Codec {
	return hhsav.JSON()
}

// Pretty returns the two-space indented JSON codec used for exports.
func Pretty() hhsav.Codec {
	return hhsav.JSONIndent()
}

// lenientCodec accepts hand-edited exports.
type lenientCodec struct {
	hhsav.Codec
}

// Lenient returns a codec that writes indented JSON and reads JSONC:
// comments and trailing commas are stripped before parsing.
func Lenient() hhsav.Codec {
	return &lenientCodec{Codec: hhsav.JSONIndent()}
}

// Unmarshal strips comments and trailing commas, then parses strict JSON.
func (c *lenientCodec) Unmarshal(data []byte) (hhsav.Document, error) {
	return c.Codec.Unmarshal(jsonc.ToJSON(data))
}
