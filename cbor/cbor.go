// Package cbor provides a CBOR codec for hhsav documents.
package cbor

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/zoobzio/hhsav"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys and the smallest integer encoding. Equal documents always produce
// identical bytes.
var encMode cbor.EncMode

// decMode decodes maps into map[string]any, the shape Document expects.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cbor: encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("cbor: decoder initialization failed: " + err.Error())
	}
}

// cborCodec implements hhsav.Codec for CBOR.
type cborCodec struct{}

// New returns a CBOR codec.
func New() hhsav.Codec {
	return &cborCodec{}
}

// ContentType returns the MIME type for CBOR.
func (c *cborCodec) ContentType() string {
	return "application/cbor"
}

// Extension returns the CBOR file extension.
func (c *cborCodec) Extension() string {
	return "cbor"
}

// Marshal encodes doc as deterministic CBOR.
func (c *cborCodec) Marshal(doc hhsav.Document) ([]byte, error) {
	return encMode.Marshal(doc.Native())
}

// Unmarshal decodes CBOR data into a Document.
func (c *cborCodec) Unmarshal(data []byte) (hhsav.Document, error) {
	var v any
	if err := decMode.Unmarshal(data, &v); err != nil {
		return hhsav.Document{}, fmt.Errorf("cbor: %w", err)
	}
	return hhsav.FromInterface(v)
}
