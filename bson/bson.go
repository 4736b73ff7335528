// Package bson provides a BSON codec for hhsav documents.
//
// BSON can only hold a document at the top level, so Marshal rejects
// arrays and scalars with hhsav.ErrUnsupported.
package bson

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zoobzio/hhsav"
)

// bsonCodec implements hhsav.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() hhsav.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Extension returns the BSON file extension.
func (c *bsonCodec) Extension() string {
	return "bson"
}

// Marshal encodes an object Document as BSON.
func (c *bsonCodec) Marshal(doc hhsav.Document) ([]byte, error) {
	if doc.Kind() != hhsav.KindObject {
		return nil, hhsav.NewError(hhsav.ErrUnsupported, "bson",
			fmt.Errorf("top-level %s cannot be encoded, bson requires an object", doc.Kind()))
	}
	return bson.Marshal(doc.Native())
}

// Unmarshal decodes BSON data into a Document.
func (c *bsonCodec) Unmarshal(data []byte) (hhsav.Document, error) {
	var m bson.M
	if err := bson.Unmarshal(data, &m); err != nil {
		return hhsav.Document{}, err
	}
	return hhsav.FromInterface(plain(m))
}

// plain converts the driver's container types into the map and slice
// shapes FromInterface accepts.
func plain(v any) any {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = plain(item)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = plain(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plain(item)
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC()
	default:
		return v
	}
}
