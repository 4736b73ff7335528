// Package msgpack provides a MessagePack codec for hhsav documents.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/zoobzio/hhsav"
)

// msgpackCodec implements hhsav.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec.
func New() hhsav.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Extension returns the MessagePack file extension.
func (c *msgpackCodec) Extension() string {
	return "msgpack"
}

// Marshal encodes doc as MessagePack with map keys in sorted order.
func (c *msgpackCodec) Marshal(doc hhsav.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(doc.Native()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes MessagePack data into a Document.
func (c *msgpackCodec) Unmarshal(data []byte) (hhsav.Document, error) {
	var v any
	err := msgpack.Unmarshal(data, &v)
	if err != nil {
		return hhsav.Document{}, err
	}
	return hhsav.FromInterface(v)
}
