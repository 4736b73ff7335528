// Package yaml provides a YAML codec for hhsav documents.
package yaml

import (
	"gopkg.in/yaml.v3"

	"github.com/zoobzio/hhsav"
)

// yamlCodec implements hhsav.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() hhsav.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Extension returns the YAML file extension.
func (c *yamlCodec) Extension() string {
	return "yaml"
}

// Marshal encodes doc as YAML. Map keys are emitted in sorted order.
func (c *yamlCodec) Marshal(doc hhsav.Document) ([]byte, error) {
	return yaml.Marshal(doc.Native())
}

// Unmarshal decodes YAML data into a Document. Timestamps become RFC 3339
// strings.
func (c *yamlCodec) Unmarshal(data []byte) (hhsav.Document, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return hhsav.Document{}, err
	}
	return hhsav.FromInterface(v)
}
