package hhsav

// Codec maps a Document to and from one serialization format.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Extension returns the conventional file extension, without the dot.
	Extension() string

	// Marshal encodes doc into bytes.
	Marshal(doc Document) ([]byte, error)

	// Unmarshal decodes data into a Document.
	Unmarshal(data []byte) (Document, error)
}

// Indentation used by plain exports.
const plainIndent = "  "

// jsonCodec is the built-in JSON codec. The compact form is the .hhsav
// payload; the indented form is the plain export.
type jsonCodec struct {
	indent string
}

// JSON returns the compact JSON codec used inside .hhsav envelopes.
func JSON() Codec {
	return &jsonCodec{}
}

// JSONIndent returns the two-space indented JSON codec used for exports.
func JSONIndent() Codec {
	return &jsonCodec{indent: plainIndent}
}

func (c *jsonCodec) ContentType() string { return "application/json" }

func (c *jsonCodec) Extension() string { return "json" }

func (c *jsonCodec) Marshal(doc Document) ([]byte, error) {
	return encodeJSON(doc, c.indent)
}

func (c *jsonCodec) Unmarshal(data []byte) (Document, error) {
	return parseJSON(data)
}

// ParseJSON decodes exactly one JSON value from data. Failures wrap ErrParse.
func ParseJSON(data []byte) (Document, error) {
	doc, err := parseJSON(data)
	if err != nil {
		return Document{}, newError(ErrParse, "parse", err)
	}
	return doc, nil
}
