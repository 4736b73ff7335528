package json

import (
	"testing"

	"github.com/zoobzio/hhsav"
)

func scenario() hhsav.Document {
	return hhsav.Object(map[string]hhsav.Document{
		"level": hhsav.Int(3),
		"items": hhsav.Array(hhsav.String("sword"), hhsav.String("shield")),
	})
}

func TestContentType(t *testing.T) {
	for _, c := range []hhsav.Codec{New(), Pretty(), Lenient()} {
		if c.ContentType() != "application/json" {
			t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/json")
		}
		if c.Extension() != "json" {
			t.Errorf("Extension() = %q, want json", c.Extension())
		}
	}
}

func TestNew_Compact(t *testing.T) {
	data, err := New().Marshal(scenario())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `{"items":["sword","shield"],"level":3}` {
		t.Errorf("Marshal() = %s", data)
	}
}

func TestPretty_Indented(t *testing.T) {
	data, err := Pretty().Marshal(hhsav.Object(map[string]hhsav.Document{"level": hhsav.Int(3)}))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != "{\n  \"level\": 3\n}" {
		t.Errorf("Marshal() = %q", data)
	}
}

func TestLenient_Unmarshal(t *testing.T) {
	input := []byte(`{
  // hand-edited after export
  "level": 3, /* was 2 */
  "items": [
    "sword",
    "shield",
  ],
}`)

	doc, err := Lenient().Unmarshal(input)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !doc.Equal(scenario()) {
		t.Errorf("Unmarshal() = %v", doc.Interface())
	}
}

func TestLenient_KeepsCommentMarkersInStrings(t *testing.T) {
	doc, err := Lenient().Unmarshal([]byte(`{"url": "http://example.com/*x*/"}`))
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	url, _ := doc.Get("url")
	if s, _ := url.Str(); s != "http://example.com/*x*/" {
		t.Errorf("url = %q", s)
	}
}

func TestStrict_RejectsComments(t *testing.T) {
	if _, err := New().Unmarshal([]byte(`{"level": 3 // no
}`)); err == nil {
		t.Error("the strict codec should reject comments")
	}
}
