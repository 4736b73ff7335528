package hhsav

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
)

func TestDocument_ZeroValueIsNull(t *testing.T) {
	var d Document
	if !d.IsNull() {
		t.Errorf("zero Document Kind() = %s, want null", d.Kind())
	}
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("MarshalJSON() = %s, want null", data)
	}
}

func TestDocument_Accessors(t *testing.T) {
	doc := Object(map[string]Document{
		"name":  String("neo"),
		"alive": Bool(true),
		"level": Int(3),
		"ratio": Float(0.25),
		"items": Array(String("a"), String("b")),
	})

	if doc.Kind() != KindObject || doc.Len() != 5 {
		t.Fatalf("Kind() = %s, Len() = %d", doc.Kind(), doc.Len())
	}

	name, _ := doc.Get("name")
	if s, ok := name.Str(); !ok || s != "neo" {
		t.Errorf("Str() = %q, %v", s, ok)
	}
	alive, _ := doc.Get("alive")
	if b, ok := alive.Bool(); !ok || !b {
		t.Errorf("Bool() = %v, %v", b, ok)
	}
	level, _ := doc.Get("level")
	if i, ok := level.Int64(); !ok || i != 3 {
		t.Errorf("Int64() = %d, %v", i, ok)
	}
	ratio, _ := doc.Get("ratio")
	if f, ok := ratio.Float64(); !ok || f != 0.25 {
		t.Errorf("Float64() = %v, %v", f, ok)
	}
	if _, ok := ratio.Int64(); ok {
		t.Error("Int64() on 0.25 should report false")
	}

	items, _ := doc.Get("items")
	if second, ok := items.Index(1); !ok || !second.Equal(String("b")) {
		t.Errorf("Index(1) = %v, %v", second, ok)
	}
	if _, ok := items.Index(2); ok {
		t.Error("Index(2) should be out of range")
	}
	if _, ok := doc.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
	if _, ok := items.Get("name"); ok {
		t.Error("Get on an array should report false")
	}
}

func TestDocument_KeysSorted(t *testing.T) {
	doc := Object(map[string]Document{"b": Null(), "c": Null(), "a": Null()})
	keys := doc.Keys()
	want := []string{"a", "b", "c"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestDocument_WithDoesNotMutate(t *testing.T) {
	orig := Object(map[string]Document{"level": Int(1)})
	updated := orig.With("level", Int(2))

	got, _ := orig.Get("level")
	if !got.Equal(Int(1)) {
		t.Errorf("original level = %v, want 1", got.Interface())
	}
	got, _ = updated.Get("level")
	if !got.Equal(Int(2)) {
		t.Errorf("updated level = %v, want 2", got.Interface())
	}

	arr := Array(Int(1), Int(2))
	replaced, ok := arr.WithIndex(0, Int(9))
	if !ok {
		t.Fatal("WithIndex(0) reported false")
	}
	first, _ := arr.Index(0)
	if !first.Equal(Int(1)) {
		t.Error("WithIndex mutated the original array")
	}
	first, _ = replaced.Index(0)
	if !first.Equal(Int(9)) {
		t.Error("WithIndex did not replace the element")
	}
	if _, ok := arr.WithIndex(5, Null()); ok {
		t.Error("WithIndex(5) should report false")
	}

	appended := arr.Append(Int(3))
	if arr.Len() != 2 || appended.Len() != 3 {
		t.Errorf("Append: original Len() = %d, appended Len() = %d", arr.Len(), appended.Len())
	}
}

func TestDocument_Clone(t *testing.T) {
	orig := Object(map[string]Document{
		"nested": Object(map[string]Document{"x": Int(1)}),
	})
	clone := orig.Clone()
	if !clone.Equal(orig) {
		t.Fatal("Clone() should equal the original")
	}
}

func TestDocument_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Document
		want bool
	}{
		{"int and float literal", Int(3), NumberOf("3.0"), true},
		{"exponent", NumberOf("1e2"), Int(100), true},
		{"different numbers", Int(3), Int(4), false},
		{"number and string", Int(3), String("3"), false},
		{"null", Null(), Null(), true},
		{"array order", Array(Int(1), Int(2)), Array(Int(2), Int(1)), false},
		{"object", Object(map[string]Document{"a": Bool(true)}), Object(map[string]Document{"a": Bool(true)}), true},
		{"object extra key", Object(map[string]Document{"a": Null()}), Object(map[string]Document{"a": Null(), "b": Null()}), false},
		{"big integers", NumberOf("9007199254740993"), NumberOf("9007199254740992"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocument_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{"sorted keys", Object(map[string]Document{"b": Int(1), "a": Array(Bool(true), Null())}), `{"a":[true,null],"b":1}`},
		{"no html escaping", String("<a & b>"), `"<a & b>"`},
		{"float literal", Float(12.5), `12.5`},
		{"big integer", NumberOf("9007199254740993"), `9007199254740993`},
		{"empty object", Object(nil), `{}`},
		{"empty array", Array(), `[]`},
		{"unicode", String("héllo"), `"héllo"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.doc.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("MarshalJSON() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFloat_Literal(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{1000000, "1000000"},
		{1.5e6, "1500000"},
		{123456789, "123456789"},
		{-2500.75, "-2500.75"},
		{0, "0"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{1e21, "1e+21"},
		{123456789012345680000, "123456789012345680000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := Float(tt.v).MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Float(%v) = %s, want %s", tt.v, got, tt.want)
			}
		})
	}
}

func TestDocument_MarshalJSON_InvalidUTF8(t *testing.T) {
	if _, err := String("a\xffb").MarshalJSON(); !errors.Is(err, errInvalidUTF8) {
		t.Errorf("MarshalJSON() error = %v, want errInvalidUTF8", err)
	}
	doc := Object(map[string]Document{"\xfe": Null()})
	if _, err := doc.MarshalJSON(); !errors.Is(err, errInvalidUTF8) {
		t.Errorf("MarshalJSON() error = %v, want errInvalidUTF8", err)
	}
}

func TestDocument_MarshalJSON_NonFinite(t *testing.T) {
	if _, err := Float(math.NaN()).MarshalJSON(); err == nil {
		t.Error("MarshalJSON() of NaN should fail")
	}
	if _, err := Float(math.Inf(1)).MarshalJSON(); err == nil {
		t.Error("MarshalJSON() of +Inf should fail")
	}
}

func TestDocument_UnmarshalJSON(t *testing.T) {
	var d Document
	if err := d.UnmarshalJSON([]byte(`{"id": 9007199254740993, "tags": ["x"]}`)); err != nil {
		t.Fatalf("UnmarshalJSON() error: %v", err)
	}
	id, _ := d.Get("id")
	if n, _ := id.Number(); n != "9007199254740993" {
		t.Errorf("id literal = %q, want 9007199254740993", n)
	}

	invalid := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"trailing data", `{} {}`},
		{"truncated", `{"a":`},
		{"not json", `hello`},
		{"invalid utf8", "\"\xff\xfe\""},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			var d Document
			if err := d.UnmarshalJSON([]byte(tt.data)); err == nil {
				t.Errorf("UnmarshalJSON(%q) should fail", tt.data)
			}
		})
	}
}

func TestDocument_JSONField(t *testing.T) {
	type envelope struct {
		Data Document `json:"data"`
	}

	var env envelope
	if err := json.Unmarshal([]byte(`{"data":{"level":3}}`), &env); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	level, ok := env.Data.Get("level")
	if !ok || !level.Equal(Int(3)) {
		t.Errorf("data.level = %v, %v", level.Interface(), ok)
	}

	out, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("json.Marshal() error: %v", err)
	}
	if string(out) != `{"data":{"level":3}}` {
		t.Errorf("json.Marshal() = %s", out)
	}
}

func TestDocument_Native(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want any
	}{
		{"int", Int(3), int64(3)},
		{"uint64", NumberOf("18446744073709551615"), uint64(math.MaxUint64)},
		{"float", Float(1.5), 1.5},
		{"string", String("x"), "x"},
		{"bool", Bool(true), true},
		{"null", Null(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.Native(); got != tt.want {
				t.Errorf("Native() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFromInterface(t *testing.T) {
	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	doc, err := FromInterface(map[string]any{
		"names":  []string{"a", "b"},
		"counts": map[string]int{"x": 1},
		"small":  int8(-2),
		"big":    uint64(math.MaxUint64),
		"when":   when,
		"nested": map[any]any{"k": nil},
		"ptr":    (*int)(nil),
	})
	if err != nil {
		t.Fatalf("FromInterface() error: %v", err)
	}

	want := Object(map[string]Document{
		"names":  Array(String("a"), String("b")),
		"counts": Object(map[string]Document{"x": Int(1)}),
		"small":  Int(-2),
		"big":    NumberOf("18446744073709551615"),
		"when":   String("2024-05-01T12:00:00Z"),
		"nested": Object(map[string]Document{"k": Null()}),
		"ptr":    Null(),
	})
	if !doc.Equal(want) {
		got, _ := doc.MarshalJSON()
		t.Errorf("FromInterface() = %s", got)
	}
}

func TestFromInterface_Errors(t *testing.T) {
	tests := []struct {
		name string
		v    any
	}{
		{"nan", math.NaN()},
		{"inf", []any{math.Inf(-1)}},
		{"bytes", []byte("raw")},
		{"int map keys", map[any]any{1: "x"}},
		{"channel", make(chan int)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromInterface(tt.v)
			if !errors.Is(err, ErrSerialize) {
				t.Errorf("FromInterface() error = %v, want ErrSerialize", err)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	if KindObject.String() != "object" {
		t.Errorf("KindObject.String() = %q", KindObject.String())
	}
	if Kind(42).String() != "kind(42)" {
		t.Errorf("Kind(42).String() = %q", Kind(42).String())
	}
}
