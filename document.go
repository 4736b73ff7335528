package hhsav

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"
	"unicode/utf8"
)

// Kind identifies the variant held by a Document.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Document is a schemaless value tree holding save state.
//
// A Document is one of null, bool, number, string, array, or object. The
// zero value is null. Numbers keep their literal text so integers larger
// than 2^53 survive a round trip unchanged. Objects serialize with their
// keys in sorted order, so encoding the same Document always yields the
// same bytes.
//
// Documents are treated as values: the With* helpers return modified
// copies and never mutate the receiver.
type Document struct {
	kind Kind
	b    bool
	s    string // string value, or number literal
	arr  []Document
	obj  map[string]Document
}

// Null returns the null Document.
func Null() Document { return Document{} }

// Bool returns a boolean Document.
func Bool(v bool) Document { return Document{kind: KindBool, b: v} }

// String returns a string Document.
func String(v string) Document { return Document{kind: KindString, s: v} }

// Int returns an integer Document.
func Int(v int64) Document {
	return Document{kind: KindNumber, s: strconv.FormatInt(v, 10)}
}

// Float returns a floating point Document. NaN and infinities are accepted
// here but fail with ErrSerialize when the Document is encoded.
//
// The literal uses plain decimal notation for magnitudes in [1e-6, 1e21)
// and exponent notation outside it, so 1000000 is written as 1000000.
func Float(v float64) Document {
	return Document{kind: KindNumber, s: formatFloat(v)}
}

func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	format := byte('f')
	if abs := math.Abs(v); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(v, format, -1, 64)
	if format == 'e' {
		// 1e-07 becomes 1e-7.
		if n := len(s); n >= 4 && s[n-4] == 'e' && s[n-3] == '-' && s[n-2] == '0' {
			s = s[:n-2] + s[n-1:]
		}
	}
	return s
}

// NumberOf returns a number Document holding the literal n. The literal is
// validated when the Document is encoded.
func NumberOf(n json.Number) Document {
	return Document{kind: KindNumber, s: n.String()}
}

// Array returns an array Document holding a copy of items.
func Array(items ...Document) Document {
	arr := make([]Document, len(items))
	copy(arr, items)
	return Document{kind: KindArray, arr: arr}
}

// Object returns an object Document holding a copy of fields.
func Object(fields map[string]Document) Document {
	obj := make(map[string]Document, len(fields))
	for k, v := range fields {
		obj[k] = v
	}
	return Document{kind: KindObject, obj: obj}
}

// Kind reports the variant held by d.
func (d Document) Kind() Kind { return d.kind }

// IsNull reports whether d is null.
func (d Document) IsNull() bool { return d.kind == KindNull }

// Bool returns the boolean value of d.
func (d Document) Bool() (bool, bool) {
	return d.b, d.kind == KindBool
}

// Str returns the string value of d.
func (d Document) Str() (string, bool) {
	if d.kind != KindString {
		return "", false
	}
	return d.s, true
}

// Number returns the literal number held by d.
func (d Document) Number() (json.Number, bool) {
	if d.kind != KindNumber {
		return "", false
	}
	return json.Number(d.s), true
}

// Int64 returns d as an int64 when d is an integral number in range.
func (d Document) Int64() (int64, bool) {
	if d.kind != KindNumber {
		return 0, false
	}
	i, err := strconv.ParseInt(d.s, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// Float64 returns d as a float64 when d is a number.
func (d Document) Float64() (float64, bool) {
	if d.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(d.s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Len returns the number of elements of an array or fields of an object.
func (d Document) Len() int {
	switch d.kind {
	case KindArray:
		return len(d.arr)
	case KindObject:
		return len(d.obj)
	default:
		return 0
	}
}

// Index returns the i-th element of an array Document.
func (d Document) Index(i int) (Document, bool) {
	if d.kind != KindArray || i < 0 || i >= len(d.arr) {
		return Document{}, false
	}
	return d.arr[i], true
}

// Get returns the field key of an object Document.
func (d Document) Get(key string) (Document, bool) {
	if d.kind != KindObject {
		return Document{}, false
	}
	v, ok := d.obj[key]
	return v, ok
}

// Keys returns the field names of an object Document in sorted order.
func (d Document) Keys() []string {
	if d.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(d.obj))
	for k := range d.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Items returns a copy of the elements of an array Document.
func (d Document) Items() []Document {
	if d.kind != KindArray {
		return nil
	}
	items := make([]Document, len(d.arr))
	copy(items, d.arr)
	return items
}

// With returns a copy of the object d with key set to v.
// When d is not an object the result is a new object holding only key.
func (d Document) With(key string, v Document) Document {
	obj := make(map[string]Document, len(d.obj)+1)
	if d.kind == KindObject {
		for k, existing := range d.obj {
			obj[k] = existing
		}
	}
	obj[key] = v
	return Document{kind: KindObject, obj: obj}
}

// WithIndex returns a copy of the array d with element i replaced by v.
func (d Document) WithIndex(i int, v Document) (Document, bool) {
	if d.kind != KindArray || i < 0 || i >= len(d.arr) {
		return d, false
	}
	arr := make([]Document, len(d.arr))
	copy(arr, d.arr)
	arr[i] = v
	return Document{kind: KindArray, arr: arr}, true
}

// Append returns a copy of the array d with v appended.
func (d Document) Append(v Document) Document {
	var arr []Document
	if d.kind == KindArray {
		arr = make([]Document, len(d.arr), len(d.arr)+1)
		copy(arr, d.arr)
	}
	return Document{kind: KindArray, arr: append(arr, v)}
}

// Clone implements Cloner[Document] with a deep copy.
func (d Document) Clone() Document {
	switch d.kind {
	case KindArray:
		arr := make([]Document, len(d.arr))
		for i, v := range d.arr {
			arr[i] = v.Clone()
		}
		return Document{kind: KindArray, arr: arr}
	case KindObject:
		obj := make(map[string]Document, len(d.obj))
		for k, v := range d.obj {
			obj[k] = v.Clone()
		}
		return Document{kind: KindObject, obj: obj}
	default:
		return d
	}
}

// Equal reports whether d and other hold the same tree. Numbers compare by
// value, so 3 and 3.0 are equal.
func (d Document) Equal(other Document) bool {
	if d.kind != other.kind {
		return false
	}
	switch d.kind {
	case KindNull:
		return true
	case KindBool:
		return d.b == other.b
	case KindString:
		return d.s == other.s
	case KindNumber:
		return numbersEqual(d.s, other.s)
	case KindArray:
		if len(d.arr) != len(other.arr) {
			return false
		}
		for i := range d.arr {
			if !d.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(d.obj) != len(other.obj) {
			return false
		}
		for k, v := range d.obj {
			ov, ok := other.obj[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

func numbersEqual(a, b string) bool {
	if a == b {
		return true
	}
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	if aerr == nil && berr == nil {
		return ai == bi
	}
	af, aerr := strconv.ParseFloat(a, 64)
	bf, berr := strconv.ParseFloat(b, 64)
	return aerr == nil && berr == nil && af == bf
}

// Interface returns d as a tree of nil, bool, json.Number, string, []any and
// map[string]any.
func (d Document) Interface() any {
	return d.toAny(func(s string) any { return json.Number(s) })
}

// Native returns d like Interface but with numbers converted to int64 when
// integral, uint64 when too large for int64, and float64 otherwise. Format
// codecs without a literal number type use this form.
func (d Document) Native() any {
	return d.toAny(nativeNumber)
}

func nativeNumber(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return u
	}
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func (d Document) toAny(number func(string) any) any {
	switch d.kind {
	case KindBool:
		return d.b
	case KindNumber:
		return number(d.s)
	case KindString:
		return d.s
	case KindArray:
		arr := make([]any, len(d.arr))
		for i, v := range d.arr {
			arr[i] = v.toAny(number)
		}
		return arr
	case KindObject:
		obj := make(map[string]any, len(d.obj))
		for k, v := range d.obj {
			obj[k] = v.toAny(number)
		}
		return obj
	default:
		return nil
	}
}

// errUnrepresentable reports a Go value with no Document equivalent.
var errUnrepresentable = errors.New("value has no document representation")

// FromInterface converts a native Go tree into a Document. It accepts the
// shapes produced by the common decoders: nil, bool, strings, all integer and
// float kinds, json.Number, time.Time (stored as RFC 3339 text), slices, and
// maps keyed by strings. Non-finite floats and other types fail with
// ErrSerialize.
func FromInterface(v any) (Document, error) {
	d, err := fromAny(v)
	if err != nil {
		return Document{}, newError(ErrSerialize, "convert", err)
	}
	return d, nil
}

func fromAny(v any) (Document, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case Document:
		return t, nil
	case *Document:
		if t == nil {
			return Null(), nil
		}
		return *t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return NumberOf(t), nil
	case float64:
		return finiteFloat(t)
	case float32:
		return finiteFloat(float64(t))
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return NumberOf(json.Number(strconv.FormatUint(uint64(t), 10))), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return NumberOf(json.Number(strconv.FormatUint(t, 10))), nil
	case time.Time:
		return String(t.Format(time.RFC3339Nano)), nil
	case []any:
		arr := make([]Document, len(t))
		for i, item := range t {
			d, err := fromAny(item)
			if err != nil {
				return Document{}, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = d
		}
		return Document{kind: KindArray, arr: arr}, nil
	case map[string]any:
		obj := make(map[string]Document, len(t))
		for k, item := range t {
			d, err := fromAny(item)
			if err != nil {
				return Document{}, fmt.Errorf("%s: %w", k, err)
			}
			obj[k] = d
		}
		return Document{kind: KindObject, obj: obj}, nil
	case map[any]any:
		obj := make(map[string]Document, len(t))
		for k, item := range t {
			key, ok := k.(string)
			if !ok {
				return Document{}, fmt.Errorf("%w: map key of type %T", errUnrepresentable, k)
			}
			d, err := fromAny(item)
			if err != nil {
				return Document{}, fmt.Errorf("%s: %w", key, err)
			}
			obj[key] = d
		}
		return Document{kind: KindObject, obj: obj}, nil
	}
	return fromReflect(reflect.ValueOf(v))
}

// fromReflect handles typed slices and string-keyed maps such as []string
// or map[string]int that the type switch does not name.
func fromReflect(rv reflect.Value) (Document, error) {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		arr := make([]Document, rv.Len())
		for i := range arr {
			d, err := fromAny(rv.Index(i).Interface())
			if err != nil {
				return Document{}, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = d
		}
		return Document{kind: KindArray, arr: arr}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		obj := make(map[string]Document, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			d, err := fromAny(iter.Value().Interface())
			if err != nil {
				return Document{}, fmt.Errorf("%s: %w", key, err)
			}
			obj[key] = d
		}
		return Document{kind: KindObject, obj: obj}, nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return fromAny(rv.Elem().Interface())
	}
	if !rv.IsValid() {
		return Null(), nil
	}
	return Document{}, fmt.Errorf("%w: %s", errUnrepresentable, rv.Type())
}

func finiteFloat(f float64) (Document, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Document{}, fmt.Errorf("%w: %v", errUnrepresentable, f)
	}
	return Float(f), nil
}

// MarshalJSON encodes d as compact JSON with sorted object keys.
func (d Document) MarshalJSON() ([]byte, error) {
	return encodeJSON(d, "")
}

// UnmarshalJSON decodes a single JSON value into d.
func (d *Document) UnmarshalJSON(data []byte) error {
	parsed, err := parseJSON(data)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// encodeJSON writes d without HTML escaping. An empty indent selects the
// compact form.
func encodeJSON(d Document, indent string) ([]byte, error) {
	if err := checkUTF8(d, ""); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(d.Interface()); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

var errInvalidUTF8 = errors.New("payload is not valid UTF-8")

// checkUTF8 rejects strings and object keys that JSON cannot carry
// unchanged. The encoder would otherwise substitute U+FFFD.
func checkUTF8(d Document, at string) error {
	switch d.kind {
	case KindString:
		if !utf8.ValidString(d.s) {
			return fmt.Errorf("%w: string at %q", errInvalidUTF8, at)
		}
	case KindArray:
		for i, v := range d.arr {
			if err := checkUTF8(v, joinPath(at, strconv.Itoa(i))); err != nil {
				return err
			}
		}
	case KindObject:
		for k, v := range d.obj {
			if !utf8.ValidString(k) {
				return fmt.Errorf("%w: key %q under %q", errInvalidUTF8, k, at)
			}
			if err := checkUTF8(v, joinPath(at, k)); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

// parseJSON decodes exactly one JSON value from data, keeping number
// literals intact.
func parseJSON(data []byte) (Document, error) {
	if !utf8.Valid(data) {
		return Document{}, errInvalidUTF8
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, io.ErrUnexpectedEOF
		}
		return Document{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Document{}, errors.New("unexpected data after top-level value")
	}
	return fromAny(v)
}
