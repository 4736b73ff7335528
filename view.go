package hhsav

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/zoobzio/sentinel"
)

func init() {
	sentinel.Tag("send.mask")
	sentinel.Tag("send.redact")
}

// View decodes a Document into a typed struct and prepares masked copies
// of it for display.
//
// Fields tagged send.mask:"<type>" are masked and fields tagged
// send.redact:"<text>" are replaced by the tag text when Send is called.
// Tags apply to string, []byte, []string and map[K]string fields, including
// fields of nested structs and struct pointers.
//
//	type Account struct {
//	    Name string `json:"accountName" send.mask:"name"`
//	    IBAN string `json:"IBAN" send.mask:"iban"`
//	}
//
// Views are safe for concurrent use.
type View[T Cloner[T]] struct {
	mu      sync.RWMutex
	maskers map[MaskType]Masker

	maskFields   []viewFieldPlan
	redactFields []viewFieldPlan

	typeName string
}

// viewFieldPlan describes how to reach and transform a single field.
type viewFieldPlan struct {
	index      []int  // reflect.Value.FieldByIndex access path
	name       string // field name for error messages
	tagVal     string // mask type or redaction text
	isBytes    bool   // true if field is []byte
	ptrIndices []int  // positions in index where a pointer is dereferenced
	isSlice    bool   // true if field is []string
	isMap      bool   // true if field is map[K]string
}

// NewView creates a View for type T. It fails when a send.mask tag names
// an unknown mask type.
func NewView[T Cloner[T]]() (*View[T], error) {
	meta := sentinel.Scan[T]()
	v := &View[T]{
		maskers:  builtinMaskers(),
		typeName: meta.TypeName,
	}
	if err := v.plan(meta, nil, nil, ""); err != nil {
		return nil, err
	}

	emitViewCreated(context.Background(), v.typeName)
	return v, nil
}

// SetMasker registers a masker for the given type.
// Returns the view for chaining. Safe for concurrent use.
func (v *View[T]) SetMasker(mt MaskType, m Masker) *View[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.maskers[mt] = m
	return v
}

// plan walks the scanned fields and records every tagged one.
func (v *View[T]) plan(meta sentinel.Metadata, parentIndex, ptrIndices []int, namePrefix string) error {
	for _, field := range meta.Fields {
		fullIndex := append(append([]int{}, parentIndex...), field.Index...)
		fullName := field.Name
		if namePrefix != "" {
			fullName = namePrefix + "." + field.Name
		}

		if field.Kind == sentinel.KindStruct {
			if nested := scanNestedType(field.ReflectType); nested != nil {
				if err := v.plan(*nested, fullIndex, ptrIndices, fullName); err != nil {
					return err
				}
			}
			continue
		}

		if field.Kind == sentinel.KindPointer && field.ReflectType.Elem().Kind() == reflect.Struct {
			if nested := scanNestedType(field.ReflectType.Elem()); nested != nil {
				nestedPtrs := append(append([]int{}, ptrIndices...), len(fullIndex)-1)
				if err := v.plan(*nested, fullIndex, nestedPtrs, fullName); err != nil {
					return err
				}
			}
			continue
		}

		rt := field.ReflectType
		isString := rt.Kind() == reflect.String
		isBytes := rt.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.Uint8
		isStringSlice := rt.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.String
		isStringMap := rt.Kind() == reflect.Map && rt.Elem().Kind() == reflect.String
		if !isString && !isBytes && !isStringSlice && !isStringMap {
			continue
		}

		base := viewFieldPlan{
			index:      fullIndex,
			name:       fullName,
			isBytes:    isBytes,
			ptrIndices: ptrIndices,
			isSlice:    isStringSlice,
			isMap:      isStringMap,
		}

		if val, ok := field.Tags["send.mask"]; ok {
			if !IsValidMaskType(MaskType(val)) {
				return fmt.Errorf("%w: unknown mask type %q for field %s", ErrUnsupported, val, fullName)
			}
			p := base
			p.tagVal = val
			v.maskFields = append(v.maskFields, p)
		}

		if val, ok := field.Tags["send.redact"]; ok {
			p := base
			p.tagVal = val
			v.redactFields = append(v.redactFields, p)
		}
	}
	return nil
}

// scanNestedType scans a nested struct type and returns its metadata.
func scanNestedType(rt reflect.Type) *sentinel.Metadata {
	if meta, ok := sentinel.Lookup(rt.String()); ok {
		return &meta
	}
	if rt.Kind() != reflect.Struct {
		return nil
	}

	meta := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseSendTags(sf.Tag),
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		meta.Fields = append(meta.Fields, fm)
	}

	return &meta
}

// parseSendTags extracts the send.* tags from a struct tag.
func parseSendTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	for _, name := range []string{"send.mask", "send.redact"} {
		if val, ok := tag.Lookup(name); ok {
			tags[name] = val
		}
	}
	return tags
}

// Load decodes doc into a new T using T's json tags. Fields of doc that T
// does not declare are ignored.
func (v *View[T]) Load(_ context.Context, doc Document) (*T, error) {
	text, err := encodeJSON(doc, "")
	if err != nil {
		return nil, newError(ErrSerialize, "load "+v.typeName, err)
	}
	var obj T
	if err := json.Unmarshal(text, &obj); err != nil {
		return nil, newError(ErrParse, "load "+v.typeName, err)
	}
	return &obj, nil
}

// Send returns a masked and redacted clone of obj. obj is never modified.
func (v *View[T]) Send(ctx context.Context, obj *T) (*T, error) {
	if obj == nil {
		return nil, nil
	}
	clone := (*obj).Clone()

	v.mu.RLock()
	defer v.mu.RUnlock()

	if err := v.applyMask(&clone); err != nil {
		return nil, fmt.Errorf("mask: %w", err)
	}
	v.applyRedact(&clone)
	emitSendComplete(ctx, v.typeName, len(v.maskFields), len(v.redactFields))
	return &clone, nil
}

// Document encodes obj back into a Document using T's json tags.
func (v *View[T]) Document(obj *T) (Document, error) {
	text, err := json.Marshal(obj)
	if err != nil {
		return Document{}, newError(ErrSerialize, "document "+v.typeName, err)
	}
	doc, err := parseJSON(text)
	if err != nil {
		return Document{}, newError(ErrParse, "document "+v.typeName, err)
	}
	return doc, nil
}

// applyMask applies mask transformations via reflection.
func (v *View[T]) applyMask(obj *T) error {
	rv := reflect.ValueOf(obj).Elem()

	for _, plan := range v.maskFields {
		masker, ok := v.maskers[MaskType(plan.tagVal)]
		if !ok {
			return fmt.Errorf("missing masker for type %q (field %s)", plan.tagVal, plan.name)
		}

		field, ok := getField(rv, plan)
		if !ok {
			continue
		}

		switch {
		case plan.isSlice:
			for i := 0; i < field.Len(); i++ {
				elem := field.Index(i)
				if elem.CanSet() {
					elem.SetString(masker.Mask(elem.String()))
				}
			}
		case plan.isMap:
			iter := field.MapRange()
			for iter.Next() {
				field.SetMapIndex(iter.Key(), reflect.ValueOf(masker.Mask(iter.Value().String())).Convert(field.Type().Elem()))
			}
		case !field.CanSet():
		case plan.isBytes:
			field.SetBytes([]byte(masker.Mask(string(field.Bytes()))))
		default:
			field.SetString(masker.Mask(field.String()))
		}
	}

	return nil
}

// applyRedact replaces tagged fields with their redaction text.
func (v *View[T]) applyRedact(obj *T) {
	rv := reflect.ValueOf(obj).Elem()

	for _, plan := range v.redactFields {
		field, ok := getField(rv, plan)
		if !ok {
			continue
		}

		switch {
		case plan.isSlice:
			for i := 0; i < field.Len(); i++ {
				if elem := field.Index(i); elem.CanSet() {
					elem.SetString(plan.tagVal)
				}
			}
		case plan.isMap:
			iter := field.MapRange()
			for iter.Next() {
				field.SetMapIndex(iter.Key(), reflect.ValueOf(plan.tagVal).Convert(field.Type().Elem()))
			}
		case !field.CanSet():
		case plan.isBytes:
			field.SetBytes([]byte(plan.tagVal))
		default:
			field.SetString(plan.tagVal)
		}
	}
}

// getField navigates a field path, dereferencing pointers as needed.
// It reports false when a pointer on the path is nil.
func getField(rv reflect.Value, plan viewFieldPlan) (reflect.Value, bool) {
	if len(plan.ptrIndices) == 0 {
		return rv.FieldByIndex(plan.index), true
	}

	ptrSet := make(map[int]bool, len(plan.ptrIndices))
	for _, idx := range plan.ptrIndices {
		ptrSet[idx] = true
	}

	current := rv
	for i, idx := range plan.index {
		current = current.Field(idx)
		if ptrSet[i] {
			if current.IsNil() {
				return reflect.Value{}, false
			}
			current = current.Elem()
		}
	}

	return current, true
}
