package hhsav

import (
	"errors"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var errEmptyPath = errors.New("path is empty")

// Lookup resolves a gjson path (e.g. "Bank.accounts.0.balance" or
// "Quests.#.id") against doc. The second result is false when nothing
// matches.
func Lookup(doc Document, path string) (Document, bool, error) {
	if path == "" {
		return Document{}, false, newError(ErrPath, "lookup", errEmptyPath)
	}
	raw, err := encodeJSON(doc, "")
	if err != nil {
		return Document{}, false, newError(ErrSerialize, "lookup", err)
	}

	res := gjson.GetBytes(raw, path)
	if !res.Exists() {
		return Document{}, false, nil
	}
	found, err := parseJSON([]byte(res.Raw))
	if err != nil {
		return Document{}, false, newError(ErrParse, "lookup", err)
	}
	return found, true, nil
}

// SetPath returns a copy of doc with the value at path replaced by value.
// Missing intermediate objects are created.
func SetPath(doc Document, path string, value Document) (Document, error) {
	if path == "" {
		return Document{}, newError(ErrPath, "set", errEmptyPath)
	}
	raw, err := encodeJSON(doc, "")
	if err != nil {
		return Document{}, newError(ErrSerialize, "set", err)
	}
	val, err := encodeJSON(value, "")
	if err != nil {
		return Document{}, newError(ErrSerialize, "set", err)
	}

	out, err := sjson.SetRawBytes(raw, path, val)
	if err != nil {
		return Document{}, newError(ErrPath, "set", err)
	}
	updated, err := parseJSON(out)
	if err != nil {
		return Document{}, newError(ErrParse, "set", err)
	}
	return updated, nil
}

// DeletePath returns a copy of doc with the value at path removed.
func DeletePath(doc Document, path string) (Document, error) {
	if path == "" {
		return Document{}, newError(ErrPath, "delete", errEmptyPath)
	}
	raw, err := encodeJSON(doc, "")
	if err != nil {
		return Document{}, newError(ErrSerialize, "delete", err)
	}

	out, err := sjson.DeleteBytes(raw, path)
	if err != nil {
		return Document{}, newError(ErrPath, "delete", err)
	}
	updated, err := parseJSON(out)
	if err != nil {
		return Document{}, newError(ErrParse, "delete", err)
	}
	return updated, nil
}
