package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// Dump is a snapshot of a storage namespace. Values are JSON documents.
type Dump map[string]json.RawMessage

// Export reads every key under prefix into a Dump.
func Export(ctx context.Context, s Storage, prefix string) (Dump, error) {
	keys, err := s.Keys(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	dump := make(Dump, len(keys))
	for _, key := range keys {
		value, err := s.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		if !json.Valid(value) {
			return nil, fmt.Errorf("read %s: value is not JSON", key)
		}
		dump[key] = json.RawMessage(value)
	}
	return dump, nil
}

// Import writes every entry of dump into s and returns the keys written in
// order.
//
// A browser local storage export holds each value as a JSON string that
// itself contains JSON. Such values are unwrapped once. Values that are
// already objects or arrays are stored as they are.
func Import(ctx context.Context, s Storage, dump Dump) ([]string, error) {
	keys := make([]string, 0, len(dump))
	for key := range dump {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value, err := unwrapValue(dump[key])
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", key, err)
		}
		if err := s.Set(ctx, key, value); err != nil {
			return nil, fmt.Errorf("import %s: %w", key, err)
		}
	}
	return keys, nil
}

func unwrapValue(raw json.RawMessage) ([]byte, error) {
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		// Not a string, keep the document.
		if !json.Valid(raw) {
			return nil, fmt.Errorf("value is not JSON")
		}
		return raw, nil
	}

	if !json.Valid([]byte(str)) {
		return nil, fmt.Errorf("string value does not contain JSON")
	}
	return []byte(str), nil
}
