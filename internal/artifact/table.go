package artifact

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CanonicalID identifies one builder definition across the whole project:
// `{normalizedAbsolutePath}::{scopePath}`.
type CanonicalID string

// MakeCanonicalID joins a source path and a scope path. Backslashes are
// normalized so ids match across platforms.
func MakeCanonicalID(sourcePath, scopePath string) CanonicalID {
	normalized := strings.ReplaceAll(sourcePath, "\\", "/")
	return CanonicalID(normalized + "::" + scopePath)
}

// Split returns the path and scope-path halves of the id. The separator is
// the first `::` since scope paths never contain one.
func (id CanonicalID) Split() (path, scopePath string, ok bool) {
	s := string(id)
	i := strings.Index(s, "::")
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+2:], true
}

// Table is the decoded builder artifact: every known definition by canonical
// id. It is decoded once and never mutated afterwards, so it is safe to
// share across concurrent transforms.
type Table map[CanonicalID]Element

// Decode parses the builder's artifact JSON. Any element of an unknown kind
// fails the whole decode; a transform cannot proceed against an artifact it
// only partially understands.
func Decode(data []byte) (Table, error) {
	raw := make(map[string]Element)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	table := make(Table, len(raw))
	for id, elem := range raw {
		table[CanonicalID(id)] = elem
	}
	return table, nil
}

// Resolve looks up the definition for a source path and scope path.
func (t Table) Resolve(sourcePath, scopePath string) (Element, bool) {
	elem, ok := t[MakeCanonicalID(sourcePath, scopePath)]
	return elem, ok
}
