/**
 * @description
 * This file defines the Metadata bag attached to accounts, clients, and
 * transactions. It is persisted as JSONB and restricted by convention to
 * string, number, and timestamp values.
 *
 * @notes
 * - Only two keys are consumed by the application: "version" (a monotonically
 *   incremented counter, defaulting to 1 when absent) and "motifBlocage" (the
 *   reason an account was blocked). Named accessors cover both so callers
 *   never do free-form lookups.
 * - The "motifBlocage" key name is part of the stored data contract carried
 *   over from the previous system and must not be renamed.
 */
package domain

import "encoding/json"

// Metadata keys consumed by the application.
const (
	MetadataKeyVersion     = "version"
	MetadataKeyBlockReason = "motifBlocage"
)

// Metadata is an open key/value bag persisted alongside an entity.
type Metadata map[string]any

// Version returns the metadata version counter, defaulting to 1 when the key
// is absent or malformed. JSON decoding yields float64 for numbers, so both
// integer and float representations are accepted.
func (m Metadata) Version() int {
	v, ok := m[MetadataKeyVersion]
	if !ok {
		return 1
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}
	return 1
}

// BlockReason returns the reason the account was blocked, or nil when no
// reason is recorded.
func (m Metadata) BlockReason() *string {
	v, ok := m[MetadataKeyBlockReason]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// WithVersion returns a copy of the metadata with the version counter set.
// The receiver is never mutated so stored snapshots stay stable.
func (m Metadata) WithVersion(version int) Metadata {
	out := m.clone()
	out[MetadataKeyVersion] = version
	return out
}

// WithBlockReason returns a copy of the metadata with the block reason set,
// or with the key removed when reason is empty.
func (m Metadata) WithBlockReason(reason string) Metadata {
	out := m.clone()
	if reason == "" {
		delete(out, MetadataKeyBlockReason)
	} else {
		out[MetadataKeyBlockReason] = reason
	}
	return out
}

func (m Metadata) clone() Metadata {
	out := make(Metadata, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
