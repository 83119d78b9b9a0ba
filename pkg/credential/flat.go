package credential

import (
	"encoding/json"

	"matcher/pkg/dcql"
)

// FlatParser reads the flat database layout: a top-level JSON array of
// credential records that already carry credential_format, document_type,
// paths and display members. The layout has no asset preamble.
type FlatParser struct{}

// Parse decodes the buffer as a record array.
func (FlatParser) Parse(buf []byte) ([]*Opaque, bool) {
	var records []map[string]any
	if err := json.Unmarshal(buf, &records); err != nil {
		return nil, false
	}

	credentials := make([]*Opaque, 0, len(records))
	for _, record := range records {
		credentials = append(credentials, NewOpaque(record))
	}
	return credentials, true
}

// HasAssetPreamble is always false for the flat layout.
func (FlatParser) HasAssetPreamble() bool { return false }

// PathTransform is the identity for the flat layout.
func (FlatParser) PathTransform() dcql.PathTransform { return nil }

// ResolveIcon always returns nil; the flat layout stores no assets.
func (FlatParser) ResolveIcon(ref *IconRef, buf []byte) []byte { return nil }
