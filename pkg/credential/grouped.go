package credential

import (
	"encoding/binary"
	"encoding/json"
	"sort"
	"unicode/utf8"

	"matcher/pkg/dcql"
)

// groupedDatabase is the JSON region of the grouped layout: records nested
// by credential format and document type.
type groupedDatabase struct {
	Credentials map[string]map[string][]map[string]any `json:"credentials"`
}

// GroupedParser reads the grouped database layout. The buffer starts with a
// little-endian u32 offset to the JSON region; bytes before the offset are
// an asset blob addressed by the (start, length) pairs inside each record's
// display icon. Records are grouped by format and document type, both of
// which are synthesized into every record before wrapping.
type GroupedParser struct{}

// Parse decodes the buffer. Group keys are walked in lexicographic order so
// the credential sequence is reproducible.
func (GroupedParser) Parse(buf []byte) ([]*Opaque, bool) {
	region, ok := jsonRegion(buf)
	if !ok {
		return nil, false
	}

	var db groupedDatabase
	if err := json.Unmarshal(region, &db); err != nil {
		return nil, false
	}
	if db.Credentials == nil {
		return nil, false
	}

	var credentials []*Opaque
	for _, format := range sortedKeys(db.Credentials) {
		byDocType := db.Credentials[format]
		for _, docType := range sortedKeys(byDocType) {
			for _, record := range byDocType[docType] {
				decorated := make(map[string]any, len(record)+2)
				for k, v := range record {
					decorated[k] = v
				}
				decorated[fieldFormat] = format
				decorated[fieldDocumentType] = docType
				credentials = append(credentials, NewOpaque(decorated))
			}
		}
	}
	return credentials, true
}

// HasAssetPreamble is always true for the grouped layout.
func (GroupedParser) HasAssetPreamble() bool { return true }

// PathTransform is the identity for the grouped layout; records store their
// claim trees already keyed the way queries address them.
func (GroupedParser) PathTransform() dcql.PathTransform { return nil }

// ResolveIcon slices the referenced byte range out of the asset region.
func (GroupedParser) ResolveIcon(ref *IconRef, buf []byte) []byte {
	if ref == nil || len(buf) < 4 {
		return nil
	}
	offset := uint64(binary.LittleEndian.Uint32(buf[:4]))
	if offset > uint64(len(buf)) {
		return nil
	}
	if ref.Start+ref.Length > offset || ref.Start+ref.Length < ref.Start {
		return nil
	}
	return buf[ref.Start : ref.Start+ref.Length]
}

func jsonRegion(buf []byte) ([]byte, bool) {
	if len(buf) < 4 {
		return nil, false
	}
	offset := uint64(binary.LittleEndian.Uint32(buf[:4]))
	if offset < 4 || offset > uint64(len(buf)) {
		return nil, false
	}
	region := buf[offset:]
	if !utf8.Valid(region) {
		return nil, false
	}
	return region, true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
