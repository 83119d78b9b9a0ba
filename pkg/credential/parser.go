package credential

import "matcher/pkg/dcql"

// Parser turns a credential database buffer into an ordered sequence of
// credentials. Implementations are stateless; one is registered at startup
// and read-only during selection.
type Parser interface {
	// Parse decodes the buffer. It reports false when the buffer does not
	// carry the layout's expected shape; the caller then selects nothing and
	// emits no credential entries.
	Parse(buf []byte) ([]*Opaque, bool)

	// HasAssetPreamble reports whether the buffer starts with a little-endian
	// u32 offset to the JSON region, with icon assets stored before it.
	HasAssetPreamble() bool

	// PathTransform returns the layout's claims path rewrite, nil for
	// identity.
	PathTransform() dcql.PathTransform

	// ResolveIcon returns the icon bytes referenced by a display entry, nil
	// when the layout carries no assets or the range falls outside the asset
	// region.
	ResolveIcon(ref *IconRef, buf []byte) []byte
}

// Database layout names accepted in configuration.
const (
	LayoutFlat    = "flat"
	LayoutGrouped = "grouped"
)

// ParserFor returns the parser plug-in for a configured database layout.
func ParserFor(layout string) (Parser, bool) {
	switch layout {
	case LayoutFlat:
		return FlatParser{}, true
	case LayoutGrouped:
		return GroupedParser{}, true
	}
	return nil, false
}
