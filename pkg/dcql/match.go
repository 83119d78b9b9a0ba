package dcql

import "github.com/google/go-cmp/cmp"

// PathTransform rewrites a claims path before selection. Parser plug-ins may
// supply a layout-specific rewrite, such as prefixing an mdoc document-type
// namespace. A nil transform is the identity.
type PathTransform func(Pointer) Pointer

// Matches reports whether the claims query resolves in the given claim tree
// and, when a value constraint is present, whether every selected node
// structurally equals at least one of the expected values. Any selector
// error counts as a non-match.
func (cq ClaimsQuery) Matches(claims any, transform PathTransform) bool {
	path := cq.Path
	if transform != nil {
		path = transform(path)
	}

	selected, err := path.Select(claims)
	if err != nil {
		return false
	}

	if cq.Values == nil {
		return true
	}

	for _, node := range selected {
		if !containsValue(cq.Values, node) {
			return false
		}
	}
	return true
}

func containsValue(values []any, node any) bool {
	for _, v := range values {
		if cmp.Equal(v, node) {
			return true
		}
	}
	return false
}
