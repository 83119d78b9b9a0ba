package dcql

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidType is returned when a path part is applied to a value of the wrong shape
	ErrInvalidType = errors.New("INVALID_TYPE")

	// ErrInvalidIndex is returned when a path element is a negative or fractional number
	ErrInvalidIndex = errors.New("INVALID_INDEX")

	// ErrNoElementsFound is returned when a selection step leaves no nodes
	ErrNoElementsFound = errors.New("NO_ELEMENTS_FOUND")
)

// PartKind discriminates the three claims path pointer element types.
type PartKind int

const (
	// PartName selects an object member by key
	PartName PartKind = iota
	// PartIndex selects an array element by position
	PartIndex
	// PartWildcard selects all elements of an array
	PartWildcard
)

// PointerPart is one element of a claims path pointer. On the wire it is a
// string (member key), a non-negative integer (array index) or null (array
// wildcard), per OpenID4VP Section 7.
type PointerPart struct {
	kind  PartKind
	name  string
	index uint64
}

// Name returns a member-key path part.
func Name(name string) PointerPart {
	return PointerPart{kind: PartName, name: name}
}

// Index returns an array-index path part.
func Index(i uint64) PointerPart {
	return PointerPart{kind: PartIndex, index: i}
}

// Wildcard returns the all-array-elements path part.
func Wildcard() PointerPart {
	return PointerPart{kind: PartWildcard}
}

// Kind returns the part discriminator.
func (p PointerPart) Kind() PartKind { return p.kind }

// MemberName returns the member key of a name part, empty otherwise.
func (p PointerPart) MemberName() string { return p.name }

// ArrayIndex returns the array position of an index part, zero otherwise.
func (p PointerPart) ArrayIndex() uint64 { return p.index }

// String renders the part the way entries display claim paths: the member
// key, the decimal index, or "[]" for a wildcard.
func (p PointerPart) String() string {
	switch p.kind {
	case PartIndex:
		return strconv.FormatUint(p.index, 10)
	case PartWildcard:
		return "[]"
	default:
		return p.name
	}
}

// UnmarshalJSON decodes the untagged wire form: string, number or null.
func (p *PointerPart) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch t := v.(type) {
	case string:
		*p = Name(t)
	case float64:
		if t < 0 || t != math.Trunc(t) {
			return ErrInvalidIndex
		}
		*p = Index(uint64(t))
	case nil:
		*p = Wildcard()
	default:
		return ErrInvalidType
	}

	return nil
}

// MarshalJSON encodes the untagged wire form.
func (p PointerPart) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case PartName:
		return json.Marshal(p.name)
	case PartIndex:
		return json.Marshal(p.index)
	default:
		return []byte("null"), nil
	}
}

// Pointer is an ordered claims path. A wildcard is legal only where the
// current value is an array, a name part requires an object and an index
// part requires an array.
type Pointer []PointerPart

// String renders the pointer dot-joined, wildcards as "[]".
func (p Pointer) String() string {
	parts := make([]string, 0, len(p))
	for _, part := range p {
		parts = append(parts, part.String())
	}
	return strings.Join(parts, ".")
}

// Select walks the pointer against a parsed JSON value and returns the
// selected nodes. Every step requires its type precondition to hold for all
// currently selected nodes; a step that leaves no nodes fails with
// ErrNoElementsFound.
func (p Pointer) Select(value any) ([]any, error) {
	selected := []any{value}

	for _, part := range p {
		switch part.kind {
		case PartName:
			next := make([]any, 0, len(selected))
			for _, node := range selected {
				obj, ok := node.(map[string]any)
				if !ok {
					return nil, ErrInvalidType
				}
				if member, ok := obj[part.name]; ok {
					next = append(next, member)
				}
			}
			selected = next
		case PartIndex:
			next := make([]any, 0, len(selected))
			for _, node := range selected {
				arr, ok := node.([]any)
				if !ok {
					return nil, ErrInvalidType
				}
				if part.index < uint64(len(arr)) {
					next = append(next, arr[part.index])
				}
			}
			selected = next
		case PartWildcard:
			var next []any
			for _, node := range selected {
				arr, ok := node.([]any)
				if !ok {
					return nil, ErrInvalidType
				}
				next = append(next, arr...)
			}
			selected = next
		}

		if len(selected) == 0 {
			return nil, ErrNoElementsFound
		}
	}

	return selected, nil
}

// Resolve expands the pointer into the concrete, wildcard-free pointers it
// reaches in value. A wildcard forks every prefix into one pointer per
// element of the (single) array selected so far. Intermediate selection
// failures yield no expansions rather than an error.
func (p Pointer) Resolve(value any) []Pointer {
	resolved := []Pointer{{}}
	walked := make(Pointer, 0, len(p))

	for _, part := range p {
		if part.kind == PartWildcard {
			nodes, err := walked.Select(value)
			if err != nil || len(nodes) != 1 {
				return nil
			}
			arr, ok := nodes[0].([]any)
			if !ok {
				return nil
			}

			next := make([]Pointer, 0, len(resolved)*len(arr))
			for _, prefix := range resolved {
				for i := range arr {
					forked := make(Pointer, len(prefix), len(prefix)+1)
					copy(forked, prefix)
					next = append(next, append(forked, Index(uint64(i))))
				}
			}
			resolved = next
		} else {
			for i := range resolved {
				resolved[i] = append(resolved[i], part)
			}
		}

		walked = append(walked, part)
		if _, err := walked.Select(value); err != nil {
			return nil
		}
	}

	return resolved
}
