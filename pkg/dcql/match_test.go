package dcql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// testCredential is a minimal Credential for exercising the selection
// algorithm against hand-built claim trees.
type testCredential struct {
	claims  any
	format  string
	docType string
}

func (c testCredential) Claims() any { return c.claims }

func (c testCredential) Format() (string, bool) { return c.format, c.format != "" }

func (c testCredential) DocumentType() (string, bool) { return c.docType, c.docType != "" }

func TestClaimsQueryMatches(t *testing.T) {
	claims := mustJSON(t, `{
		"age_over_18": true,
		"nationalities": ["British", "Betelgeusian"],
		"empty": []
	}`)

	tts := []struct {
		name  string
		query ClaimsQuery
		want  bool
	}{
		{
			name:  "path resolves without value constraint",
			query: ClaimsQuery{Path: Pointer{Name("age_over_18")}},
			want:  true,
		},
		{
			name:  "value literal matches",
			query: ClaimsQuery{Path: Pointer{Name("age_over_18")}, Values: []any{true}},
			want:  true,
		},
		{
			name:  "value literal mismatch",
			query: ClaimsQuery{Path: Pointer{Name("age_over_18")}, Values: []any{false}},
			want:  false,
		},
		{
			name:  "every selected node must match one value",
			query: ClaimsQuery{Path: Pointer{Name("nationalities"), Wildcard()}, Values: []any{"British", "Betelgeusian"}},
			want:  true,
		},
		{
			name:  "one selected node outside the value set",
			query: ClaimsQuery{Path: Pointer{Name("nationalities"), Wildcard()}, Values: []any{"British"}},
			want:  false,
		},
		{
			name:  "unresolvable path",
			query: ClaimsQuery{Path: Pointer{Name("no_such_claim")}},
			want:  false,
		},
		{
			name:  "empty selection under a value constraint",
			query: ClaimsQuery{Path: Pointer{Name("empty"), Wildcard()}, Values: []any{"anything"}},
			want:  false,
		},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Matches(claims, nil))
		})
	}
}

func TestClaimsQueryMatchesTransform(t *testing.T) {
	claims := mustJSON(t, `{"org.iso.18013.5.1": {"family_name": "Dent"}}`)

	query := ClaimsQuery{Path: Pointer{Name("family_name")}}
	assert.False(t, query.Matches(claims, nil))

	namespaced := func(p Pointer) Pointer {
		return append(Pointer{Name("org.iso.18013.5.1")}, p...)
	}
	assert.True(t, query.Matches(claims, namespaced))
}
