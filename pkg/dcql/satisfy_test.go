package dcql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSatisfiedGates(t *testing.T) {
	claims := mustJSON(t, `{"age_over_18": true}`)

	tts := []struct {
		name       string
		query      CredentialQuery
		credential testCredential
		want       bool
	}{
		{
			name:       "format match",
			query:      CredentialQuery{ID: "c", Format: "dc+sd-jwt"},
			credential: testCredential{claims: claims, format: "dc+sd-jwt"},
			want:       true,
		},
		{
			name:       "format mismatch",
			query:      CredentialQuery{ID: "c", Format: "mso_mdoc"},
			credential: testCredential{claims: claims, format: "dc+sd-jwt"},
			want:       false,
		},
		{
			name:       "missing credential format is permissive",
			query:      CredentialQuery{ID: "c", Format: "mso_mdoc"},
			credential: testCredential{claims: claims},
			want:       true,
		},
		{
			name: "vct gate accepts listed type",
			query: CredentialQuery{ID: "c", Format: "dc+sd-jwt", Meta: &MetaQuery{
				VCTValues: []string{"urn:eudi:pid:1"},
			}},
			credential: testCredential{claims: claims, format: "dc+sd-jwt", docType: "urn:eudi:pid:1"},
			want:       true,
		},
		{
			name: "vct gate rejects unlisted type",
			query: CredentialQuery{ID: "c", Format: "dc+sd-jwt", Meta: &MetaQuery{
				VCTValues: []string{"urn:eudi:pid:1"},
			}},
			credential: testCredential{claims: claims, format: "dc+sd-jwt", docType: "urn:eudi:ehic:1"},
			want:       false,
		},
		{
			name: "doctype gate requires exact value",
			query: CredentialQuery{ID: "c", Format: "mso_mdoc", Meta: &MetaQuery{
				DoctypeValue: "org.iso.18013.5.1.mDL",
			}},
			credential: testCredential{claims: claims, format: "mso_mdoc", docType: "org.iso.18013.5.1.mDL"},
			want:       true,
		},
		{
			name: "doctype gate rejects other documents",
			query: CredentialQuery{ID: "c", Format: "mso_mdoc", Meta: &MetaQuery{
				DoctypeValue: "org.iso.18013.5.1.mDL",
			}},
			credential: testCredential{claims: claims, format: "mso_mdoc", docType: "org.iso.23220.photoid.1"},
			want:       false,
		},
		{
			name: "meta gating needs a document type",
			query: CredentialQuery{ID: "c", Format: "mso_mdoc", Meta: &MetaQuery{
				DoctypeValue: "org.iso.18013.5.1.mDL",
			}},
			credential: testCredential{claims: claims, format: "mso_mdoc"},
			want:       false,
		},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := tt.query.Satisfied(tt.credential, SelectOptions{})
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestSatisfiedClaims(t *testing.T) {
	cred := testCredential{
		claims: mustJSON(t, `{"age_over_18": true, "birth_date": "1952-03-11"}`),
		format: "dc+sd-jwt",
	}

	t.Run("all claim queries must match", func(t *testing.T) {
		query := CredentialQuery{ID: "c", Format: "dc+sd-jwt", Claims: []ClaimsQuery{
			{Path: Pointer{Name("age_over_18")}},
			{Path: Pointer{Name("birth_date")}},
		}}

		claims, ok := query.Satisfied(cred, SelectOptions{})
		require.True(t, ok)
		// whole-credential presentation: no narrowing
		assert.Empty(t, claims)
		assert.NotNil(t, claims)
	})

	t.Run("one failing claim query fails the credential", func(t *testing.T) {
		query := CredentialQuery{ID: "c", Format: "dc+sd-jwt", Claims: []ClaimsQuery{
			{Path: Pointer{Name("age_over_18")}},
			{Path: Pointer{Name("no_such_claim")}},
		}}

		_, ok := query.Satisfied(cred, SelectOptions{})
		assert.False(t, ok)
	})

	t.Run("no claims and no claim sets", func(t *testing.T) {
		query := CredentialQuery{ID: "c", Format: "dc+sd-jwt"}

		claims, ok := query.Satisfied(cred, SelectOptions{})
		require.True(t, ok)
		assert.Empty(t, claims)
	})
}

func TestSatisfiedClaimSets(t *testing.T) {
	cred := testCredential{
		claims: mustJSON(t, `{"age_over_18": true, "birth_date": "1952-03-11"}`),
		format: "dc+sd-jwt",
	}

	t.Run("least information wins", func(t *testing.T) {
		query := CredentialQuery{ID: "c", Format: "dc+sd-jwt",
			Claims: []ClaimsQuery{
				{ID: "bd", Path: Pointer{Name("birth_date")}},
				{ID: "ao", Path: Pointer{Name("age_over_18")}},
			},
			ClaimSets: [][]string{{"bd"}, {"ao"}},
		}

		claims, ok := query.Satisfied(cred, SelectOptions{})
		require.True(t, ok)
		require.Len(t, claims, 1)
		assert.Equal(t, "ao", claims[0].ID)
	})

	t.Run("declaration order breaks ties", func(t *testing.T) {
		query := CredentialQuery{ID: "c", Format: "dc+sd-jwt",
			Claims: []ClaimsQuery{
				{ID: "first", Path: Pointer{Name("age_over_18")}},
				{ID: "second", Path: Pointer{Name("age_over_18")}},
			},
			ClaimSets: [][]string{{"first"}, {"second"}},
		}

		claims, ok := query.Satisfied(cred, SelectOptions{})
		require.True(t, ok)
		require.Len(t, claims, 1)
		assert.Equal(t, "first", claims[0].ID)
	})

	t.Run("falls through to the next viable set", func(t *testing.T) {
		query := CredentialQuery{ID: "c", Format: "dc+sd-jwt",
			Claims: []ClaimsQuery{
				{ID: "ao21", Path: Pointer{Name("age_over_21")}},
				{ID: "bd", Path: Pointer{Name("birth_date")}},
			},
			ClaimSets: [][]string{{"ao21"}, {"bd"}},
		}

		claims, ok := query.Satisfied(cred, SelectOptions{})
		require.True(t, ok)
		require.Len(t, claims, 1)
		assert.Equal(t, "bd", claims[0].ID)
	})

	t.Run("claim without id fails the whole query", func(t *testing.T) {
		query := CredentialQuery{ID: "c", Format: "dc+sd-jwt",
			Claims: []ClaimsQuery{
				{Path: Pointer{Name("age_over_18")}},
			},
			ClaimSets: [][]string{{"ao"}},
		}

		_, ok := query.Satisfied(cred, SelectOptions{})
		assert.False(t, ok)
	})

	t.Run("unknown id skips the set", func(t *testing.T) {
		query := CredentialQuery{ID: "c", Format: "dc+sd-jwt",
			Claims: []ClaimsQuery{
				{ID: "ao", Path: Pointer{Name("age_over_18")}},
			},
			ClaimSets: [][]string{{"missing"}, {"ao"}},
		}

		claims, ok := query.Satisfied(cred, SelectOptions{})
		require.True(t, ok)
		require.Len(t, claims, 1)
		assert.Equal(t, "ao", claims[0].ID)
	})

	t.Run("no viable set", func(t *testing.T) {
		query := CredentialQuery{ID: "c", Format: "dc+sd-jwt",
			Claims: []ClaimsQuery{
				{ID: "ao21", Path: Pointer{Name("age_over_21")}},
			},
			ClaimSets: [][]string{{"ao21"}},
		}

		_, ok := query.Satisfied(cred, SelectOptions{})
		assert.False(t, ok)
	})
}
