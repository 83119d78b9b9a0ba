package dcql

import "encoding/json"

// Query is a DCQL query as carried in the dcql_query Authorization Request
// parameter.
type Query struct {
	// Credentials REQUIRED. A non-empty array of Credential Queries that specify the requested Credentials.
	Credentials []CredentialQuery `json:"credentials,omitempty" validate:"omitempty,min=1,dive"`

	// CredentialSets OPTIONAL. A non-empty array of Credential Set Queries that specifies additional constraints on which of the requested Credentials to return.
	CredentialSets []CredentialSetQuery `json:"credential_sets,omitempty" validate:"omitempty,min=1,dive"`
}

// CredentialQuery is an object representing a request for a presentation of one or more matching Credentials.
type CredentialQuery struct {
	// ID REQUIRED. A string identifying the Credential in the response and, if provided, the constraints in credential_sets. Within the Authorization Request, the same id MUST NOT be present more than once.
	ID string `json:"id" validate:"required"`

	// Format REQUIRED. A string that specifies the format of the requested Credential.
	Format string `json:"format" validate:"required"`

	// Multiple OPTIONAL. A boolean which indicates whether multiple Credentials can be returned for this Credential Query. If omitted, the default value is false.
	Multiple bool `json:"multiple,omitempty"`

	// Meta OPTIONAL. An object defining additional properties requested by the Verifier that apply to the metadata and validity data of the Credential. The properties of this object are defined per Credential Format.
	Meta *MetaQuery `json:"meta,omitempty"`

	// TrustedAuthorities OPTIONAL. A non-empty array of objects that specifies expected authorities or trust frameworks that certify Issuers.
	TrustedAuthorities []TrustedAuthority `json:"trusted_authorities,omitempty"`

	// RequireCryptographicHolderBinding OPTIONAL. A boolean which indicates whether the Verifier requires a Cryptographic Holder Binding proof. The default value is true.
	RequireCryptographicHolderBinding *bool `json:"require_cryptographic_holder_binding,omitempty"`

	// Claims OPTIONAL. A non-empty array of objects that specifies claims in the requested Credential.
	Claims []ClaimsQuery `json:"claims,omitempty"`

	// ClaimSets OPTIONAL. A non-empty array containing arrays of identifiers for elements in claims that specifies which combinations of claims for the Credential are requested.
	ClaimSets [][]string `json:"claim_sets,omitempty" validate:"omitempty,min=1,dive,min=1,dive,required"`
}

// ClaimsQuery requests one claim within a Credential.
type ClaimsQuery struct {
	// ID REQUIRED if claim_sets is present in the Credential Query; OPTIONAL otherwise. A string identifying the particular claim.
	ID string `json:"id,omitempty"`

	// Path REQUIRED. A non-empty array representing a claims path pointer that specifies the path to a claim within the Credential.
	Path Pointer `json:"path" validate:"required,min=1"`

	// Values OPTIONAL. A non-empty array of strings, integers or boolean values that specifies the expected values of the claim.
	Values []any `json:"values,omitempty"`
}

// MetaQuery carries the format-specific metadata constraints of a Credential
// Query. The variant is discriminated by shape: vct_values for SD-JWT VC,
// doctype_value for ISO mdoc.
type MetaQuery struct {
	// VCTValues for SD-JWT VC format (dc+sd-jwt). A non-empty array of strings that specifies allowed values for the type of the requested Verifiable Credential.
	VCTValues []string `json:"vct_values,omitempty"`

	// DoctypeValue for ISO mdoc format (mso_mdoc). String that specifies an allowed value for the doctype of the requested Verifiable Credential.
	DoctypeValue string `json:"doctype_value,omitempty"`
}

// IsSDJWTVC reports whether the meta constraint carries SD-JWT VC type values.
func (m *MetaQuery) IsSDJWTVC() bool {
	return m != nil && len(m.VCTValues) > 0
}

// IsMdoc reports whether the meta constraint carries an ISO mdoc doctype.
func (m *MetaQuery) IsMdoc() bool {
	return m != nil && m.DoctypeValue != ""
}

// TrustedAuthority specifies an authority or trust framework that certifies Issuers.
type TrustedAuthority struct {
	// Type REQUIRED. A string uniquely identifying the type of information about the issuer trust framework.
	Type string `json:"type" validate:"required"`

	// Values REQUIRED. A non-empty array of strings, where each string contains information specific to the used Trusted Authorities Query type.
	Values []string `json:"values" validate:"required,min=1"`
}

// CredentialSetQuery expresses alternatives over requested Credentials.
type CredentialSetQuery struct {
	// Options REQUIRED. A non-empty array, where each value in the array is a list of Credential Query identifiers representing one set of Credentials that satisfies the use case.
	Options [][]string `json:"options" validate:"required,min=1,dive,min=1,dive,required"`

	// Required OPTIONAL. A boolean which indicates whether this set of Credentials is required to satisfy the particular use case at the Verifier. If omitted, the default value is true.
	Required bool `json:"required"`

	// Purpose OPTIONAL. A string, number or object specifying the purpose of the query.
	Purpose any `json:"purpose,omitempty"`
}

// UnmarshalJSON applies the required-by-default rule.
func (q *CredentialSetQuery) UnmarshalJSON(data []byte) error {
	type alias CredentialSetQuery
	tmp := alias{Required: true}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*q = CredentialSetQuery(tmp)
	return nil
}

// PurposeString returns the purpose when it is a plain string, nil otherwise.
func (q *CredentialSetQuery) PurposeString() *string {
	if s, ok := q.Purpose.(string); ok {
		return &s
	}
	return nil
}

// Credential is the read surface the selection algorithm needs from a stored
// credential. The credential package provides the record-backed
// implementation; new representations implement this without changing the
// selection code.
type Credential interface {
	// Claims returns the parsed claim tree.
	Claims() any
	// Format returns the credential format tag when the record carries one.
	Format() (string, bool)
	// DocumentType returns the document type tag when the record carries one.
	DocumentType() (string, bool)
}

// Disclosure is one credential plus the concrete claims queries to reveal.
// An empty ClaimsQueries means whole-credential disclosure without narrowing.
type Disclosure struct {
	Credential    Credential
	ClaimsQueries []ClaimsQuery
}

// SetOption holds the candidate disclosures for one credential query id.
type SetOption struct {
	ID      string
	Options []Disclosure
}

// CredentialSetOption is one user-selectable way of answering a credential
// set query. Inner SetOption vectors are never empty.
type CredentialSetOption struct {
	Purpose    *string
	SetOptions [][]SetOption
}
