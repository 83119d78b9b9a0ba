package dcql

import "sort"

// SelectOptions carries the strategy hooks of a selection run.
type SelectOptions struct {
	// Scorer orders claim sets; SensitivityScorer when nil.
	Scorer InformationScorer
	// Transform rewrites claims paths before selection; identity when nil.
	Transform PathTransform
}

func (o SelectOptions) scorer() InformationScorer {
	if o.Scorer == nil {
		return SensitivityScorer{}
	}
	return o.Scorer
}

// Satisfied decides whether a credential can answer this credential query.
// It returns the claims queries to disclose and true on success. An empty
// (non-nil) result means whole-credential presentation without narrowing.
func (q *CredentialQuery) Satisfied(cred Credential, opts SelectOptions) ([]ClaimsQuery, bool) {
	if format, ok := cred.Format(); ok && format != q.Format {
		return nil, false
	}

	if q.Meta != nil {
		docType, ok := cred.DocumentType()
		if !ok {
			return nil, false
		}
		switch {
		case q.Meta.IsSDJWTVC():
			if !containsString(q.Meta.VCTValues, docType) {
				return nil, false
			}
		case q.Meta.IsMdoc():
			if docType != q.Meta.DoctypeValue {
				return nil, false
			}
		}
	}

	if q.ClaimSets != nil && q.Claims != nil {
		return q.satisfiedClaimSet(cred, opts)
	}

	// Without claim sets every claim query must match; the disclosure is the
	// whole credential.
	for _, cq := range q.Claims {
		if !cq.Matches(cred.Claims(), opts.Transform) {
			return nil, false
		}
	}
	return []ClaimsQuery{}, true
}

// satisfiedClaimSet picks the first viable claim set in ascending
// information-score order, declaration order among ties.
func (q *CredentialQuery) satisfiedClaimSet(cred Credential, opts SelectOptions) ([]ClaimsQuery, bool) {
	// When claim_sets is present every claim needs an id.
	// https://openid.net/specs/openid-4-verifiable-presentations-1_0-23.html#section-6.1
	claimsByID := make(map[string]ClaimsQuery, len(q.Claims))
	for _, cq := range q.Claims {
		if cq.ID == "" {
			return nil, false
		}
		claimsByID[cq.ID] = cq
	}

	scorer := opts.scorer()
	ordered := make([][]string, len(q.ClaimSets))
	copy(ordered, q.ClaimSets)
	sort.SliceStable(ordered, func(i, j int) bool {
		return claimSetScore(ordered[i], claimsByID, scorer) < claimSetScore(ordered[j], claimsByID, scorer)
	})

claimSet:
	for _, set := range ordered {
		queries := make([]ClaimsQuery, 0, len(set))
		for _, id := range set {
			cq, ok := claimsByID[id]
			if !ok {
				continue claimSet
			}
			if !cq.Matches(cred.Claims(), opts.Transform) {
				continue claimSet
			}
			queries = append(queries, cq)
		}
		return queries, true
	}

	return nil, false
}

func claimSetScore(set []string, claimsByID map[string]ClaimsQuery, scorer InformationScorer) int {
	score := 0
	for _, id := range set {
		if cq, ok := claimsByID[id]; ok {
			score += scorer.Score(cq.Path)
		}
	}
	return score
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
