package dcql

import "sort"

// Select matches the query against the stored credentials and expands the
// result into user-selectable credential set options. A required credential
// set with no viable option aborts the whole selection. Given identical
// inputs the output ordering is stable: disclosures follow database order,
// options follow declaration order, and set options within an option are
// ordered lexicographically by credential query id.
func (q *Query) Select(credentials []Credential, opts SelectOptions) []CredentialSetOption {
	if q.CredentialSets != nil && q.Credentials != nil {
		return q.selectSets(credentials, opts)
	}
	if q.Credentials != nil {
		return q.selectImplicitSet(credentials, opts)
	}
	return nil
}

func (q *Query) selectSets(credentials []Credential, opts SelectOptions) []CredentialSetOption {
	queryByID := make(map[string]*CredentialQuery, len(q.Credentials))
	for i := range q.Credentials {
		queryByID[q.Credentials[i].ID] = &q.Credentials[i]
	}

	var matchingSets []CredentialSetOption
	for i := range q.CredentialSets {
		credentialSet := &q.CredentialSets[i]

		var variations [][]SetOption
	optionLoop:
		for _, option := range credentialSet.Options {
			candidates := make(map[string][]Disclosure, len(option))
			for _, id := range option {
				credentialQuery, ok := queryByID[id]
				if !ok {
					continue optionLoop
				}
				candidates[credentialQuery.ID] = disclosures(credentialQuery, credentials, opts)
			}

			setOptions := sortedNonEmpty(candidates)
			if len(setOptions) == 0 {
				continue
			}
			variations = append(variations, setOptions)
		}

		if len(variations) == 0 {
			if credentialSet.Required {
				return nil
			}
			continue
		}

		matchingSets = append(matchingSets, CredentialSetOption{
			Purpose:    credentialSet.PurposeString(),
			SetOptions: variations,
		})
	}

	return matchingSets
}

// selectImplicitSet treats a query without credential_sets as a single
// required set whose one option lists every credential query.
func (q *Query) selectImplicitSet(credentials []Credential, opts SelectOptions) []CredentialSetOption {
	setOptions := make([]SetOption, 0, len(q.Credentials))
	for i := range q.Credentials {
		credentialQuery := &q.Credentials[i]
		creds := disclosures(credentialQuery, credentials, opts)
		if len(creds) == 0 {
			return nil
		}
		setOptions = append(setOptions, SetOption{ID: credentialQuery.ID, Options: creds})
	}
	sort.SliceStable(setOptions, func(i, j int) bool { return setOptions[i].ID < setOptions[j].ID })

	return []CredentialSetOption{{SetOptions: [][]SetOption{setOptions}}}
}

// disclosures collects the candidate disclosures for one credential query in
// database order.
func disclosures(q *CredentialQuery, credentials []Credential, opts SelectOptions) []Disclosure {
	var out []Disclosure
	for _, cred := range credentials {
		claims, ok := q.Satisfied(cred, opts)
		if !ok {
			continue
		}
		out = append(out, Disclosure{Credential: cred, ClaimsQueries: claims})
	}
	return out
}

// sortedNonEmpty flattens a candidate map into set options ordered by id,
// dropping ids with no candidate disclosures.
func sortedNonEmpty(candidates map[string][]Disclosure) []SetOption {
	ids := make([]string, 0, len(candidates))
	for id := range candidates {
		if len(candidates[id]) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	setOptions := make([]SetOption, 0, len(ids))
	for _, id := range ids {
		setOptions = append(setOptions, SetOption{ID: id, Options: candidates[id]})
	}
	return setOptions
}
