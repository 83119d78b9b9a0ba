package apiv1

import (
	"context"

	"matcher/pkg/credential"
	"matcher/pkg/dcql"
	"matcher/pkg/model"
	"matcher/pkg/openid4vp"
)

// Run performs one selection pass: fetch the two host buffers, parse the
// credential database, decode the presentation request and emit every
// selectable disclosure through the host callbacks. No failure propagates;
// the net effect of any failure is an empty set of host entries, plus a
// diagnostic entry when debug is enabled.
func (c *Client) Run(ctx context.Context, buffers HostBuffers, host Host) {
	_, done := c.startSpan(ctx, "apiv1:run")
	defer done()

	database, err := buffers.Credentials()
	if err != nil {
		c.diagnostic(host, "could not read credentials buffer")
		return
	}

	records, ok := c.parser.Parse(database)
	if !ok {
		c.diagnostic(host, "could not parse credential database")
		return
	}
	if len(records) == 0 {
		c.diagnostic(host, model.ErrNoCredentials.Error())
		return
	}

	request, err := buffers.Request()
	if err != nil {
		c.diagnostic(host, "could not read request buffer")
		return
	}

	providerIdx, query, err := openid4vp.Decode(request)
	if err != nil {
		c.diagnostic(host, err.Error())
		return
	}

	credentials := make([]dcql.Credential, 0, len(records))
	for _, record := range records {
		credentials = append(credentials, record)
	}

	options := query.Select(credentials, dcql.SelectOptions{
		Scorer:    c.scorer,
		Transform: c.parser.PathTransform(),
	})
	if len(options) == 0 {
		c.diagnostic(host, "dcql selection failed")
		return
	}

	c.emit(host, providerIdx, query, options, database)
}

// emit walks the selection result and surfaces each disclosure once per
// credential entry id.
func (c *Client) emit(host Host, providerIdx int, query *dcql.Query, options []dcql.CredentialSetOption, database []byte) {
	seen := map[string]bool{}
	for _, credentialSet := range options {
		for _, variation := range credentialSet.SetOptions {
			for _, setOption := range variation {
				for _, disclosure := range setOption.Options {
					c.emitDisclosure(host, providerIdx, query, setOption.ID, disclosure, database, seen)
				}
			}
		}
	}
}

func (c *Client) emitDisclosure(host Host, providerIdx int, query *dcql.Query, queryID string, disclosure dcql.Disclosure, database []byte, seen map[string]bool) {
	record, ok := disclosure.Credential.(*credential.Opaque)
	if !ok {
		return
	}
	display := record.Display()

	id := EntryID{ProviderIdx: providerIdx, ID: display.ID}.String()
	if id == "" || seen[id] {
		return
	}
	seen[id] = true

	host.AddEntry(id, c.parser.ResolveIcon(display.Icon, database), display.Title, display.Subtitle)

	fields := claimPaths(query, queryID, disclosure)
	if len(fields) == 0 {
		host.AddField(id, nothingField, nil)
		return
	}
	for _, field := range fields {
		host.AddField(id, field, nil)
	}
}

// claimPaths renders the disclosed claim paths dot-joined. A disclosure
// without narrowed claims queries lists everything the parent credential
// query asked for.
func claimPaths(query *dcql.Query, queryID string, disclosure dcql.Disclosure) []string {
	claims := disclosure.ClaimsQueries
	if len(claims) == 0 {
		for i := range query.Credentials {
			if query.Credentials[i].ID == queryID {
				claims = query.Credentials[i].Claims
				break
			}
		}
	}

	paths := make([]string, 0, len(claims))
	for _, cq := range claims {
		paths = append(paths, cq.Path.String())
	}
	return paths
}

// diagnostic surfaces an error entry on the host. Silent unless the debug
// flag is set.
func (c *Client) diagnostic(host Host, title string) {
	c.log.Debug("selection failed", "reason", title)
	if !c.cfg.Matcher.Debug {
		return
	}
	host.AddEntry(diagnosticEntryID, nil, title, "error")
	host.AddField(diagnosticEntryID, "error", nil)
}
