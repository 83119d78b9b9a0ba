package apiv1

import (
	"context"

	"matcher/pkg/helpers"
)

// staticBuffers adapts in-memory buffers to the HostBuffers surface.
type staticBuffers struct {
	request     []byte
	credentials []byte
}

func (b staticBuffers) Request() ([]byte, error)     { return b.request, nil }
func (b staticBuffers) Credentials() ([]byte, error) { return b.credentials, nil }

// entryCollector implements Host by collecting the callbacks into a reply.
type entryCollector struct {
	entries []Entry
}

func (e *entryCollector) AddEntry(id string, icon []byte, title, subtitle string) {
	e.entries = append(e.entries, Entry{ID: id, Title: title, Subtitle: subtitle, Icon: icon})
}

func (e *entryCollector) AddField(id string, displayName string, displayValue *string) {
	for i := range e.entries {
		if e.entries[i].ID == id {
			e.entries[i].Fields = append(e.entries[i].Fields, Field{DisplayName: displayName, DisplayValue: displayValue})
			return
		}
	}
}

// Match runs one selection pass over the request and credential buffers and
// returns the emitted entries.
func (c *Client) Match(ctx context.Context, request *MatchRequest) (*MatchReply, error) {
	ctx, done := c.startSpan(ctx, "apiv1:match")
	defer done()

	if err := helpers.Check(ctx, request, c.log); err != nil {
		return nil, err
	}

	collector := &entryCollector{}
	c.Run(ctx, staticBuffers{request: request.Request, credentials: request.Credentials}, collector)

	return &MatchReply{Entries: collector.entries}, nil
}

// Health returns the health status of the service
func (c *Client) Health(ctx context.Context) (*StatusReply, error) {
	_, done := c.startSpan(ctx, "apiv1:health")
	defer done()

	return &StatusReply{ServiceName: "matcher", Status: "STATUS_OK"}, nil
}
