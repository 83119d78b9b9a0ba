package openid4vp

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"matcher/pkg/dcql"
)

// Protocol tags carrying an OpenID4VP payload. All three share the same
// request shape.
const (
	ProtocolOpenID4VP         = "openid4vp"
	ProtocolOpenID4VPUnsigned = "openid4vp-v1-unsigned"
	ProtocolOpenID4VPSigned   = "openid4vp-v1-signed"
)

// IsOpenID4VP reports whether a provider protocol tag is one of the
// recognized OpenID4VP variants. Any other tag is an opaque provider.
func IsOpenID4VP(protocol string) bool {
	switch protocol {
	case ProtocolOpenID4VP, ProtocolOpenID4VPUnsigned, ProtocolOpenID4VPSigned:
		return true
	}
	return false
}

// DCRequest is the outer Digital Credentials API request. The providers and
// requests members are aliases.
type DCRequest struct {
	Providers []Provider `json:"providers"`
	Requests  []Provider `json:"requests"`
}

func (r *DCRequest) providers() []Provider {
	if r.Providers != nil {
		return r.Providers
	}
	return r.Requests
}

// Provider is one entry of the provider list, tagged by protocol. The data
// and request members are aliases for the protocol payload.
type Provider struct {
	Protocol string          `json:"protocol"`
	Data     json.RawMessage `json:"data"`
	Request  json.RawMessage `json:"request"`
}

func (p *Provider) payload() json.RawMessage {
	if len(p.Data) > 0 {
		return p.Data
	}
	return p.Request
}

// Request is the OpenID4VP request payload reached after unwrapping.
type Request struct {
	DCQLQuery dcql.Query `json:"dcql_query"`
}

// wrappedRequest is the envelope around a JWT-compact request object.
type wrappedRequest struct {
	Request string `json:"request"`
}

// Decode parses a Digital Credentials request buffer, picks the first
// OpenID4VP provider and unwraps its payload down to the DCQL query. The
// returned index identifies the chosen provider within the original list.
// Signatures on wrapped payloads are NOT verified here; the payload is
// treated as unauthenticated input.
func Decode(buf []byte) (int, *dcql.Query, error) {
	if !utf8.Valid(buf) {
		return 0, nil, fmt.Errorf("%w: request is not valid utf-8", ErrInputDecode)
	}

	var dcRequest DCRequest
	if err := json.Unmarshal(buf, &dcRequest); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrInputDecode, err)
	}

	providers := dcRequest.providers()
	for index, provider := range providers {
		if !IsOpenID4VP(provider.Protocol) {
			continue
		}
		request, err := decodeProviderPayload(provider.payload())
		if err != nil {
			return 0, nil, err
		}
		return index, &request.DCQLQuery, nil
	}

	return 0, nil, ErrNoProvider
}

func decodeProviderPayload(payload json.RawMessage) (*Request, error) {
	trimmed := strings.TrimSpace(string(payload))
	if trimmed == "" {
		return nil, fmt.Errorf("%w: provider carries no payload", ErrInputDecode)
	}

	switch trimmed[0] {
	case '{':
		// Object form: the request member holds a JWT compact serialization.
		var wrapped wrappedRequest
		if err := json.Unmarshal(payload, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInputDecode, err)
		}
		return unwrapCompact(wrapped.Request)
	case '"':
		var s string
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInputDecode, err)
		}
		// String form: either a JSON envelope around a JWT, or the OpenID4VP
		// request itself.
		var wrapped wrappedRequest
		if err := json.Unmarshal([]byte(s), &wrapped); err == nil && wrapped.Request != "" {
			return unwrapCompact(wrapped.Request)
		}
		return parseRequest([]byte(s))
	default:
		return nil, fmt.Errorf("%w: provider payload is neither object nor string", ErrInputDecode)
	}
}

// unwrapCompact peels the payload out of a <header>.<payload>.<signature>
// compact serialization. Only the middle segment is decoded; the signature
// is not checked at this layer.
func unwrapCompact(token string) (*Request, error) {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrWrappedPayload, len(segments))
	}

	body, err := base64.RawURLEncoding.DecodeString(segments[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrappedPayload, err)
	}
	if !utf8.Valid(body) {
		return nil, fmt.Errorf("%w: payload is not valid utf-8", ErrWrappedPayload)
	}

	request, err := parseRequest(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrappedPayload, err)
	}
	return request, nil
}

func parseRequest(body []byte) (*Request, error) {
	request := &Request{}
	if err := json.Unmarshal(body, request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDecode, err)
	}
	return request, nil
}
