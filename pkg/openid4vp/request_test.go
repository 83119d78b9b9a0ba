package openid4vp

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mockDCQL = `{"credentials":[{"id":"c","format":"dc+sd-jwt","claims":[{"path":["age_over_18"],"values":[true]}]}]}`

func mockRequestJSON() string {
	return fmt.Sprintf(`{"dcql_query":%s}`, mockDCQL)
}

// wrapCompact builds a <header>.<payload>.<signature> serialization around
// the OpenID4VP request without a meaningful header or signature.
func wrapCompact(payload string) string {
	return "aaa." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sss"
}

func TestDecodeUnwrapped(t *testing.T) {
	tts := []struct {
		name    string
		payload string
	}{
		{
			name:    "providers key with string data",
			payload: fmt.Sprintf(`{"providers":[{"protocol":"openid4vp","data":%q}]}`, mockRequestJSON()),
		},
		{
			name:    "requests key is an alias",
			payload: fmt.Sprintf(`{"requests":[{"protocol":"openid4vp","data":%q}]}`, mockRequestJSON()),
		},
		{
			name:    "request member is an alias for data",
			payload: fmt.Sprintf(`{"providers":[{"protocol":"openid4vp","request":%q}]}`, mockRequestJSON()),
		},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			index, query, err := Decode([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, 0, index)
			require.Len(t, query.Credentials, 1)
			assert.Equal(t, "c", query.Credentials[0].ID)
		})
	}
}

func TestDecodeWrapped(t *testing.T) {
	token := wrapCompact(mockRequestJSON())

	tts := []struct {
		name    string
		payload string
	}{
		{
			name:    "object data with request member",
			payload: fmt.Sprintf(`{"providers":[{"protocol":"openid4vp-v1-signed","data":{"request":%q}}]}`, token),
		},
		{
			name:    "string data holding a json envelope",
			payload: fmt.Sprintf(`{"providers":[{"protocol":"openid4vp-v1-signed","data":%q}]}`, fmt.Sprintf(`{"request":%q}`, token)),
		},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			index, query, err := Decode([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, 0, index)
			require.Len(t, query.Credentials, 1)
			assert.Equal(t, "c", query.Credentials[0].ID)
		})
	}
}

// A wrapped and an unwrapped carrier of the same request decode to the same
// query.
func TestDecodeWrappedMatchesUnwrapped(t *testing.T) {
	wrapped := fmt.Sprintf(`{"providers":[{"protocol":"openid4vp-v1-signed","data":{"request":%q}}]}`, wrapCompact(mockRequestJSON()))
	unwrapped := fmt.Sprintf(`{"providers":[{"protocol":"openid4vp","data":%q}]}`, mockRequestJSON())

	_, wrappedQuery, err := Decode([]byte(wrapped))
	require.NoError(t, err)
	_, unwrappedQuery, err := Decode([]byte(unwrapped))
	require.NoError(t, err)

	assert.Equal(t, unwrappedQuery, wrappedQuery)
}

// The decoder must accept a properly signed request object without verifying
// it; the payload is unauthenticated input at this layer.
func TestDecodeSignedJWT(t *testing.T) {
	var claims jwt.MapClaims
	require.NoError(t, json.Unmarshal([]byte(mockRequestJSON()), &claims))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	payload := fmt.Sprintf(`{"providers":[{"protocol":"openid4vp-v1-signed","data":{"request":%q}}]}`, token)

	index, query, err := Decode([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, 0, index)
	require.Len(t, query.Credentials, 1)
	assert.Equal(t, "c", query.Credentials[0].ID)
}

func TestDecodeProviderSelection(t *testing.T) {
	payload := fmt.Sprintf(`{"providers":[
		{"protocol":"other","data":"irrelevant"},
		{"protocol":"openid4vp","data":%q},
		{"protocol":"openid4vp","data":%q}
	]}`, mockRequestJSON(), mockRequestJSON())

	index, query, err := Decode([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, 1, index)
	assert.NotNil(t, query)
}

func TestDecodeFailures(t *testing.T) {
	tts := []struct {
		name    string
		payload string
		want    error
	}{
		{
			name:    "not utf-8",
			payload: "\xff\xfe{}",
			want:    ErrInputDecode,
		},
		{
			name:    "not json",
			payload: `providers`,
			want:    ErrInputDecode,
		},
		{
			name:    "no openid4vp provider",
			payload: `{"providers":[{"protocol":"other","data":"x"}]}`,
			want:    ErrNoProvider,
		},
		{
			name:    "empty provider list",
			payload: `{"providers":[]}`,
			want:    ErrNoProvider,
		},
		{
			name:    "payload is a number",
			payload: `{"providers":[{"protocol":"openid4vp","data":42}]}`,
			want:    ErrInputDecode,
		},
		{
			name:    "wrapped token with two segments",
			payload: `{"providers":[{"protocol":"openid4vp","data":{"request":"aaa.bbb"}}]}`,
			want:    ErrWrappedPayload,
		},
		{
			name:    "wrapped payload is not base64url",
			payload: `{"providers":[{"protocol":"openid4vp","data":{"request":"aaa.!!!.sss"}}]}`,
			want:    ErrWrappedPayload,
		},
		{
			name:    "wrapped payload is not json",
			payload: fmt.Sprintf(`{"providers":[{"protocol":"openid4vp","data":{"request":%q}}]}`, wrapCompact("not json")),
			want:    ErrWrappedPayload,
		},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode([]byte(tt.payload))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIsOpenID4VP(t *testing.T) {
	assert.True(t, IsOpenID4VP("openid4vp"))
	assert.True(t, IsOpenID4VP("openid4vp-v1-unsigned"))
	assert.True(t, IsOpenID4VP("openid4vp-v1-signed"))
	assert.False(t, IsOpenID4VP("preview"))
}
