package congress

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"civiscore/internal/util"
)

func TestFetchInsertsCredentialAndFormat(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"members":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", WithDelays(0, 0))
	var out MemberListResponse
	q := url.Values{}
	q.Set("limit", "20")
	require.NoError(t, c.Fetch(context.Background(), "member/congress/118", q, &out))
	require.Equal(t, "secret", got.Get("api_key"))
	require.Equal(t, "json", got.Get("format"))
	require.Equal(t, "20", got.Get("limit"))
}

func TestFetchMissingKeyIsFatal(t *testing.T) {
	c := NewClient("http://example.invalid", "", WithDelays(0, 0))
	err := c.Fetch(context.Background(), "member/congress/118", nil, nil)
	require.ErrorIs(t, err, util.ErrMissingAPIKey)
}

func TestFetchNon2xxReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", WithDelays(0, 0))
	err := c.FetchPage(context.Background(), "bill/118", nil, &BillListResponse{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	require.Contains(t, apiErr.Message, "over quota")
}

func TestFetchHonorsContextDuringPacing(t *testing.T) {
	c := NewClient("http://example.invalid", "secret")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Fetch(ctx, "member/congress/118", nil, nil)
	require.ErrorIs(t, err, context.Canceled)
}
