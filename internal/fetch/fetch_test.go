package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Options{
		BaseURL:    baseURL,
		UserAgent:  "slabcheck-test",
		RatePerSec: 1000,
	})
}

func TestFetchCert_PrimaryURL(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html>cert page</html>"))
	}))
	defer srv.Close()

	body, err := newTestClient(srv.URL).FetchCert(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Equal(t, "<html>cert page</html>", body)
	assert.Equal(t, "/cert/12345678/"+productLineSegment, gotPath)
	assert.Equal(t, "slabcheck-test", gotUA)
}

func TestFetchCert_FallbackURLOnStatusError(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if len(paths) == 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("fallback page"))
	}))
	defer srv.Close()

	body, err := newTestClient(srv.URL).FetchCert(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Equal(t, "fallback page", body)
	assert.Equal(t, []string{"/cert/12345678/" + productLineSegment, "/cert/12345678"}, paths)
}

func TestFetchCert_BothAttemptsFail(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchCert(context.Background(), "12345678")
	require.Error(t, err)
	assert.Equal(t, 2, attempts, "exactly one fallback attempt, no further retry")

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, FailureHTTPStatus, failure.Kind)
	assert.Equal(t, http.StatusServiceUnavailable, failure.Status)
}

func TestFetchCert_TransportErrorClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := newTestClient(srv.URL).FetchCert(context.Background(), "12345678")
	require.Error(t, err)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, FailureTransport, failure.Kind)
}
