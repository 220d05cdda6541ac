package networking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFetchJSON(t *testing.T) {
	t.Parallel()

	t.Run("parses a JSON response", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"widget","count":3}`))
		}))
		defer server.Close()

		res, err := FetchJSON[testPayload](context.Background(), server.Client(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, testPayload{Name: "widget", Count: 3}, res.Data)
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("non-success status yields an HTTPError", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream broke"))
		}))
		defer server.Close()

		res, err := FetchJSON[testPayload](context.Background(), server.Client(), server.URL)
		assert.Nil(t, res)

		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
		assert.Equal(t, "upstream broke", httpErr.Body)
		assert.Contains(t, err.Error(), "502")
		assert.True(t, IsHTTPError(err, http.StatusBadGateway))
		assert.True(t, IsHTTPError(err, 0))
		assert.False(t, IsHTTPError(err, http.StatusNotFound))
	})

	t.Run("accepted status extends success handling", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"name":"created"}`))
		}))
		defer server.Close()

		res, err := FetchJSON[testPayload](
			context.Background(), server.Client(), server.URL,
			WithAcceptedStatus(http.StatusCreated),
		)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, res.StatusCode)
		assert.Equal(t, "created", res.Data.Name)
	})

	t.Run("custom error handler overrides the default", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_request"}`))
		}))
		defer server.Close()

		_, err := FetchJSON[testPayload](
			context.Background(), server.Client(), server.URL,
			WithErrorHandler(func(resp *http.Response, body []byte) error {
				return fmt.Errorf("operation failed with status %d: %s", resp.StatusCode, body)
			}),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "operation failed with status 400")
		assert.Contains(t, err.Error(), "invalid_request")
	})

	t.Run("error handler returning nil falls back to HTTPError", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		_, err := FetchJSON[testPayload](
			context.Background(), server.Client(), server.URL,
			WithErrorHandler(func(*http.Response, []byte) error { return nil }),
		)
		assert.True(t, IsHTTPError(err, http.StatusBadRequest))
	})

	t.Run("validates content type on success", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`{"name":"widget"}`))
		}))
		defer server.Close()

		_, err := FetchJSON[testPayload](context.Background(), server.Client(), server.URL)
		assert.ErrorContains(t, err, "unexpected content type")

		_, err = FetchJSON[testPayload](
			context.Background(), server.Client(), server.URL,
			WithoutContentTypeValidation(),
		)
		assert.NoError(t, err)
	})

	t.Run("caps the response body size", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"` + strings.Repeat("x", 200) + `"}`))
		}))
		defer server.Close()

		// A truncated body is no longer valid JSON.
		_, err := FetchJSON[testPayload](
			context.Background(), server.Client(), server.URL,
			WithMaxResponseSize(64),
		)
		assert.ErrorContains(t, err, "failed to parse JSON response")
	})

	t.Run("transport failure is wrapped", func(t *testing.T) {
		t.Parallel()
		client := &http.Client{Transport: failingTransport{}}
		_, err := FetchJSON[testPayload](context.Background(), client, "https://unreachable.example.com")
		assert.ErrorContains(t, err, "request failed")
	})
}

func TestFetchJSONWithForm(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), ContentTypeFormURLEncoded)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		values, err := url.ParseQuery(string(body))
		require.NoError(t, err)
		assert.Equal(t, "authorization_code", values.Get("grant_type"))
		assert.Equal(t, "abc", values.Get("code"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}))
	defer server.Close()

	form := url.Values{
		"grant_type": {"authorization_code"},
		"code":       {"abc"},
	}
	res, err := FetchJSONWithForm[testPayload](context.Background(), server.Client(), server.URL, form)
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Data.Name)
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("dial refused")
}
