package oauth

import (
	"crypto/rand"
	"io"

	"github.com/authbridge/oauthflow/pkg/networking"
)

// Option configures an operation.
type Option func(*options)

type options struct {
	client networking.HTTPClient
	rand   io.Reader
}

func newOptions() *options {
	return &options{
		client: networking.DefaultClient(),
		rand:   rand.Reader,
	}
}

func applyOptions(opts []Option) *options {
	o := newOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithHTTPClient sets the HTTP client used for the operation.
// If not set, a default client with sane timeouts is used.
func WithHTTPClient(client networking.HTTPClient) Option {
	return func(o *options) {
		if client != nil {
			o.client = client
		}
	}
}

// WithEntropySource sets the random source used for PKCE and state
// generation. If not set, crypto/rand is used. Intended for tests that need
// deterministic verifier/challenge pairs.
func WithEntropySource(r io.Reader) Option {
	return func(o *options) {
		if r != nil {
			o.rand = r
		}
	}
}
