package semantic

import (
	"testing"

	"http-inspector/application/http"

	"github.com/stretchr/testify/assert"
)

func TestRequestHeaders(t *testing.T) {
	req := &Request{
		Method: MethodGet,
		URI:    "http://example.com/",
		Headers: []http.Field{
			http.NewField("Accept-Encoding", "gzip"),
			http.NewField("Expect", "100-Continue, foo"),
		},
	}

	v, ok := req.Header("accept-encoding")
	assert.True(t, ok)
	assert.Equal(t, "gzip", v)
	assert.Equal(t, []string{"100-continue", "foo"}, req.HeaderTokens("expect"))

	clone := req.Clone()
	clone.DelHeader("Accept-Encoding")
	clone.SetHeader("Range", "bytes=0-9")

	assert.False(t, clone.HasHeader("accept-encoding"))
	assert.True(t, clone.HasHeader("range"))
	// The original is untouched.
	assert.True(t, req.HasHeader("accept-encoding"))
	assert.False(t, req.HasHeader("range"))
}
