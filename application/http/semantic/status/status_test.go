package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromCode(t *testing.T) {
	testcases := []struct {
		desc       string
		code       uint
		known      bool
		deprecated bool
		reserved   bool
	}{
		{desc: "ok", code: 200, known: true},
		{desc: "use proxy is deprecated", code: 305, known: true, deprecated: true},
		{desc: "306 is reserved", code: 306, known: true, reserved: true},
		{desc: "non-standard code", code: 299},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			s, ok := FromCode(tc.code)
			assert.Equal(t, tc.known, ok)
			assert.Equal(t, tc.code, s.Code)
			assert.Equal(t, tc.deprecated, s.Deprecated)
			assert.Equal(t, tc.reserved, s.Reserved)
		})
	}
}

func TestClass(t *testing.T) {
	assert.True(t, Found.IsRedirect())
	assert.False(t, NotFound.IsRedirect())
	assert.Equal(t, uint(5), GatewayTimeout.Class())
}
