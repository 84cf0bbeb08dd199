package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePipName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Flask", "flask"},
		{"My_Package", "my-package"},
		{"zope.interface", "zope-interface"},
		{"  requests  ", "requests"},
		{"already-normal", "already-normal"},
		// PEP 503: runs of separators collapse into one hyphen.
		{"foo.-bar", "foo-bar"},
		{"foo__bar", "foo-bar"},
		{"foo-_.bar", "foo-bar"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePipName(tt.in), tt.in)
	}
}

func TestNormalizeRev(t *testing.T) {
	assert.Equal(t, "0.6.3", NormalizeRev("v0.6.3"))
	assert.Equal(t, "24.8.0", NormalizeRev("24.8.0"))
	assert.Equal(t, "1.0", NormalizeRev(" v1.0 "))
}

func TestUniqueStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, UniqueStrings([]string{"a", "b", "a", "c", "b"}))
	assert.Nil(t, UniqueStrings(nil))
}

func TestHTTPStatusError(t *testing.T) {
	err := HTTPStatusError(503, "https://example.com")
	assert.EqualError(t, err, "status=503 url=https://example.com")

	err = HTTPStatusErrorWithBody(500, "https://example.com", "boom")
	assert.EqualError(t, err, "status=500 url=https://example.com response=boom")
}
