package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFilenameExtensionBoundaryCases(t *testing.T) {
	cases := []struct {
		in      string
		stem    string
		ext     string
		hasExt  bool
	}{
		{"", "", "", false},
		{"name", "name", "", false},
		{".name", ".name", "", false},
		{"name.", "name", "", true},
		{".name.", ".name", "", true},
		{"name.ext", "name", "ext", true},
		{".name.ext", ".name", "ext", true},
		{"name.ext.", "name.ext", "", true},
		{".name.ext.", ".name.ext", "", true},
		{"name.ext1.ext2", "name.ext1", "ext2", true},
	}

	for _, c := range cases {
		stem, ext, hasExt := SplitFilenameExtension(c.in)
		assert.Equal(t, c.stem, stem, "stem for %q", c.in)
		assert.Equal(t, c.ext, ext, "ext for %q", c.in)
		assert.Equal(t, c.hasExt, hasExt, "hasExt for %q", c.in)
	}
}
