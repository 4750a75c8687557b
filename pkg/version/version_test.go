package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })
	cases := map[string]string{
		"1.2.3":         "v1.2.3",
		"v1.2.3-rc.1":   "v1.2.3-rc.1",
		"1.2":           "v1.2.0",
		"dev":           "dev",
		"":              "dev",
		" 2.0.0+build ": "v2.0.0+build",
	}
	for in, want := range cases {
		Version = in
		assert.Equal(t, want, Summary(), in)
	}
}
