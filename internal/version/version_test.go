package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.2.3"
	out := String()
	assert.Contains(t, out, "turboterm version 1.2.3\n")
	assert.Contains(t, out, "commit: "+Commit)
	assert.Contains(t, out, "built:  "+Date)
}
