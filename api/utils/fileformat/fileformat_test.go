package fileformat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueFormat(t *testing.T) {
	a := UniqueFormat("Duke Logo.PNG")
	b := UniqueFormat("Duke Logo.PNG")

	assert.True(t, strings.HasSuffix(a, ".png"))
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "Duke")
}
