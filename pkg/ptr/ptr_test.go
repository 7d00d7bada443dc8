package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtrAndValue(t *testing.T) {
	p := Ptr("notes")
	assert.Equal(t, "notes", *p)
	assert.Equal(t, "notes", Value(p))

	var missing *int
	assert.Equal(t, 0, Value(missing))
}
