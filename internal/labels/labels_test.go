package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromIndex(t *testing.T) {
	assert.Equal(t, "A", FromIndex(0))
	assert.Equal(t, "B", FromIndex(1))
	assert.Equal(t, "Z", FromIndex(25))
	assert.Equal(t, "AA", FromIndex(26))
	assert.Equal(t, "AZ", FromIndex(51))
	assert.Equal(t, "BA", FromIndex(52))
	assert.Equal(t, "ZZ", FromIndex(701))
	assert.Equal(t, "AAA", FromIndex(702))
}

func TestNextContinuesSequence(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, Next(0, 3))
	assert.Equal(t, []string{"Y", "Z", "AA"}, Next(24, 3))
	assert.Nil(t, Next(5, 0))
}
