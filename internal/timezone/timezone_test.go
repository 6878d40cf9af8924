package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocation(t *testing.T) {
	assert.Equal(t, "UTC", Location("UTC").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, DefaultTimezone, Location("").String())
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(DefaultTimezone))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus"))
}
