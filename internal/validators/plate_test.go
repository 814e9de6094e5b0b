package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlateSIV(t *testing.T) {
	assert.True(t, IsPlateValid("AB-123-CD"))
	assert.True(t, IsPlateValid("ab-123-cd"))
	assert.True(t, IsPlateValid("  AB-123-CD  "))
}

func TestPlateFNI(t *testing.T) {
	assert.True(t, IsPlateValid("123 ABC 75"))
	assert.True(t, IsPlateValid("1234 AB 75"))
	assert.True(t, IsPlateValid("123ABC75"))
}

func TestPlateInvalid(t *testing.T) {
	assert.False(t, IsPlateValid(""))
	assert.False(t, IsPlateValid("ABC-123"))
	assert.False(t, IsPlateValid("AB-12-CD"))
	assert.False(t, IsPlateValid("AB-1234-CD"))
}

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "AB-123-CD", NormalizePlate("  ab-123-cd "))
}
