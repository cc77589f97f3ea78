package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccess(t *testing.T) {
	res := Success()

	assert.True(t, res.Succeeded)
	assert.Empty(t, res.Errors)
}

func TestFailed_CarriesCodeAndDescription(t *testing.T) {
	res := Failed(Error{Code: "120", Description: "cannot create user"})

	assert.False(t, res.Succeeded)
	assert.Len(t, res.Errors, 1)
	assert.Equal(t, "120", res.Errors[0].Code)
	assert.Equal(t, "cannot create user", res.Errors[0].Description)
}

func TestZeroValue_IsFailed(t *testing.T) {
	var res Result

	assert.False(t, res.Succeeded)
	assert.Empty(t, res.Errors)
}
