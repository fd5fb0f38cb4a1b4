package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWeakSecret(t *testing.T) {
	assert.True(t, isWeakSecret("short"))
	assert.True(t, isWeakSecret("admin-change-me-in-production-please-now"))
	assert.False(t, isWeakSecret("q8Zr1v6YkT3pW0sLx9NcB2mH7aJd4EfG"))
}
