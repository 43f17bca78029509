package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUID(t *testing.T) {
	assert.False(t, ValidUID("short"))
	assert.False(t, ValidUID("0000000O")) // 0 and O are excluded from the alphabet
	assert.True(t, ValidUID("123456789"[:8]))
}

func TestGenerateUIDAvoidsTaken(t *testing.T) {
	taken := map[string]bool{}
	for i := 0; i < 100; i++ {
		uid, err := generateUID(func(c string) bool { return taken[c] })
		assert.NoError(t, err)
		assert.True(t, ValidUID(uid))
		assert.False(t, taken[uid])
		taken[uid] = true
	}
}
