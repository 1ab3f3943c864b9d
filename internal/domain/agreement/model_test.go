package agreement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvolves(t *testing.T) {
	a := Agreement{ProviderID: 11, RequesterID: 1}

	assert.True(t, a.Involves(11, 1))
	assert.True(t, a.Involves(1, 11))
	assert.False(t, a.Involves(1, 12))
	assert.False(t, a.Involves(11, 11))
}
