package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasRoom(t *testing.T) {
	limit := 2
	cases := []struct {
		name   string
		c      Campaign
		expect bool
	}{
		{"unbounded", Campaign{ActiveAgreements: 50}, true},
		{"below capacity", Campaign{Capacity: &limit, ActiveAgreements: 1}, true},
		{"at capacity", Campaign{Capacity: &limit, ActiveAgreements: 2}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.c.HasRoom())
		})
	}
}
