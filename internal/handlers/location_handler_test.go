package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationTaxRateDefaulting(t *testing.T) {
	// omitted rate falls back to the configured default
	assert.Equal(t, 0.08, LocationRequest{}.taxRate(0.08))

	// an explicit rate wins
	rate := 0.095
	assert.Equal(t, 0.095, LocationRequest{TaxRate: &rate}.taxRate(0.08))

	// explicit zero means tax free, not "use the default"
	zero := 0.0
	assert.Equal(t, 0.0, LocationRequest{TaxRate: &zero}.taxRate(0.08))
}
