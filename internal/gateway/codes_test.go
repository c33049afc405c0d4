package gateway

import (
	"testing"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStateCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"California", "CA"},
		{"New Hampshire", "NH"},
		{"ca", "CA"},
		{"TX", "TX"},
		{"Bavaria", "Bavaria"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StateCode(tt.in), tt.in)
	}
}

func TestCountryCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"United States", "US"},
		{"United States of America", "US"},
		{"USA", "US"},
		{"Great Britain", "GB"},
		{"us", "US"},
		{"Wakanda", "Wakanda"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CountryCode(tt.in), tt.in)
	}
}

func TestAddressFor(t *testing.T) {
	addr := AddressFor(domain.PostalAddress{
		FirstName:       "Jane",
		LastName:        "Doe",
		StreetAddress:   "1 Main St",
		AddressLocality: "Springfield",
		AddressRegion:   "Illinois",
		PostalCode:      "62701",
		AddressCountry:  "United States",
	})

	assert.Equal(t, "Jane", addr.FirstName)
	assert.Equal(t, "1 Main St", addr.Address1)
	assert.Equal(t, "Springfield", addr.City)
	assert.Equal(t, "IL", addr.StateCode)
	assert.Equal(t, "US", addr.CountryCode)
}
