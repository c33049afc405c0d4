package gateway

import (
	"strings"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/domain"
)

// AddressFor maps the internal postal address to the platform address
// shape, normalizing region and country names to ISO codes.
func AddressFor(addr domain.PostalAddress) Address {
	return Address{
		FirstName:   addr.FirstName,
		LastName:    addr.LastName,
		Address1:    addr.StreetAddress,
		City:        addr.AddressLocality,
		PostalCode:  addr.PostalCode,
		StateCode:   StateCode(addr.AddressRegion),
		CountryCode: CountryCode(addr.AddressCountry),
	}
}

var stateCodes = map[string]string{
	"Alabama": "AL", "Alaska": "AK", "Arizona": "AZ", "Arkansas": "AR",
	"California": "CA", "Colorado": "CO", "Connecticut": "CT", "Delaware": "DE",
	"Florida": "FL", "Georgia": "GA", "Hawaii": "HI", "Idaho": "ID",
	"Illinois": "IL", "Indiana": "IN", "Iowa": "IA", "Kansas": "KS",
	"Kentucky": "KY", "Louisiana": "LA", "Maine": "ME", "Maryland": "MD",
	"Massachusetts": "MA", "Michigan": "MI", "Minnesota": "MN", "Mississippi": "MS",
	"Missouri": "MO", "Montana": "MT", "Nebraska": "NE", "Nevada": "NV",
	"New Hampshire": "NH", "New Jersey": "NJ", "New Mexico": "NM", "New York": "NY",
	"North Carolina": "NC", "North Dakota": "ND", "Ohio": "OH", "Oklahoma": "OK",
	"Oregon": "OR", "Pennsylvania": "PA", "Rhode Island": "RI", "South Carolina": "SC",
	"South Dakota": "SD", "Tennessee": "TN", "Texas": "TX", "Utah": "UT",
	"Vermont": "VT", "Virginia": "VA", "Washington": "WA", "West Virginia": "WV",
	"Wisconsin": "WI", "Wyoming": "WY",
}

var countryCodes = map[string]string{
	"United States":            "US",
	"United States of America": "US",
	"USA":                      "US",
	"United Kingdom":           "GB",
	"Great Britain":            "GB",
	"UK":                       "GB",
	"Canada":                   "CA",
	"France":                   "FR",
	"Germany":                  "DE",
	"Italy":                    "IT",
	"Japan":                    "JP",
	"India":                    "IN",
	"Australia":                "AU",
}

// StateCode maps a US state name to its 2-letter code. Values already in
// code form, or unknown names, pass through.
func StateCode(state string) string {
	if len(state) == 2 {
		return strings.ToUpper(state)
	}
	if code, ok := stateCodes[state]; ok {
		return code
	}
	return state
}

// CountryCode maps a country name to its 2-letter code, passing through
// 2-letter inputs and unknown names.
func CountryCode(country string) string {
	if len(country) == 2 {
		return strings.ToUpper(country)
	}
	if code, ok := countryCodes[country]; ok {
		return code
	}
	return country
}
