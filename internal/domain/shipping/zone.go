package shipping

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyZoneName      = errors.New("zone name cannot be empty")
	ErrEmptyCountryCode   = errors.New("zone country code cannot be empty")
)

// Zone is a geographic serviceability region: a country, optionally narrowed
// to states and/or pincodes.
type Zone struct {
	id          uuid.UUID
	storeID     uuid.UUID
	name        string
	countryCode string
	stateCodes  []string
	pincodes    []string
	active      bool
}

func NewZone(id, storeID uuid.UUID, name, countryCode string, stateCodes, pincodes []string) (*Zone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyZoneName
	}
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	if countryCode == "" {
		return nil, ErrEmptyCountryCode
	}

	return &Zone{
		id:          id,
		storeID:     storeID,
		name:        name,
		countryCode: countryCode,
		stateCodes:  normalizeUpper(stateCodes),
		pincodes:    trimAll(pincodes),
		active:      true,
	}, nil
}

func ReconstructZone(id, storeID uuid.UUID, name, countryCode string, stateCodes, pincodes []string, active bool) *Zone {
	return &Zone{
		id:          id,
		storeID:     storeID,
		name:        name,
		countryCode: countryCode,
		stateCodes:  stateCodes,
		pincodes:    pincodes,
		active:      active,
	}
}

// Covers matches a destination against the zone, most specific field first:
// pincode, then state, then country.
func (z *Zone) Covers(dest Destination) bool {
	if !z.active {
		return false
	}
	if !strings.EqualFold(z.countryCode, dest.CountryCode) {
		return false
	}
	if len(z.pincodes) > 0 {
		return contains(z.pincodes, dest.Pincode)
	}
	if len(z.stateCodes) > 0 {
		return containsFold(z.stateCodes, dest.StateCode)
	}
	return true
}

func (z *Zone) ID() uuid.UUID        { return z.id }
func (z *Zone) StoreID() uuid.UUID   { return z.storeID }
func (z *Zone) Name() string         { return z.name }
func (z *Zone) CountryCode() string  { return z.countryCode }
func (z *Zone) StateCodes() []string { return z.stateCodes }
func (z *Zone) Pincodes() []string   { return z.pincodes }
func (z *Zone) IsActive() bool       { return z.active }

// Destination is the rate-resolution lookup key consumed from collaborators.
type Destination struct {
	CountryCode string
	StateCode   string
	Pincode     string
}

func normalizeUpper(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
