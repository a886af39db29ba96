package shipping

import "martcore/internal/pkg/money"

// Quote is the outcome of rate resolution. Unserviceable destinations are an
// explicit result, not an error; whether checkout may proceed anyway is the
// caller's business policy.
type Quote struct {
	Serviceable  bool
	Zone         *Zone
	Rate         *Rate
	BaseRate     float64
	VariableRate float64
	CODSurcharge float64
	Total        float64
}

func Unserviceable() Quote {
	return Quote{Serviceable: false}
}

// Resolve picks the zone covering the destination and the single active slab
// matching the measurement. The non-overlap invariant on the rate table
// guarantees at most one slab can match.
func Resolve(zones []*Zone, ratesByZone map[string][]*Rate, dest Destination, rateType RateType, measurement float64, cod bool) Quote {
	for _, zone := range zones {
		if !zone.Covers(dest) {
			continue
		}
		for _, rate := range ratesByZone[zone.ID().String()] {
			if !rate.IsActive() || rate.Type() != rateType || !rate.Matches(measurement) {
				continue
			}
			return buildQuote(zone, rate, measurement, cod)
		}
	}
	return Unserviceable()
}

func buildQuote(zone *Zone, rate *Rate, measurement float64, cod bool) Quote {
	variable := money.Round2(measurement * rate.PerUnitRate())
	surcharge := 0.0
	if cod {
		surcharge = rate.CODSurcharge()
	}
	return Quote{
		Serviceable:  true,
		Zone:         zone,
		Rate:         rate,
		BaseRate:     rate.BaseRate(),
		VariableRate: variable,
		CODSurcharge: surcharge,
		Total:        rate.Cost(measurement, cod),
	}
}
