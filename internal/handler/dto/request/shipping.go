package request

import (
	"github.com/google/uuid"

	"martcore/internal/domain/shipping"
	"martcore/internal/usecase/commands"
	"martcore/internal/usecase/queries"
)

type CreateZoneRequest struct {
	Name        string   `json:"name" binding:"required"`
	CountryCode string   `json:"countryCode" binding:"required"`
	StateCodes  []string `json:"stateCodes,omitempty"`
	Pincodes    []string `json:"pincodes,omitempty"`
}

func (r CreateZoneRequest) ToParams(storeID uuid.UUID) commands.CreateZoneParams {
	return commands.CreateZoneParams{
		StoreID:     storeID,
		Name:        r.Name,
		CountryCode: r.CountryCode,
		StateCodes:  r.StateCodes,
		Pincodes:    r.Pincodes,
	}
}

type CreateRateRequest struct {
	RateType     string  `json:"rateType" binding:"required,oneof=weight order_value"`
	MinValue     float64 `json:"minValue" binding:"gte=0"`
	MaxValue     float64 `json:"maxValue" binding:"required,gt=0"`
	BaseRate     float64 `json:"baseRate" binding:"gte=0"`
	PerUnitRate  float64 `json:"perUnitRate" binding:"gte=0"`
	CODSurcharge float64 `json:"codSurcharge" binding:"gte=0"`
}

func (r CreateRateRequest) ToParams(zoneID uuid.UUID) commands.CreateRateParams {
	return commands.CreateRateParams{
		ZoneID:       zoneID,
		RateType:     shipping.RateType(r.RateType),
		MinValue:     r.MinValue,
		MaxValue:     r.MaxValue,
		BaseRate:     r.BaseRate,
		PerUnitRate:  r.PerUnitRate,
		CODSurcharge: r.CODSurcharge,
	}
}

type RateQuoteRequest struct {
	StoreID     uuid.UUID          `json:"storeId" binding:"required"`
	Destination DestinationRequest `json:"destination" binding:"required"`
	RateType    string             `json:"rateType" binding:"required,oneof=weight order_value"`
	Measurement float64            `json:"measurement" binding:"gte=0"`
	COD         bool               `json:"cod"`
}

func (r RateQuoteRequest) ToParams() queries.RateQuoteParams {
	return queries.RateQuoteParams{
		StoreID: r.StoreID,
		Destination: shipping.Destination{
			CountryCode: r.Destination.CountryCode,
			StateCode:   r.Destination.StateCode,
			Pincode:     r.Destination.Pincode,
		},
		RateType:    shipping.RateType(r.RateType),
		Measurement: r.Measurement,
		COD:         r.COD,
	}
}
