// Package converter maps between domain aggregates and their persisted
// representation. Snapshot blocks are stored as jsonb; a null column means
// the block was never frozen.
package converter

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"martcore/internal/domain/identity"
	"martcore/internal/domain/order"
)

type TaxBreakupLineJSON struct {
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

type TaxSnapshotJSON struct {
	TaxType       string               `json:"taxType"`
	CountryCode   string               `json:"countryCode"`
	PlaceOfSupply string               `json:"placeOfSupply"`
	TaxableAmount float64              `json:"taxableAmount"`
	TaxBreakup    []TaxBreakupLineJSON `json:"taxBreakup"`
	TotalTax      float64              `json:"totalTax"`
	CalculatedAt  time.Time            `json:"calculatedAt"`
}

type ShippingSnapshotJSON struct {
	ZoneID        uuid.UUID `json:"zoneId"`
	ZoneName      string    `json:"zoneName"`
	RateType      string    `json:"rateType"`
	SlabMin       float64   `json:"slabMin"`
	SlabMax       float64   `json:"slabMax"`
	BaseRate      float64   `json:"baseRate"`
	VariableRate  float64   `json:"variableRate"`
	CODSurcharge  float64   `json:"codSurcharge"`
	TotalShipping float64   `json:"totalShipping"`
	Serviceable   bool      `json:"serviceable"`
	CalculatedAt  time.Time `json:"calculatedAt"`
}

type CourierSnapshotJSON struct {
	CourierID   uuid.UUID  `json:"courierId"`
	CourierName string     `json:"courierName"`
	RuleID      *uuid.UUID `json:"ruleId,omitempty"`
	Reason      string     `json:"reason"`
	AssignedAt  time.Time  `json:"assignedAt"`
}

type ShipmentGroupJSON struct {
	SupplierID    uuid.UUID `json:"supplierId"`
	OriginAddress string    `json:"originAddress"`
	SKUs          []string  `json:"skus"`
	ShippingCost  float64   `json:"shippingCost"`
}

type FulfillmentSnapshotJSON struct {
	Groups   []ShipmentGroupJSON `json:"groups"`
	RoutedAt time.Time           `json:"routedAt"`
}

type ReferralSnapshotJSON struct {
	ReferrerID       uuid.UUID `json:"referrerId"`
	AttributionModel string    `json:"attributionModel"`
	CampaignCode     string    `json:"campaignCode"`
	AttributedAt     time.Time `json:"attributedAt"`
}

type LastTransitionJSON struct {
	From      string     `json:"from"`
	To        string     `json:"to"`
	At        time.Time  `json:"at"`
	ActorRole string     `json:"actorRole"`
	ActorID   *uuid.UUID `json:"actorId,omitempty"`
}

type CancellationJSON struct {
	Reason      string    `json:"reason"`
	CancelledAt time.Time `json:"cancelledAt"`
	ActorRole   string    `json:"actorRole"`
}

type ReturnInfoJSON struct {
	Reason     string    `json:"reason"`
	ReturnedAt time.Time `json:"returnedAt"`
	ActorRole  string    `json:"actorRole"`
}

func MarshalTax(f order.Frozen[order.TaxSnapshot]) ([]byte, error) {
	s, ok := f.Get()
	if !ok {
		return nil, nil
	}
	lines := make([]TaxBreakupLineJSON, 0, len(s.TaxBreakup))
	for _, l := range s.TaxBreakup {
		lines = append(lines, TaxBreakupLineJSON(l))
	}
	return json.Marshal(TaxSnapshotJSON{
		TaxType:       s.TaxType,
		CountryCode:   s.CountryCode,
		PlaceOfSupply: s.PlaceOfSupply,
		TaxableAmount: s.TaxableAmount,
		TaxBreakup:    lines,
		TotalTax:      s.TotalTax,
		CalculatedAt:  s.CalculatedAt,
	})
}

func UnmarshalTax(data []byte) (order.Frozen[order.TaxSnapshot], error) {
	if len(data) == 0 {
		return order.Frozen[order.TaxSnapshot]{}, nil
	}
	var j TaxSnapshotJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return order.Frozen[order.TaxSnapshot]{}, err
	}
	lines := make([]order.TaxBreakupLine, 0, len(j.TaxBreakup))
	for _, l := range j.TaxBreakup {
		lines = append(lines, order.TaxBreakupLine(l))
	}
	return order.Freeze(order.TaxSnapshot{
		TaxType:       j.TaxType,
		CountryCode:   j.CountryCode,
		PlaceOfSupply: j.PlaceOfSupply,
		TaxableAmount: j.TaxableAmount,
		TaxBreakup:    lines,
		TotalTax:      j.TotalTax,
		CalculatedAt:  j.CalculatedAt,
	}), nil
}

func MarshalShipping(f order.Frozen[order.ShippingSnapshot]) ([]byte, error) {
	s, ok := f.Get()
	if !ok {
		return nil, nil
	}
	return json.Marshal(ShippingSnapshotJSON(s))
}

func UnmarshalShipping(data []byte) (order.Frozen[order.ShippingSnapshot], error) {
	if len(data) == 0 {
		return order.Frozen[order.ShippingSnapshot]{}, nil
	}
	var j ShippingSnapshotJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return order.Frozen[order.ShippingSnapshot]{}, err
	}
	return order.Freeze(order.ShippingSnapshot(j)), nil
}

func MarshalCourier(f order.Frozen[order.CourierSnapshot]) ([]byte, error) {
	s, ok := f.Get()
	if !ok {
		return nil, nil
	}
	return json.Marshal(CourierSnapshotJSON(s))
}

func UnmarshalCourier(data []byte) (order.Frozen[order.CourierSnapshot], error) {
	if len(data) == 0 {
		return order.Frozen[order.CourierSnapshot]{}, nil
	}
	var j CourierSnapshotJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return order.Frozen[order.CourierSnapshot]{}, err
	}
	return order.Freeze(order.CourierSnapshot(j)), nil
}

func MarshalFulfillment(f order.Frozen[order.FulfillmentSnapshot]) ([]byte, error) {
	s, ok := f.Get()
	if !ok {
		return nil, nil
	}
	groups := make([]ShipmentGroupJSON, 0, len(s.Groups))
	for _, g := range s.Groups {
		groups = append(groups, ShipmentGroupJSON(g))
	}
	return json.Marshal(FulfillmentSnapshotJSON{Groups: groups, RoutedAt: s.RoutedAt})
}

func UnmarshalFulfillment(data []byte) (order.Frozen[order.FulfillmentSnapshot], error) {
	if len(data) == 0 {
		return order.Frozen[order.FulfillmentSnapshot]{}, nil
	}
	var j FulfillmentSnapshotJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return order.Frozen[order.FulfillmentSnapshot]{}, err
	}
	groups := make([]order.ShipmentGroup, 0, len(j.Groups))
	for _, g := range j.Groups {
		groups = append(groups, order.ShipmentGroup(g))
	}
	return order.Freeze(order.FulfillmentSnapshot{Groups: groups, RoutedAt: j.RoutedAt}), nil
}

func MarshalReferral(f order.Frozen[order.ReferralSnapshot]) ([]byte, error) {
	s, ok := f.Get()
	if !ok {
		return nil, nil
	}
	return json.Marshal(ReferralSnapshotJSON(s))
}

func UnmarshalReferral(data []byte) (order.Frozen[order.ReferralSnapshot], error) {
	if len(data) == 0 {
		return order.Frozen[order.ReferralSnapshot]{}, nil
	}
	var j ReferralSnapshotJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return order.Frozen[order.ReferralSnapshot]{}, err
	}
	return order.Freeze(order.ReferralSnapshot(j)), nil
}

func MarshalLastTransition(lt *order.LastTransition) ([]byte, error) {
	if lt == nil {
		return nil, nil
	}
	return json.Marshal(LastTransitionJSON{
		From:      lt.From.String(),
		To:        lt.To.String(),
		At:        lt.At,
		ActorRole: lt.ActorRole.String(),
		ActorID:   lt.ActorID,
	})
}

func UnmarshalLastTransition(data []byte) (*order.LastTransition, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var j LastTransitionJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	return &order.LastTransition{
		From:      order.Status(j.From),
		To:        order.Status(j.To),
		At:        j.At,
		ActorRole: identity.Role(j.ActorRole),
		ActorID:   j.ActorID,
	}, nil
}

func MarshalCancellation(c *order.Cancellation) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(CancellationJSON{
		Reason:      c.Reason,
		CancelledAt: c.CancelledAt,
		ActorRole:   c.ActorRole.String(),
	})
}

func UnmarshalCancellation(data []byte) (*order.Cancellation, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var j CancellationJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	return &order.Cancellation{
		Reason:      j.Reason,
		CancelledAt: j.CancelledAt,
		ActorRole:   identity.Role(j.ActorRole),
	}, nil
}

func MarshalReturnInfo(r *order.ReturnInfo) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(ReturnInfoJSON{
		Reason:     r.Reason,
		ReturnedAt: r.ReturnedAt,
		ActorRole:  r.ActorRole.String(),
	})
}

func UnmarshalReturnInfo(data []byte) (*order.ReturnInfo, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var j ReturnInfoJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	return &order.ReturnInfo{
		Reason:     j.Reason,
		ReturnedAt: j.ReturnedAt,
		ActorRole:  identity.Role(j.ActorRole),
	}, nil
}
