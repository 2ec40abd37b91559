package domain

import (
	"encoding/json"
	"sort"
)

// ServiceGroup is one table row: the cheapest base and signature quote for a
// carrier and service.
type ServiceGroup struct {
	ServiceToken string        `json:"service_token"`
	Base         *RawRateQuote `json:"base,omitempty"`
	Signature    *RawRateQuote `json:"signature,omitempty"`
}

// CarrierGroup holds the services of one carrier in first-seen order.
type CarrierGroup struct {
	Carrier  string         `json:"carrier"`
	Services []ServiceGroup `json:"services"`
}

// Grouping is the result of GroupByCarrier. Carriers keep first-seen order.
type Grouping struct {
	Carriers []CarrierGroup
}

// MarshalJSON encodes the grouping as a list of carriers.
func (g Grouping) MarshalJSON() ([]byte, error) {
	if g.Carriers == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(g.Carriers)
}

// UnmarshalJSON decodes a list of carriers.
func (g *Grouping) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &g.Carriers)
}

// Lookup returns the group for a carrier and service key.
func (g Grouping) Lookup(carrier, service string) (ServiceGroup, bool) {
	for _, c := range g.Carriers {
		if c.Carrier != carrier {
			continue
		}
		for _, s := range c.Services {
			if s.ServiceToken == service {
				return s, true
			}
		}
	}
	return ServiceGroup{}, false
}

// slot selects the base or signature side of a ServiceGroup.
type slot func(*ServiceGroup) **RawRateQuote

func baseSlot(s *ServiceGroup) **RawRateQuote      { return &s.Base }
func signatureSlot(s *ServiceGroup) **RawRateQuote { return &s.Signature }

// GroupByCarrier groups quotes by carrier and service, keeping only the
// cheapest quote per key on each side. On equal amounts the first quote seen
// is kept.
func GroupByCarrier(base, signature []RawRateQuote) Grouping {
	b := newGroupBuilder()
	b.fold(base, baseSlot)
	b.fold(signature, signatureSlot)
	return b.grouping()
}

// cheaper is the min-by-amount reducer. The incumbent wins ties.
func cheaper(incumbent *RawRateQuote, candidate RawRateQuote) *RawRateQuote {
	if incumbent == nil || candidate.Amount < incumbent.Amount {
		return &candidate
	}
	return incumbent
}

type groupBuilder struct {
	carriers []CarrierGroup
	carrier  map[string]int
	service  map[[2]string]int
}

func newGroupBuilder() *groupBuilder {
	return &groupBuilder{
		carrier: make(map[string]int),
		service: make(map[[2]string]int),
	}
}

func (b *groupBuilder) fold(quotes []RawRateQuote, side slot) {
	for _, q := range quotes {
		group := b.group(q.CarrierKey(), q.ServiceKey())
		*side(group) = cheaper(*side(group), q)
	}
}

// group returns the row for a key, creating carrier and row on first sight.
func (b *groupBuilder) group(carrier, service string) *ServiceGroup {
	ci, ok := b.carrier[carrier]
	if !ok {
		ci = len(b.carriers)
		b.carrier[carrier] = ci
		b.carriers = append(b.carriers, CarrierGroup{Carrier: carrier})
	}

	key := [2]string{carrier, service}
	si, ok := b.service[key]
	if !ok {
		si = len(b.carriers[ci].Services)
		b.service[key] = si
		b.carriers[ci].Services = append(b.carriers[ci].Services, ServiceGroup{ServiceToken: service})
	}
	return &b.carriers[ci].Services[si]
}

func (b *groupBuilder) grouping() Grouping {
	return Grouping{Carriers: b.carriers}
}

// Flatten returns the retained quotes as base and signature lists in group order.
func (g Grouping) Flatten() (base, signature []RawRateQuote) {
	for _, c := range g.Carriers {
		for _, s := range c.Services {
			if s.Base != nil {
				base = append(base, *s.Base)
			}
			if s.Signature != nil {
				signature = append(signature, *s.Signature)
			}
		}
	}
	return base, signature
}

// SortedServices returns the carrier's rows by ascending base amount.
// Rows without a base quote go last. Equal amounts keep group order.
func (c CarrierGroup) SortedServices() []ServiceGroup {
	rows := make([]ServiceGroup, len(c.Services))
	copy(rows, c.Services)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Base, rows[j].Base
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Amount < b.Amount
		}
	})
	return rows
}
