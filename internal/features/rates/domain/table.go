package domain

// RateRow is one display row of the rate table.
type RateRow struct {
	Carrier        string          `json:"carrier"`
	ServiceToken   string          `json:"service_token"`
	ServiceName    string          `json:"service_name"`
	Base           *RawRateQuote   `json:"base,omitempty"`
	Signature      *RawRateQuote   `json:"signature,omitempty"`
	SignaturePrice *SignaturePrice `json:"signature_price,omitempty"`

	// AdultSignatureFee is the carrier's adult-signature surcharge, offered
	// as an upgrade on top of the base price.
	AdultSignatureFee float64 `json:"adult_signature_fee"`
}

// CarrierTable is the display block of one carrier.
type CarrierTable struct {
	Carrier string    `json:"carrier"`
	Rows    []RateRow `json:"rows"`
}

// BuildTable renders a grouping into display rows, sorted by base price
// within each carrier and with signature prices resolved.
func BuildTable(g Grouping) []CarrierTable {
	tables := make([]CarrierTable, 0, len(g.Carriers))
	for _, c := range g.Carriers {
		table := CarrierTable{Carrier: c.Carrier}
		for _, s := range c.SortedServices() {
			row := RateRow{
				Carrier:      c.Carrier,
				ServiceToken: s.ServiceToken,
				ServiceName:  serviceName(s),
				Base:         s.Base,
				Signature:    s.Signature,

				AdultSignatureFee: SurchargeFor(c.Carrier).Adult,
			}
			if price, ok := PriceSignature(c.Carrier, s.Base, s.Signature); ok {
				row.SignaturePrice = &price
			}
			table.Rows = append(table.Rows, row)
		}
		tables = append(tables, table)
	}
	return tables
}

func serviceName(s ServiceGroup) string {
	switch {
	case s.Base != nil && s.Base.ServiceName != "":
		return s.Base.ServiceName
	case s.Signature != nil && s.Signature.ServiceName != "":
		return s.Signature.ServiceName
	default:
		return s.ServiceToken
	}
}

// TablesByProvider reconciles the quotes of each provider on their own, so a
// row never pairs one provider's base quote with another's signature quote.
// The result is keyed like the sets.
func TablesByProvider(sets map[string]RateQuoteSet) map[string][]CarrierTable {
	tables := make(map[string][]CarrierTable, len(sets))
	for name, set := range sets {
		tables[name] = BuildTable(GroupByCarrier(set.Base, set.Signature))
	}
	return tables
}
