package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quote(carrier, token string, amount float64, id string) RawRateQuote {
	return RawRateQuote{
		Source:       "shippo",
		Provider:     carrier,
		ServiceName:  token + " name",
		ServiceToken: token,
		Amount:       amount,
		Currency:     "USD",
		QuoteID:      id,
	}
}

func TestGroupByCarrier_CheapestWins(t *testing.T) {
	g := GroupByCarrier([]RawRateQuote{
		quote("USPS", "usps_priority", 12.00, "r1"),
		quote("USPS", "usps_priority", 9.50, "r2"),
		quote("USPS", "usps_priority", 11.00, "r3"),
	}, nil)

	require.Len(t, g.Carriers, 1)
	require.Len(t, g.Carriers[0].Services, 1)

	row := g.Carriers[0].Services[0]
	require.NotNil(t, row.Base)
	assert.Equal(t, 9.50, row.Base.Amount)
	assert.Equal(t, "r2", row.Base.QuoteID)
	assert.Nil(t, row.Signature)
}

func TestGroupByCarrier_TieKeepsFirstSeen(t *testing.T) {
	g := GroupByCarrier([]RawRateQuote{
		quote("UPS", "ups_ground", 10.00, "first"),
		quote("UPS", "ups_ground", 10.00, "second"),
	}, nil)

	row, ok := g.Lookup("UPS", "ups_ground")
	require.True(t, ok)
	assert.Equal(t, "first", row.Base.QuoteID)
}

func TestGroupByCarrier_KeyFallbacks(t *testing.T) {
	noProvider := RawRateQuote{Carrier: "FedEx", ServiceName: "Ground", Amount: 9}
	nothing := RawRateQuote{ServiceName: "Mystery", Amount: 4}

	g := GroupByCarrier([]RawRateQuote{noProvider, nothing}, nil)

	_, ok := g.Lookup("FedEx", "Ground")
	assert.True(t, ok)
	_, ok = g.Lookup("Unknown", "Mystery")
	assert.True(t, ok)
}

func TestGroupByCarrier_SignatureSlot(t *testing.T) {
	g := GroupByCarrier(
		[]RawRateQuote{quote("USPS", "usps_priority", 8.00, "b1")},
		[]RawRateQuote{
			quote("USPS", "usps_priority", 12.00, "s1"),
			quote("USPS", "usps_priority", 11.25, "s2"),
			quote("DHL", "dhl_express", 40.00, "s3"),
		},
	)

	row, ok := g.Lookup("USPS", "usps_priority")
	require.True(t, ok)
	assert.Equal(t, "b1", row.Base.QuoteID)
	assert.Equal(t, "s2", row.Signature.QuoteID)

	dhl, ok := g.Lookup("DHL", "dhl_express")
	require.True(t, ok)
	assert.Nil(t, dhl.Base)
	assert.Equal(t, "s3", dhl.Signature.QuoteID)
}

func TestGroupByCarrier_InsertionOrder(t *testing.T) {
	g := GroupByCarrier([]RawRateQuote{
		quote("UPS", "ups_ground", 10, "1"),
		quote("USPS", "usps_priority", 8, "2"),
		quote("UPS", "ups_next_day", 30, "3"),
		quote("FedEx", "fedex_ground", 11, "4"),
	}, nil)

	var carriers []string
	for _, c := range g.Carriers {
		carriers = append(carriers, c.Carrier)
	}
	assert.Equal(t, []string{"UPS", "USPS", "FedEx"}, carriers)
	assert.Equal(t, "ups_ground", g.Carriers[0].Services[0].ServiceToken)
	assert.Equal(t, "ups_next_day", g.Carriers[0].Services[1].ServiceToken)
}

func TestGroupByCarrier_Idempotent(t *testing.T) {
	base := []RawRateQuote{
		quote("UPS", "ups_ground", 10, "1"),
		quote("USPS", "usps_priority", 9.50, "2"),
		quote("USPS", "usps_priority", 12.00, "3"),
		quote("UPS", "ups_ground", 9.99, "4"),
		{Carrier: "FedEx", ServiceName: "Home", Amount: 13},
	}
	signature := []RawRateQuote{
		quote("USPS", "usps_priority", 9.50, "5"),
		quote("DHL", "dhl_express", 40, "6"),
		quote("UPS", "ups_saver", 22, "7"),
		quote("UPS", "ups_ground", 16.60, "8"),
	}

	first := GroupByCarrier(base, signature)
	second := GroupByCarrier(first.Flatten())

	assert.Equal(t, first, second)
}

func TestGroupByCarrier_AbsentProvider(t *testing.T) {
	sets := map[string]RateQuoteSet{
		"shippo":   {Base: []RawRateQuote{quote("USPS", "usps_priority", 8, "1")}},
		"easyship": {},
	}
	tables := TablesByProvider(sets)

	require.Len(t, tables, 2)
	assert.NotContains(t, tables, "easypost")
	require.Len(t, tables["shippo"], 1)
	assert.Equal(t, "USPS", tables["shippo"][0].Carrier)
	assert.Empty(t, tables["easyship"])

	assert.Empty(t, GroupByCarrier(nil, nil).Carriers)
	assert.Empty(t, BuildTable(GroupByCarrier(nil, nil)))
}

func TestCarrierGroup_SortedServices(t *testing.T) {
	c := CarrierGroup{
		Carrier: "UPS",
		Services: []ServiceGroup{
			{ServiceToken: "sig_only", Signature: &RawRateQuote{Amount: 1}},
			{ServiceToken: "next_day", Base: &RawRateQuote{Amount: 30}},
			{ServiceToken: "ground", Base: &RawRateQuote{Amount: 10}},
			{ServiceToken: "saver", Base: &RawRateQuote{Amount: 10}},
		},
	}

	var order []string
	for _, s := range c.SortedServices() {
		order = append(order, s.ServiceToken)
	}
	assert.Equal(t, []string{"ground", "saver", "next_day", "sig_only"}, order)

	// The group itself is not reordered.
	assert.Equal(t, "sig_only", c.Services[0].ServiceToken)
}

func TestGrouping_JSON(t *testing.T) {
	g := GroupByCarrier([]RawRateQuote{quote("USPS", "usps_priority", 8, "1")}, nil)

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"carrier":"USPS","services":[{"service_token":"usps_priority","base":{"source":"shippo","provider":"USPS","service_name":"usps_priority name","service_token":"usps_priority","amount":8,"currency":"USD","quote_id":"1"}}]}]`, string(data))

	var decoded Grouping
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, g, decoded)

	empty, err := json.Marshal(Grouping{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}
