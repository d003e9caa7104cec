package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/rtb-report/pkg/models/domain"
)

func TestResolve_CanonicalHeaders(t *testing.T) {
	headers := []string{
		"Date - EST", "RTB Channel", "RTB Advertiser", "RTB SSP",
		"System", "RTB Deal ID", "RTB Creative ID", "Revenue",
	}

	mapping, err := Resolve(headers)
	require.NoError(t, err)

	for _, f := range domain.Fields {
		assert.True(t, mapping.Resolved(f), "field %s should resolve", f)
	}
	assert.Equal(t, "Date - EST", mapping[domain.FieldDate])
	assert.Equal(t, "Revenue", mapping[domain.FieldRevenue])
}

func TestResolve_VariantSpellings(t *testing.T) {
	headers := []string{"DATE", "channel", "Adv.", "ssp", "SYSTEM", "Deal", "Creative", "rev"}

	mapping, err := Resolve(headers)
	require.NoError(t, err)

	assert.Equal(t, "DATE", mapping[domain.FieldDate])
	assert.Equal(t, "channel", mapping[domain.FieldChannel])
	assert.Equal(t, "Adv.", mapping[domain.FieldAdvertiser])
	assert.Equal(t, "Deal", mapping[domain.FieldDealID])
	assert.Equal(t, "Creative", mapping[domain.FieldCreativeID])
	assert.Equal(t, "rev", mapping[domain.FieldRevenue])
}

func TestResolve_OrderIndependent(t *testing.T) {
	a := []string{"Revenue", "Date", "Channel", "Advertiser", "SSP", "System", "Deal ID", "Creative ID"}
	b := []string{"Creative ID", "Deal ID", "System", "SSP", "Advertiser", "Channel", "Date", "Revenue"}

	ma, err := Resolve(a)
	require.NoError(t, err)
	mb, err := Resolve(b)
	require.NoError(t, err)

	assert.Equal(t, ma, mb)
}

func TestResolve_FuzzyFallback(t *testing.T) {
	// "Net Revenue" shares the "revenue" token; "Report Date" shares "date".
	headers := []string{"Report Date", "Net Revenue", "RTB Channel"}

	mapping, err := Resolve(headers)
	require.NoError(t, err)

	assert.Equal(t, "Report Date", mapping[domain.FieldDate])
	assert.Equal(t, "Net Revenue", mapping[domain.FieldRevenue])
}

func TestResolve_MissingRequired(t *testing.T) {
	headers := []string{"Advertiser", "Channel", "SSP"}

	_, err := Resolve(headers)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.ElementsMatch(t, []domain.Field{domain.FieldDate, domain.FieldRevenue}, schemaErr.Missing)
	assert.Contains(t, schemaErr.Error(), "Date - EST")
	assert.Contains(t, schemaErr.Error(), "Revenue")
}

func TestResolve_OptionalFieldsMayBeAbsent(t *testing.T) {
	mapping, err := Resolve([]string{"Date", "Revenue"})
	require.NoError(t, err)

	assert.False(t, mapping.Resolved(domain.FieldAdvertiser))
	assert.False(t, mapping.Resolved(domain.FieldSSP))
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Date - EST":       "date est",
		"  RTB   Channel ": "rtb channel",
		"REVENUE ($)":      "revenue",
		"Adv.":             "adv",
		"":                 "",
		"***":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestOverlap(t *testing.T) {
	assert.Equal(t, 1.0, Overlap("rtb advertiser", "rtb advertiser"))
	assert.Equal(t, 0.5, Overlap("date", "report date"))
	assert.Equal(t, 0.0, Overlap("revenue", "impressions"))
	assert.Equal(t, 0.0, Overlap("", "revenue"))
}
