package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slabcheck/slabcheck/internal/model"
)

const certPageFixture = `
<html>
<head><title>Cert Verification</title></head>
<body>
	<div data-testid="cert-card-name">1999 POKEMON BASE SET #4 CHARIZARD</div>
	<div data-testid="cert-card-details">Holo, 1st Edition</div>
	<div data-testid="cert-grade">GEM MT 10</div>
	<table class="price-guide">
		<tr><th>Grade</th><th>Value</th></tr>
		<tr><td>PSA 10</td><td>$1,500.00</td></tr>
		<tr><td>PSA 9</td><td>$420.00</td></tr>
		<tr><td>PSA 8</td><td>$150.00</td></tr>
	</table>
	<div class="pop-report">
		<table>
			<tr><td>PSA 10</td><td class="population-count">121</td></tr>
			<tr><td>PSA 9</td><td class="population-count">1045</td></tr>
		</table>
	</div>
</body>
</html>`

func TestExtract_FullFixture(t *testing.T) {
	record := Extract(certPageFixture, "12345678")

	assert.Equal(t, "12345678", record.CertNumber)
	assert.Equal(t, "1999 POKEMON BASE SET #4 CHARIZARD", record.CardName)
	assert.Equal(t, "Holo, 1st Edition", record.CardDetails)
	assert.Equal(t, "GEM MT 10", record.Grade)

	require.Equal(t, 3, record.PriceTable.Len())
	rows := record.PriceTable.Entries()
	assert.Equal(t, "PSA 10", rows[0].Label)
	assert.Equal(t, "$1,500.00", rows[0].Value)
	assert.Equal(t, "PSA 8", rows[2].Label)

	require.Equal(t, 2, record.PopulationTable.Len())
	pop, ok := record.PopulationTable.Get("PSA 10")
	require.True(t, ok)
	assert.Equal(t, "121", pop)
}

func TestExtract_DegradesToSentinels(t *testing.T) {
	record := Extract(`<html><body><p>maintenance page</p></body></html>`, "98765432")

	assert.Equal(t, "98765432", record.CertNumber)
	assert.Equal(t, model.UnknownCardName, record.CardName)
	assert.Equal(t, model.UnknownGrade, record.Grade)
	assert.Zero(t, record.PriceTable.Len())
	assert.Zero(t, record.PopulationTable.Len())
}

func TestExtract_NameUppercaseHeuristic(t *testing.T) {
	record := Extract(`
<html><body>
	<div class="unrecognized">
		<span>some label</span>
		<span>1986 FLEER MICHAEL JORDAN #57</span>
	</div>
</body></html>`, "11112222")

	assert.Equal(t, "1986 FLEER MICHAEL JORDAN #57", record.CardName)
}

func TestExtract_GradeFromBrandPattern(t *testing.T) {
	record := Extract(`
<html><body>
	<p>This certificate verifies a psa 8.5 example.</p>
</body></html>`, "11112222")

	assert.Equal(t, "PSA 8.5", record.Grade)
}

func TestExtract_PriceTableUnseparatedAmounts(t *testing.T) {
	// Amounts written without thousands separators must be captured whole,
	// not cut at three digits.
	record := Extract(`
<html><body>
	<table class="price-guide">
		<tr><td>PSA 10</td><td>$1500.00</td></tr>
		<tr><td>PSA 9</td><td>$12000</td></tr>
	</table>
</body></html>`, "11112222")

	price, ok := record.PriceTable.Get("PSA 10")
	require.True(t, ok)
	assert.Equal(t, "$1500.00", price)

	price, ok = record.PriceTable.Get("PSA 9")
	require.True(t, ok)
	assert.Equal(t, "$12000", price)
}

func TestExtract_SinglePriceFallbackScopedToGrade(t *testing.T) {
	record := Extract(`
<html><body>
	<div data-testid="cert-grade">PSA 9</div>
	<div class="price-for-grade">$350.00</div>
</body></html>`, "11112222")

	require.Equal(t, 1, record.PriceTable.Len())
	price, ok := record.PriceTable.Get("PSA 9")
	require.True(t, ok)
	assert.Equal(t, "$350.00", price)
}

func TestExtract_ContextualCurrencyScan(t *testing.T) {
	record := Extract(`
<html><body>
	<div data-testid="cert-grade">PSA 9</div>
	<div><span>Shipping weight 2oz</span></div>
	<div>Estimated value <span>$275.00</span></div>
</body></html>`, "11112222")

	price, ok := record.PriceTable.Get("PSA 9")
	require.True(t, ok)
	assert.Equal(t, "$275.00", price)
}

func TestExtract_FieldChainsAreIndependent(t *testing.T) {
	// Grade and prices missing entirely; name still extracted.
	record := Extract(`
<html><body>
	<div data-testid="cert-card-name">2003 TOPPS CHROME #111 LEBRON JAMES</div>
</body></html>`, "33334444")

	assert.Equal(t, "2003 TOPPS CHROME #111 LEBRON JAMES", record.CardName)
	assert.Equal(t, model.UnknownGrade, record.Grade)
	assert.Zero(t, record.PriceTable.Len())
}
