package compare

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/slabcheck/slabcheck/internal/model"
)

// Category thresholds on the signed percent difference. A listing exactly
// 20% over is Moderately, not Significantly, overpriced: tier boundaries
// are inclusive on the lower tier.
var (
	thresholdSignificant = decimal.NewFromInt(20)
	thresholdModerate    = decimal.NewFromInt(5)
	percentScale         = decimal.NewFromInt(100)
)

// Compare reconciles the listing price against the reference price for the
// given grade. The grade matches the first price-table row whose label
// contains it, case-insensitive, in table order. A missing row or an
// unparseable reference price yields (nil, false): an expected outcome, not
// an error, since many listings lack matchable data.
func Compare(listingPrice decimal.Decimal, record *model.CertRecord, currentGrade string) (*model.PriceComparison, bool) {
	if record == nil || currentGrade == "" || record.PriceTable.Len() == 0 {
		return nil, false
	}

	gradeLower := strings.ToLower(currentGrade)
	var priceText string
	for _, row := range record.PriceTable.Entries() {
		if strings.Contains(strings.ToLower(row.Label), gradeLower) {
			priceText = row.Value
			break
		}
	}
	if priceText == "" {
		return nil, false
	}

	referencePrice, err := ParsePrice(priceText)
	if err != nil || referencePrice.IsZero() {
		zap.L().Debug("compare: reference price unusable",
			zap.String("price", priceText),
			zap.Error(err),
		)
		return nil, false
	}

	difference := listingPrice.Sub(referencePrice)
	percent := difference.Div(referencePrice).Mul(percentScale)

	return &model.PriceComparison{
		ListingPrice:       listingPrice,
		ReferencePrice:     referencePrice,
		AbsoluteDifference: difference,
		PercentDifference:  percent,
		Category:           Categorize(percent),
	}, true
}

// Categorize buckets a signed percent difference.
func Categorize(percent decimal.Decimal) model.PriceCategory {
	switch {
	case percent.GreaterThan(thresholdSignificant):
		return model.SignificantlyOverpriced
	case percent.GreaterThan(thresholdModerate):
		return model.ModeratelyOverpriced
	case percent.IsPositive():
		return model.SlightlyHigher
	case percent.IsZero():
		return model.FairlyPriced
	default:
		return model.Underpriced
	}
}
