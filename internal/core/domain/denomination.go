package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Denomination identifies a single bill or coin denomination.
type Denomination string

const (
	Bill100 Denomination = "BILL_100"
	Bill50  Denomination = "BILL_50"
	Bill20  Denomination = "BILL_20"
	Bill10  Denomination = "BILL_10"
	Bill5   Denomination = "BILL_5"
	Coin2   Denomination = "COIN_2"
	Coin1   Denomination = "COIN_1"
	Coin25c Denomination = "COIN_0_25"
	Coin10c Denomination = "COIN_0_10"
	Coin5c  Denomination = "COIN_0_05"
)

// faceValues maps every recognized denomination to its monetary value.
var faceValues = map[Denomination]decimal.Decimal{
	Bill100: decimal.NewFromInt(100),
	Bill50:  decimal.NewFromInt(50),
	Bill20:  decimal.NewFromInt(20),
	Bill10:  decimal.NewFromInt(10),
	Bill5:   decimal.NewFromInt(5),
	Coin2:   decimal.NewFromInt(2),
	Coin1:   decimal.NewFromInt(1),
	Coin25c: decimal.NewFromFloat(0.25),
	Coin10c: decimal.NewFromFloat(0.10),
	Coin5c:  decimal.NewFromFloat(0.05),
}

// FaceValue returns the monetary value of a single unit of d, and whether d
// is a recognized denomination.
func FaceValue(d Denomination) (decimal.Decimal, bool) {
	v, ok := faceValues[d]
	return v, ok
}

// DenominationCounts maps denominations to the number of units counted.
type DenominationCounts map[Denomination]int64

// Total computes the monetary total of the counted denominations. Unknown
// denominations contribute nothing; callers validate with Validate first.
func (c DenominationCounts) Total() decimal.Decimal {
	total := decimal.Zero
	for d, n := range c {
		if v, ok := faceValues[d]; ok && n > 0 {
			total = total.Add(v.Mul(decimal.NewFromInt(n)))
		}
	}
	return total
}

// Validate checks that every denomination is recognized and no count is
// negative. An all-zero count set is legal here; callers that require a
// non-zero opening or closing total enforce that separately.
func (c DenominationCounts) Validate() error {
	for d, n := range c {
		if _, ok := faceValues[d]; !ok {
			return fmt.Errorf("unknown denomination %q", d)
		}
		if n < 0 {
			return fmt.Errorf("negative count for denomination %q", d)
		}
	}
	return nil
}
