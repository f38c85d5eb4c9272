package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDenominationCountsTotal(t *testing.T) {
	counts := DenominationCounts{
		Bill20:  3,
		Coin25c: 2,
	}
	assert.True(t, counts.Total().Equal(decimal.NewFromFloat(60.50)))
}

func TestDenominationCountsTotalEmpty(t *testing.T) {
	assert.True(t, DenominationCounts{}.Total().IsZero())
	assert.True(t, DenominationCounts(nil).Total().IsZero())
}

func TestDenominationCountsValidate(t *testing.T) {
	valid := DenominationCounts{Bill100: 1, Coin5c: 40}
	assert.NoError(t, valid.Validate())

	negative := DenominationCounts{Bill10: -1}
	assert.Error(t, negative.Validate())

	unknown := DenominationCounts{"BILL_7": 2}
	assert.Error(t, unknown.Validate())
}
