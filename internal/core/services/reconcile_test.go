package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/oakpos/cashdesk/internal/core/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func electronicMethod(id string) domain.PaymentMethod {
	return domain.PaymentMethod{PaymentMethodID: id, Name: id, Kind: domain.TenderElectronic}
}

func TestReconcileCashOnly(t *testing.T) {
	r := reconcile(dec("245.00"), dec("243.00"), nil, nil)

	assert.True(t, r.PhysicalDiscrepancy.Equal(dec("-2.00")))
	assert.True(t, r.ElectronicDiscrepancySum.IsZero())
	assert.True(t, r.TotalCumulative.Equal(dec("2.00")))
}

func TestReconcileElectronicDifferencesDoNotCancel(t *testing.T) {
	counts := []tenderCount{
		{PaymentMethodID: "card", CountedAmount: dec("105.00")},
		{PaymentMethodID: "etransfer", CountedAmount: dec("45.00")},
	}
	expectations := []domain.TenderExpectation{
		{Method: electronicMethod("card"), ExpectedAmount: dec("100.00")},
		{Method: electronicMethod("etransfer"), ExpectedAmount: dec("50.00")},
	}

	r := reconcile(dec("200.00"), dec("200.00"), counts, expectations)

	// +5 on card and -5 on e-transfer sum to 10, not zero.
	assert.True(t, r.ElectronicDiscrepancySum.Equal(dec("10.00")))
	assert.True(t, r.PhysicalDiscrepancy.IsZero())
	assert.True(t, r.TotalCumulative.Equal(dec("10.00")))
}

func TestReconcileChecksFoldIntoPhysical(t *testing.T) {
	checkMethod := domain.PaymentMethod{PaymentMethodID: "check", Name: "check", Kind: domain.TenderPhysical}
	counts := []tenderCount{
		{PaymentMethodID: "check", CountedQty: 2, CountedAmount: dec("80.00")},
	}
	expectations := []domain.TenderExpectation{
		{Method: checkMethod, ExpectedQty: 2, ExpectedAmount: dec("75.00")},
	}

	r := reconcile(dec("200.00"), dec("200.00"), counts, expectations)

	assert.True(t, r.PhysicalExpected.Equal(dec("275.00")))
	assert.True(t, r.PhysicalActual.Equal(dec("280.00")))
	assert.True(t, r.PhysicalDiscrepancy.Equal(dec("5.00")))
}

func TestReconcileUncountedExpectedMethodIsMissing(t *testing.T) {
	expectations := []domain.TenderExpectation{
		{Method: electronicMethod("card"), ExpectedAmount: dec("120.00")},
	}

	r := reconcile(dec("200.00"), dec("200.00"), nil, expectations)

	assert.True(t, r.ElectronicDiscrepancySum.Equal(dec("120.00")))
}

func TestReconcileUnexpectedCountedMethod(t *testing.T) {
	counts := []tenderCount{
		{PaymentMethodID: "giftcard", CountedAmount: dec("15.00")},
	}

	r := reconcile(dec("200.00"), dec("200.00"), counts, nil)

	assert.True(t, r.ElectronicDiscrepancySum.Equal(dec("15.00")))
}

func TestReconcileCashMethodSkipsPerMethodMatching(t *testing.T) {
	cashMethod := domain.PaymentMethod{PaymentMethodID: "cash", Name: "cash", Kind: domain.TenderPhysical, IsCash: true}
	counts := []tenderCount{
		{PaymentMethodID: "cash", CountedAmount: dec("245.00")},
	}
	expectations := []domain.TenderExpectation{
		{Method: cashMethod, ExpectedAmount: dec("45.00")},
	}

	r := reconcile(dec("245.00"), dec("245.00"), counts, expectations)

	assert.True(t, r.PhysicalExpected.Equal(dec("245.00")))
	assert.True(t, r.TotalCumulative.IsZero())
}

func TestCloseStatusFor(t *testing.T) {
	balanced := Reconciliation{}
	assert.Equal(t, domain.CloseBalanced, closeStatusFor(balanced))

	short := Reconciliation{PhysicalDiscrepancy: dec("-2.00")}
	assert.Equal(t, domain.CloseWithinLimit, closeStatusFor(short))

	electronic := Reconciliation{ElectronicDiscrepancySum: dec("3.00")}
	assert.Equal(t, domain.CloseWithinLimit, closeStatusFor(electronic))
}

func TestResolveThreshold(t *testing.T) {
	systemDefault := dec("5.00")

	assert.True(t, resolveThreshold(nil, systemDefault).Equal(systemDefault))
	assert.True(t, resolveThreshold(&domain.Employee{}, systemDefault).Equal(systemDefault))

	override := dec("12.00")
	emp := &domain.Employee{DiscrepancyThreshold: &override}
	assert.True(t, resolveThreshold(emp, systemDefault).Equal(override))
}
