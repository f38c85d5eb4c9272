package services

import (
	"github.com/oakpos/cashdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Reconciliation is the outcome of comparing counted drawer contents against
// the expected figures at close. Physical and electronic tender reconcile
// separately because their expected sources differ (counted cash vs.
// processor totals); the engine always computes all figures and leaves the
// blind-count concealment to response shaping.
type Reconciliation struct {
	PhysicalExpected decimal.Decimal
	PhysicalActual   decimal.Decimal

	// PhysicalDiscrepancy is actual minus expected over all physical tender.
	PhysicalDiscrepancy decimal.Decimal

	// ElectronicDiscrepancySum is the sum of absolute per-method differences.
	// An overage on one electronic method and a shortage on another do not
	// cancel out.
	ElectronicDiscrepancySum decimal.Decimal

	// TotalCumulative gates manager approval:
	// |physical| + electronic sum.
	TotalCumulative decimal.Decimal
}

// tenderCount is a counted per-method figure submitted at close.
type tenderCount struct {
	PaymentMethodID string
	CountedQty      int64
	CountedAmount   decimal.Decimal
}

// reconcile compares counted figures against expectations.
// cashActual is the counted cash total; cashExpected is the session's
// recomputed expected cash balance. Non-cash methods are matched per method:
// counted tenders with no posting reconcile against zero, and expected
// methods with no count reconcile as entirely missing.
func reconcile(
	cashExpected decimal.Decimal,
	cashActual decimal.Decimal,
	counts []tenderCount,
	expectations []domain.TenderExpectation,
) Reconciliation {
	r := Reconciliation{
		PhysicalExpected: cashExpected,
		PhysicalActual:   cashActual,
	}

	expByMethod := make(map[string]domain.TenderExpectation, len(expectations))
	for _, e := range expectations {
		expByMethod[e.Method.PaymentMethodID] = e
	}

	counted := make(map[string]struct{}, len(counts))
	for _, tc := range counts {
		counted[tc.PaymentMethodID] = struct{}{}

		exp, ok := expByMethod[tc.PaymentMethodID]
		if !ok || exp.Method.IsCash {
			// Cash is reconciled through the expected-balance figure, not
			// per-method; a counted method the ledger never saw reconciles
			// against zero.
			if !ok {
				r.ElectronicDiscrepancySum = r.ElectronicDiscrepancySum.Add(tc.CountedAmount.Abs())
			}
			continue
		}

		diff := tc.CountedAmount.Sub(exp.ExpectedAmount)
		switch exp.Method.Kind {
		case domain.TenderPhysical:
			// Non-cash physical instruments (checks) fold into the physical
			// reconciliation.
			r.PhysicalExpected = r.PhysicalExpected.Add(exp.ExpectedAmount)
			r.PhysicalActual = r.PhysicalActual.Add(tc.CountedAmount)
		case domain.TenderElectronic:
			r.ElectronicDiscrepancySum = r.ElectronicDiscrepancySum.Add(diff.Abs())
		}
	}

	// Expected methods the closer never counted.
	for id, exp := range expByMethod {
		if _, ok := counted[id]; ok || exp.Method.IsCash {
			continue
		}
		switch exp.Method.Kind {
		case domain.TenderPhysical:
			r.PhysicalExpected = r.PhysicalExpected.Add(exp.ExpectedAmount)
		case domain.TenderElectronic:
			r.ElectronicDiscrepancySum = r.ElectronicDiscrepancySum.Add(exp.ExpectedAmount.Abs())
		}
	}

	r.PhysicalDiscrepancy = r.PhysicalActual.Sub(r.PhysicalExpected)
	r.TotalCumulative = r.PhysicalDiscrepancy.Abs().Add(r.ElectronicDiscrepancySum)
	return r
}

// resolveThreshold picks the employee's discrepancy threshold, falling back
// to the system default.
func resolveThreshold(emp *domain.Employee, systemDefault decimal.Decimal) decimal.Decimal {
	if emp != nil && emp.DiscrepancyThreshold != nil {
		return *emp.DiscrepancyThreshold
	}
	return systemDefault
}

// closeStatusFor classifies an in-threshold close.
func closeStatusFor(r Reconciliation) domain.CloseStatus {
	if r.PhysicalDiscrepancy.IsZero() && r.ElectronicDiscrepancySum.IsZero() {
		return domain.CloseBalanced
	}
	return domain.CloseWithinLimit
}
