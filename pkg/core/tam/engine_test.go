package tam

import (
	"testing"

	"bank_dashboard/pkg/core/account"
	"bank_dashboard/pkg/core/assumption"
)

func testSet() *assumption.Set {
	return &assumption.Set{
		Version: "test",
		Products: assumption.ProductAssumptions{
			DevSeatPriceMonth:     assumption.Global(150),
			DevEligibilityRate:    assumption.Global(0.15),
			EntSeatPriceMonth:     assumption.Global(35),
			EntAdoptionRate:       assumption.Global(1.0),
			AgentsPerEmployee:     assumption.Global(5),
			AgentPriceMonth:       assumption.Global(1000),
			RevenueShareFraction:  assumption.Global(0.30),
			PlatformShareFraction: assumption.Global(0.20),
		},
	}
}

func TestComputeComponents(t *testing.T) {
	// FTE=1000, dev $150/mo at 15% eligibility, ent $35/mo at 100% adoption,
	// 5 agents/employee at $1000/mo, $200M revenue at 30% share, 20% platform:
	//   developer seat:     150 * (1000*0.15) * 12 = 270,000
	//   enterprise seat:    35 * (1000*1.0) * 12   = 420,000
	//   per-employee agent: 5 * 1000 * 1000 * 12   = 60,000,000
	//   revenue share:      200e6 * 0.30 * 0.20    = 12,000,000
	//   total                                      = 72,690,000
	rev := 200e6
	acct := &account.Account{ID: "bank-1", FTECount: 1000, AnnualRevenueFY: &rev}

	e := NewEngine(testSet())
	b := e.Compute(acct, account.TierEnterprise)

	if b.DeveloperSeat != 270000 {
		t.Errorf("developer seat: expected 270000, got %f", b.DeveloperSeat)
	}
	if b.EnterpriseSeat != 420000 {
		t.Errorf("enterprise seat: expected 420000, got %f", b.EnterpriseSeat)
	}
	if b.PerEmployeeAgent != 60000000 {
		t.Errorf("per-employee agent: expected 60000000, got %f", b.PerEmployeeAgent)
	}
	if b.RevenueShare != 12000000 {
		t.Errorf("revenue share: expected 12000000, got %f", b.RevenueShare)
	}
	if b.Total != 72690000 {
		t.Errorf("total: expected 72690000, got %f", b.Total)
	}
	if b.RevenueBasis != BasisFiscalYear {
		t.Errorf("expected FISCAL_YEAR basis, got %s", b.RevenueBasis)
	}
	if len(b.DataGaps) != 0 {
		t.Errorf("unexpected data gaps: %v", b.DataGaps)
	}
}

func TestComponentsSumExactly(t *testing.T) {
	rev := 123456789.12
	acct := &account.Account{ID: "bank-2", FTECount: 3171, AnnualRevenueFY: &rev}
	b := NewEngine(testSet()).Compute(acct, account.TierCommercial)

	sum := b.DeveloperSeat + b.EnterpriseSeat + b.PerEmployeeAgent + b.RevenueShare
	if sum != b.Total {
		t.Errorf("decomposition must sum exactly: components %f, total %f", sum, b.Total)
	}
	var bySlice float64
	for _, p := range assumption.Products() {
		bySlice += b.Component(p)
	}
	if bySlice != b.Total {
		t.Errorf("Component() accessors disagree with total: %f vs %f", bySlice, b.Total)
	}
}

func TestQuarterlyRevenueFallback(t *testing.T) {
	q := 50e6
	acct := &account.Account{ID: "bank-3", FTECount: 100, QuarterlyRevenue: &q}
	b := NewEngine(testSet()).Compute(acct, account.TierCommercial)

	// 50M * 4 * 0.30 * 0.20 = 12M
	if b.RevenueShare != 12000000 {
		t.Errorf("annualized-quarter revenue share: expected 12000000, got %f", b.RevenueShare)
	}
	if b.RevenueBasis != BasisAnnualizedQuarter {
		t.Errorf("expected ANNUALIZED_QUARTER basis, got %s", b.RevenueBasis)
	}
}

func TestMissingInputsAreGapsNotErrors(t *testing.T) {
	acct := &account.Account{ID: "bank-4"}
	b := NewEngine(testSet()).Compute(acct, account.TierSmallBusiness)

	if b.Total != 0 {
		t.Errorf("account with no inputs must contribute TAM 0, got %f", b.Total)
	}
	if b.RevenueBasis != BasisMissing {
		t.Errorf("expected MISSING basis, got %s", b.RevenueBasis)
	}
	if len(b.DataGaps) != 2 {
		t.Errorf("expected 2 data-quality gaps (fte, revenue), got %v", b.DataGaps)
	}
}

func TestAccountOverrides(t *testing.T) {
	set := testSet()
	price := 200.0
	set.Overrides = map[string]assumption.ProductOverride{
		"bank-5": {DevSeatPriceMonth: &price},
	}
	rev := 10e6
	acct := &account.Account{ID: "bank-5", FTECount: 100, AnnualRevenueFY: &rev}
	b := NewEngine(set).Compute(acct, account.TierCommercial)

	// 200 * (100*0.15) * 12 = 36,000 against the global 150 -> 27,000
	if b.DeveloperSeat != 36000 {
		t.Errorf("override ignored: expected 36000, got %f", b.DeveloperSeat)
	}
}
