package projection

import (
	"math"
	"testing"

	"bank_dashboard/pkg/core/account"
	"bank_dashboard/pkg/core/assumption"
	"bank_dashboard/pkg/core/penetration"
	"bank_dashboard/pkg/core/tam"
)

func testProvider() *penetration.Provider {
	sched := assumption.QuarterSchedule{}
	for q := 1; q <= assumption.HorizonQuarters; q++ {
		sched[q] = assumption.ScheduleEntry{Target: float64(q) * 0.05} // 5% ... 60%
	}
	return penetration.NewProvider(assumption.PenetrationConfig{
		TierDefaults: map[account.Tier]map[assumption.Product]assumption.QuarterSchedule{
			account.TierEnterprise: {
				assumption.ProductDeveloperSeat:    sched,
				assumption.ProductPerEmployeeAgent: {4: {Target: 0.10}},
			},
		},
	})
}

func testBreakdown() tam.Breakdown {
	return tam.Breakdown{
		AccountID:        "bank-1",
		Tier:             account.TierEnterprise,
		DeveloperSeat:    400000,
		PerEmployeeAgent: 60000000,
		Total:            60400000,
	}
}

func TestQuarterlyRevenue(t *testing.T) {
	p := NewProjector(testProvider())
	b := testBreakdown()

	// Q4: dev (400000/4)*0.20 = 20000; agent (60000000/4)*0.10 = 1500000.
	q4 := p.QuarterlyRevenue(b, account.TierEnterprise, 4)
	if got := q4.ByProduct[assumption.ProductDeveloperSeat]; got != 20000 {
		t.Errorf("dev Q4: expected 20000, got %f", got)
	}
	if got := q4.ByProduct[assumption.ProductPerEmployeeAgent]; got != 1500000 {
		t.Errorf("agent Q4: expected 1500000, got %f", got)
	}
	if q4.Total != 1520000 {
		t.Errorf("Q4 total: expected 1520000, got %f", q4.Total)
	}

	// Q5: agent schedule is sparse (only Q4 set), so only dev contributes.
	q5 := p.QuarterlyRevenue(b, account.TierEnterprise, 5)
	if got := q5.ByProduct[assumption.ProductPerEmployeeAgent]; got != 0 {
		t.Errorf("agent Q5: expected 0 (sparse schedule), got %f", got)
	}
	if want := (400000.0 / 4) * 0.25; q5.Total != want {
		t.Errorf("Q5 total: expected %f, got %f", want, q5.Total)
	}
}

func TestThreeYearIsSumOfQuarters(t *testing.T) {
	p := NewProjector(testProvider())
	proj := p.Project(testBreakdown(), account.TierEnterprise)

	if len(proj.Quarters) != assumption.HorizonQuarters {
		t.Fatalf("expected %d quarters, got %d", assumption.HorizonQuarters, len(proj.Quarters))
	}
	var sum float64
	for _, q := range proj.Quarters {
		sum += q.Total
	}
	if math.Abs(sum-proj.ThreeYearAchievable) > 1e-9 {
		t.Errorf("three-year achievable %f != quarter sum %f", proj.ThreeYearAchievable, sum)
	}
}

func TestRunRateIsQ4AnnualizedNotYearSum(t *testing.T) {
	p := NewProjector(testProvider())
	proj := p.Project(testBreakdown(), account.TierEnterprise)

	// Year 1 RRR = Q4 total * 4.
	q4 := proj.Quarters[3].Total
	if proj.RunRateRevenue[0] != q4*4 {
		t.Errorf("year-1 RRR: expected %f, got %f", q4*4, proj.RunRateRevenue[0])
	}

	// Penetration ramps within the year, so Q4-annualized must exceed the
	// sum of the four quarters; the two figures are genuinely distinct.
	yearSum := proj.Quarters[0].Total + proj.Quarters[1].Total + proj.Quarters[2].Total + proj.Quarters[3].Total
	if proj.RunRateRevenue[0] <= yearSum {
		t.Errorf("RRR %f should exceed ramping year sum %f", proj.RunRateRevenue[0], yearSum)
	}

	// Year boundaries: year 2 RRR reads Q8, year 3 reads Q12.
	if proj.RunRateRevenue[1] != proj.Quarters[7].Total*4 {
		t.Errorf("year-2 RRR mismatched quarter")
	}
	if proj.RunRateRevenue[2] != proj.Quarters[11].Total*4 {
		t.Errorf("year-3 RRR mismatched quarter")
	}
}

func TestQuarterYearHelpers(t *testing.T) {
	if YearOfQuarter(1) != 1 || YearOfQuarter(4) != 1 || YearOfQuarter(5) != 2 || YearOfQuarter(12) != 3 {
		t.Error("YearOfQuarter mapping broken")
	}
	if FourthQuarterOf(1) != 4 || FourthQuarterOf(3) != 12 {
		t.Error("FourthQuarterOf mapping broken")
	}
}
