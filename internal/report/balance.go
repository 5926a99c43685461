package report

import "github.com/jmcorreia/vitals/internal/types"

// CaloricBalance is the day's energy deficit or surplus.
// Deficit = (active + resting expenditure) - calories eaten; positive
// means a deficit, negative a surplus. DeficitPct is the deficit as a
// percentage of total expenditure, one decimal.
type CaloricBalance struct {
	BurnedKcal int
	EatenKcal  int
	Deficit    int
	DeficitPct float64
}

// Balance computes the caloric balance for one day. Returns nil when
// either side of the equation is missing or zero: a day with nothing
// logged has no balance, not a 100% deficit.
func Balance(day *types.DailyRecord, eatenKcal float64) *CaloricBalance {
	if day == nil || eatenKcal == 0 {
		return nil
	}
	burned := 0
	if day.ActiveCalories != nil {
		burned += *day.ActiveCalories
	}
	if day.RestingCalories != nil {
		burned += *day.RestingCalories
	}
	if burned == 0 {
		return nil
	}

	deficit := burned - int(eatenKcal)
	return &CaloricBalance{
		BurnedKcal: burned,
		EatenKcal:  int(eatenKcal),
		Deficit:    deficit,
		DeficitPct: round1(float64(deficit) / float64(burned) * 100),
	}
}
