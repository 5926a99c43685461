package report

import (
	"context"
	"fmt"

	"github.com/jmcorreia/vitals/internal/storage"
	"github.com/jmcorreia/vitals/internal/types"
)

// Window lengths in days.
const (
	weeklyDays      = 7
	monthlyDays     = 30
	insightLookback = 14
)

// Engine builds report payloads from stored history.
type Engine struct {
	store storage.Store
}

// NewEngine creates an Engine over the given store.
func NewEngine(store storage.Store) *Engine {
	return &Engine{store: store}
}

// PeriodStats summarizes one window of daily records. Pointer fields
// are nil when no record in the window carried the metric.
type PeriodStats struct {
	Start        types.Date
	End          types.Date
	DaysWithData int

	SleepAvgHours *float64
	SleepAvgScore *int
	SleepBest     *DayValue
	SleepWorst    *DayValue

	StepsAvg   *int
	StepsTotal *int

	ActiveCaloriesTotal  *int
	RestingCaloriesTotal *int

	StepsGoalDays int
}

// PeriodDeltas compares a window to the same-length window before it.
// Nil when the prior window has no samples for the metric; a delta of
// zero means "unchanged", nil means "nothing to compare against".
type PeriodDeltas struct {
	SleepAvgHours *float64
	StepsAvg      *int
}

// WeightStats summarizes the weight samples of a 7-day window. Delta
// compares the window's last sample to the previous week's last
// sample, rounded to one decimal; nil when the previous week has none.
type WeightStats struct {
	Current DayValue
	Prev    *DayValue
	Delta   *float64
	Min     float64
	Max     float64
	Count   int
}

// DailyReport is the payload for one day's summary notification.
type DailyReport struct {
	Date      types.Date
	Record    *types.DailyRecord
	Alerts    []string
	Nutrition *types.NutritionTotals
	Balance   *CaloricBalance
}

// WeeklyReport is the payload for the weekly rollup.
type WeeklyReport struct {
	Stats     *PeriodStats
	Deltas    *PeriodDeltas
	Weight    *WeightStats
	Insights  []Insight
	Nutrition *types.NutritionAverages
}

// MonthlyReport is the payload for the 30-day rollup.
type MonthlyReport struct {
	Stats  *PeriodStats
	Deltas *PeriodDeltas
}

// Period computes windowed statistics for the window of length days
// ending at end, inclusive. Returns nil when the window holds no
// records at all.
func (e *Engine) Period(ctx context.Context, end types.Date, days int) (*PeriodStats, error) {
	start := end.AddDays(-(days - 1))
	records, err := e.store.GetRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load range %s..%s: %w", start, end, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	goals, err := e.store.Goals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}
	stepsGoal, _ := goals.Get(types.MetricSteps)

	ps := &PeriodStats{
		Start:        start,
		End:          end,
		DaysWithData: len(records),
		SleepBest:    bestDay(records, sleepHours),
		SleepWorst:   worstDay(records, sleepHours),
	}

	if s := NewStat(records, sleepHours); s != nil {
		ps.SleepAvgHours = types.Ptr(round2(s.Avg))
	}
	if s := NewStat(records, sleepScore); s != nil {
		ps.SleepAvgScore = types.Ptr(roundInt(s.Avg))
	}
	if s := NewStat(records, steps); s != nil {
		ps.StepsAvg = types.Ptr(roundInt(s.Avg))
		ps.StepsTotal = types.Ptr(int(s.Total))
	}
	if s := NewStat(records, activeCalories); s != nil {
		ps.ActiveCaloriesTotal = types.Ptr(int(s.Total))
	}
	if s := NewStat(records, restingCalories); s != nil {
		ps.RestingCaloriesTotal = types.Ptr(int(s.Total))
	}

	for _, r := range records {
		if r.Steps != nil && float64(*r.Steps) >= stepsGoal {
			ps.StepsGoalDays++
		}
	}
	return ps, nil
}

// deltas subtracts the prior window's stats from the current one,
// metric by metric. A metric missing on either side yields nil.
func deltas(current, prior *PeriodStats) *PeriodDeltas {
	if current == nil || prior == nil {
		return nil
	}
	d := &PeriodDeltas{}
	if current.SleepAvgHours != nil && prior.SleepAvgHours != nil {
		d.SleepAvgHours = types.Ptr(round2(*current.SleepAvgHours - *prior.SleepAvgHours))
	}
	if current.StepsAvg != nil && prior.StepsAvg != nil {
		d.StepsAvg = types.Ptr(*current.StepsAvg - *prior.StepsAvg)
	}
	return d
}

// WeeklyWeight computes the weight window stats ending at end.
// Returns nil when the window has no weight samples.
func (e *Engine) WeeklyWeight(ctx context.Context, end types.Date) (*WeightStats, error) {
	start := end.AddDays(-(weeklyDays - 1))
	records, err := e.store.GetRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load weight range: %w", err)
	}

	var points []DayValue
	for _, r := range records {
		if r.WeightKg != nil {
			points = append(points, DayValue{Date: r.Date, Value: *r.WeightKg})
		}
	}
	if len(points) == 0 {
		return nil, nil
	}

	ws := &WeightStats{
		Current: points[len(points)-1],
		Min:     points[0].Value,
		Max:     points[0].Value,
		Count:   len(points),
	}
	for _, p := range points {
		if p.Value < ws.Min {
			ws.Min = p.Value
		}
		if p.Value > ws.Max {
			ws.Max = p.Value
		}
	}

	prevRecords, err := e.store.GetRange(ctx, start.AddDays(-weeklyDays), start.AddDays(-1))
	if err != nil {
		return nil, fmt.Errorf("load previous weight range: %w", err)
	}
	for i := len(prevRecords) - 1; i >= 0; i-- {
		if w := prevRecords[i].WeightKg; w != nil {
			ws.Prev = &DayValue{Date: prevRecords[i].Date, Value: *w}
			ws.Delta = types.Ptr(round1(ws.Current.Value - *w))
			break
		}
	}
	return ws, nil
}

// Daily builds the payload for one day's summary.
func (e *Engine) Daily(ctx context.Context, date types.Date) (*DailyReport, error) {
	record, err := e.store.GetDaily(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load daily record: %w", err)
	}

	goals, err := e.store.Goals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}

	recent, err := e.store.GetRange(ctx, date.AddDays(-(insightLookback - 1)), date)
	if err != nil {
		return nil, fmt.Errorf("load recent records: %w", err)
	}

	nutrition, err := e.store.DailyNutrition(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load nutrition totals: %w", err)
	}
	if nutrition != nil && nutrition.EntryCount == 0 {
		nutrition = nil
	}

	rep := &DailyReport{
		Date:      date,
		Record:    record,
		Alerts:    DailyAlerts(record, recent, goals),
		Nutrition: nutrition,
	}
	if nutrition != nil {
		rep.Balance = Balance(record, nutrition.Calories)
	}
	return rep, nil
}

// Weekly builds the 7-day rollup ending at end, with deltas against
// the week before and insights over the 14-day lookback.
func (e *Engine) Weekly(ctx context.Context, end types.Date) (*WeeklyReport, error) {
	stats, err := e.Period(ctx, end, weeklyDays)
	if err != nil {
		return nil, err
	}

	prior, err := e.Period(ctx, end.AddDays(-weeklyDays), weeklyDays)
	if err != nil {
		return nil, err
	}

	weight, err := e.WeeklyWeight(ctx, end)
	if err != nil {
		return nil, err
	}

	lookback, err := e.store.GetRange(ctx, end.AddDays(-(insightLookback - 1)), end)
	if err != nil {
		return nil, fmt.Errorf("load insight lookback: %w", err)
	}
	goals, err := e.store.Goals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}

	nutrition, err := e.store.WeeklyNutrition(ctx, end)
	if err != nil {
		return nil, fmt.Errorf("load weekly nutrition: %w", err)
	}
	if nutrition != nil && nutrition.DaysWithData == 0 {
		nutrition = nil
	}

	return &WeeklyReport{
		Stats:     stats,
		Deltas:    deltas(stats, prior),
		Weight:    weight,
		Insights:  Insights(lookback, goals),
		Nutrition: nutrition,
	}, nil
}

// Monthly builds the 30-day rollup ending at end.
func (e *Engine) Monthly(ctx context.Context, end types.Date) (*MonthlyReport, error) {
	stats, err := e.Period(ctx, end, monthlyDays)
	if err != nil {
		return nil, err
	}
	prior, err := e.Period(ctx, end.AddDays(-monthlyDays), monthlyDays)
	if err != nil {
		return nil, err
	}
	return &MonthlyReport{
		Stats:  stats,
		Deltas: deltas(stats, prior),
	}, nil
}
