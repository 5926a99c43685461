package types

import (
	"fmt"
	"time"
)

// AttemptStatus tags an entry in the append-only sync attempt log.
type AttemptStatus string

const (
	// AttemptSuccess means the sync pipeline stored usable data.
	AttemptSuccess AttemptStatus = "success"
	// AttemptPartial means the pipeline ran but some or all fetches
	// returned nothing usable.
	AttemptPartial AttemptStatus = "partial"
	// AttemptError means the pipeline failed before storing anything.
	AttemptError AttemptStatus = "error"
	// AttemptReportSent marks that the daily report went out. It is
	// recorded independently of sync outcome: a failed-data day still
	// only alerts once.
	AttemptReportSent AttemptStatus = "report_sent"
)

// IsValid checks if the status value is valid
func (s AttemptStatus) IsValid() bool {
	switch s {
	case AttemptSuccess, AttemptPartial, AttemptError, AttemptReportSent:
		return true
	}
	return false
}

// Attempt is one entry in the attempt log. Entries are never updated
// or deleted; idempotency queries are derived from them.
type Attempt struct {
	ID           string        `json:"id"`
	Timestamp    time.Time     `json:"timestamp"`
	Status       AttemptStatus `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// DailyRecord holds one calendar day's aggregated health metrics.
// At most one record exists per date; writes are upserts keyed by date.
// Nil pointer fields mean the metric was never reported for that day.
type DailyRecord struct {
	Date             Date      `json:"date"`
	SleepHours       *float64  `json:"sleep_hours,omitempty"`
	SleepScore       *int      `json:"sleep_score,omitempty"`
	SleepQuality     string    `json:"sleep_quality,omitempty"`
	Steps            *int      `json:"steps,omitempty"`
	ActiveCalories   *int      `json:"active_calories,omitempty"`
	RestingCalories  *int      `json:"resting_calories,omitempty"`
	RestingHeartRate *int      `json:"resting_heart_rate,omitempty"`
	AvgStress        *int      `json:"avg_stress,omitempty"`
	BodyBatteryHigh  *int      `json:"body_battery_high,omitempty"`
	BodyBatteryLow   *int      `json:"body_battery_low,omitempty"`
	WeightKg         *float64  `json:"weight_kg,omitempty"`
	SyncSuccess      bool      `json:"sync_success"`
	SyncedAt         time.Time `json:"synced_at"`
}

// TotalCalories returns active + resting expenditure, or nil when
// neither component is known.
func (r *DailyRecord) TotalCalories() *int {
	if r.ActiveCalories == nil && r.RestingCalories == nil {
		return nil
	}
	total := 0
	if r.ActiveCalories != nil {
		total += *r.ActiveCalories
	}
	if r.RestingCalories != nil {
		total += *r.RestingCalories
	}
	return &total
}

// DailyPatch is a partial update for a daily record. Only non-nil
// fields are written; an upsert never reverts an existing field to null.
type DailyPatch struct {
	SleepHours       *float64
	SleepScore       *int
	SleepQuality     *string
	Steps            *int
	ActiveCalories   *int
	RestingCalories  *int
	RestingHeartRate *int
	AvgStress        *int
	BodyBatteryHigh  *int
	BodyBatteryLow   *int
	WeightKg         *float64
	SyncSuccess      *bool
}

// IsEmpty reports whether the patch carries no fields at all.
func (p *DailyPatch) IsEmpty() bool {
	return p.SleepHours == nil && p.SleepScore == nil && p.SleepQuality == nil &&
		p.Steps == nil && p.ActiveCalories == nil && p.RestingCalories == nil &&
		p.RestingHeartRate == nil && p.AvgStress == nil &&
		p.BodyBatteryHigh == nil && p.BodyBatteryLow == nil &&
		p.WeightKg == nil && p.SyncSuccess == nil
}

// SleepQualityLabel maps a numeric sleep score to a coarse label.
func SleepQualityLabel(score int) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 70:
		return "good"
	case score >= 60:
		return "fair"
	default:
		return "poor"
	}
}

// Goal metric names. Steps and sleep have defaults; macro goals are
// absent until the user sets them, and features depending on them stay
// inert until configured.
const (
	MetricSteps      = "steps"
	MetricSleepHours = "sleep_hours"
	MetricWeightKg   = "weight_kg"
	MetricCalories   = "calories"
	MetricProteinG   = "protein_g"
	MetricFatG       = "fat_g"
	MetricCarbsG     = "carbs_g"
)

// ValidGoalMetric reports whether name is a settable goal metric.
func ValidGoalMetric(name string) bool {
	switch name {
	case MetricSteps, MetricSleepHours, MetricWeightKg,
		MetricCalories, MetricProteinG, MetricFatG, MetricCarbsG:
		return true
	}
	return false
}

// Goals maps metric names to numeric targets.
type Goals map[string]float64

// Get returns the target for a metric and whether it is set.
func (g Goals) Get(metric string) (float64, bool) {
	v, ok := g[metric]
	return v, ok
}

// MacroGoals returns only the nutrition-related goals. Empty when the
// user never configured macros.
func (g Goals) MacroGoals() Goals {
	out := Goals{}
	for _, m := range []string{MetricCalories, MetricProteinG, MetricFatG, MetricCarbsG} {
		if v, ok := g[m]; ok {
			out[m] = v
		}
	}
	return out
}

// FoodEntry is one logged food item. Entries are the only rows the
// system ever hard-deletes, and only via last-entry-of-day undo.
type FoodEntry struct {
	ID        int64     `json:"id"`
	Date      Date      `json:"date"`
	Name      string    `json:"name"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	Calories  *float64  `json:"calories,omitempty"`
	ProteinG  *float64  `json:"protein_g,omitempty"`
	FatG      *float64  `json:"fat_g,omitempty"`
	CarbsG    *float64  `json:"carbs_g,omitempty"`
	FiberG    *float64  `json:"fiber_g,omitempty"`
	Source    string    `json:"source"`
	Barcode   string    `json:"barcode,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks required food entry fields.
func (f *FoodEntry) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("name is required")
	}
	if f.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive (got %g)", f.Quantity)
	}
	return nil
}

// NutritionTotals are summed macros for one day.
type NutritionTotals struct {
	Calories   float64 `json:"calories"`
	ProteinG   float64 `json:"protein_g"`
	FatG       float64 `json:"fat_g"`
	CarbsG     float64 `json:"carbs_g"`
	FiberG     float64 `json:"fiber_g"`
	EntryCount int     `json:"entry_count"`
}

// NutritionAverages are per-day averages over a multi-day window,
// computed only over days that have at least one entry.
type NutritionAverages struct {
	AvgCalories  float64 `json:"avg_calories"`
	AvgProteinG  float64 `json:"avg_protein"`
	AvgFatG      float64 `json:"avg_fat"`
	AvgCarbsG    float64 `json:"avg_carbs"`
	AvgFiberG    float64 `json:"avg_fiber"`
	DaysWithData int     `json:"days_with_data"`
}

// Ptr returns a pointer to v. Convenience for building patches.
func Ptr[T any](v T) *T {
	return &v
}
