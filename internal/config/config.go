// Package config loads and validates the daemon configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Mode selects how the daily sync is triggered.
const (
	// ModeWake polls for data availability inside a morning window
	// and fires the cycle when the user's device has synced.
	ModeWake = "wake"
	// ModeFixed fires the cycle at a fixed clock time, with a single
	// delayed retry.
	ModeFixed = "fixed"
)

// Config is the daemon configuration, loaded from YAML with
// environment overrides applied by the CLI layer.
type Config struct {
	// DatabasePath is the SQLite database file path
	// Default: "data/vitals.db"
	DatabasePath string `yaml:"database_path"`

	// Provider configures the metrics gateway the sync pipeline
	// fetches from
	Provider Provider `yaml:"provider"`

	// Schedule controls when syncs and reports fire
	Schedule Schedule `yaml:"schedule"`

	// HealthPort is the liveness probe HTTP port; 0 disables the probe
	// Default: 0
	HealthPort int `yaml:"health_port"`

	// BackupDir receives a database snapshot after each weekly
	// report; empty disables backups
	// Default: "data/backups"
	BackupDir string `yaml:"backup_dir"`
}

// Provider is the metrics gateway endpoint and credential.
type Provider struct {
	// BaseURL is the gateway root, e.g. "https://gateway.local:8443"
	BaseURL string `yaml:"base_url"`

	// Token is the bearer credential. The VITALS_PROVIDER_TOKEN
	// environment variable takes precedence over this field.
	Token string `yaml:"token"`
}

// Schedule holds the trigger times. All clock values are HH:MM.
type Schedule struct {
	// Mode is "wake" or "fixed"
	// Default: "wake"
	Mode string `yaml:"mode"`

	// SyncTime is the fixed-mode daily sync time
	// Default: "07:00"
	SyncTime string `yaml:"sync_time"`

	// ReportTime is the fixed-mode daily report time
	// Default: "08:00"
	ReportTime string `yaml:"report_time"`

	// RetryDelayMinutes is the fixed-mode delay before the single
	// sync retry
	// Default: 30
	RetryDelayMinutes int `yaml:"retry_delay_minutes"`

	// WakeWindowStart and WakeWindowEnd bound the wake-detection
	// polling window
	// Defaults: "06:30" and "10:00"
	WakeWindowStart string `yaml:"wake_window_start"`
	WakeWindowEnd   string `yaml:"wake_window_end"`

	// WakePollMinutes is the poll cadence inside the window
	// Default: 10
	WakePollMinutes int `yaml:"wake_poll_minutes"`

	// WeeklyReportDay and WeeklyReportTime schedule the weekly rollup
	// Defaults: "sunday" and "20:00"
	WeeklyReportDay  string `yaml:"weekly_report_day"`
	WeeklyReportTime string `yaml:"weekly_report_time"`

	// MonthlyReportDay and MonthlyReportTime schedule the 30-day
	// rollup
	// Defaults: 1 and "09:00"
	MonthlyReportDay  int    `yaml:"monthly_report_day"`
	MonthlyReportTime string `yaml:"monthly_report_time"`

	// Parsed values, populated by Validate.
	syncAt        ClockTime
	reportAt      ClockTime
	windowStart   ClockTime
	windowEnd     ClockTime
	weeklyAt      ClockTime
	monthlyAt     ClockTime
	weeklyWeekday time.Weekday
}

// ClockTime is a wall-clock hour and minute.
type ClockTime struct {
	Hour   int
	Minute int
}

// MinuteOfDay returns the time as minutes since midnight, for window
// comparisons.
func (t ClockTime) MinuteOfDay() int { return t.Hour*60 + t.Minute }

func (t ClockTime) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// ParseClockTime parses an HH:MM string. The field name is used in
// error messages.
func ParseClockTime(value, field string) (ClockTime, error) {
	var t ClockTime
	if _, err := fmt.Sscanf(value, "%d:%d", &t.Hour, &t.Minute); err != nil {
		return t, fmt.Errorf("%s must be HH:MM, got %q", field, value)
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return t, fmt.Errorf("%s out of range: %q", field, value)
	}
	return t, nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Default returns a config with all defaults applied.
func Default() *Config {
	return &Config{
		DatabasePath: "data/vitals.db",
		BackupDir:    "data/backups",
		Schedule: Schedule{
			Mode:              ModeWake,
			SyncTime:          "07:00",
			ReportTime:        "08:00",
			RetryDelayMinutes: 30,
			WakeWindowStart:   "06:30",
			WakeWindowEnd:     "10:00",
			WakePollMinutes:   10,
			WeeklyReportDay:   "sunday",
			WeeklyReportTime:  "20:00",
			MonthlyReportDay:  1,
			MonthlyReportTime: "09:00",
		},
	}
}

// Load reads a YAML config file, fills defaults for absent fields,
// and validates. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				if err := cfg.Validate(); err != nil {
					return nil, err
				}
				return cfg, nil
			}
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks all fields and parses the clock values. Must be
// called before the parsed accessors are used.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		c.DatabasePath = "data/vitals.db"
	}
	s := &c.Schedule

	switch s.Mode {
	case ModeWake, ModeFixed:
	case "":
		s.Mode = ModeWake
	default:
		return fmt.Errorf("schedule.mode must be %q or %q, got %q", ModeWake, ModeFixed, s.Mode)
	}

	var err error
	if s.syncAt, err = ParseClockTime(s.SyncTime, "schedule.sync_time"); err != nil {
		return err
	}
	if s.reportAt, err = ParseClockTime(s.ReportTime, "schedule.report_time"); err != nil {
		return err
	}
	if s.windowStart, err = ParseClockTime(s.WakeWindowStart, "schedule.wake_window_start"); err != nil {
		return err
	}
	if s.windowEnd, err = ParseClockTime(s.WakeWindowEnd, "schedule.wake_window_end"); err != nil {
		return err
	}
	if s.windowEnd.MinuteOfDay() <= s.windowStart.MinuteOfDay() {
		return fmt.Errorf("schedule.wake_window_end %s must be after wake_window_start %s",
			s.windowEnd, s.windowStart)
	}
	if s.weeklyAt, err = ParseClockTime(s.WeeklyReportTime, "schedule.weekly_report_time"); err != nil {
		return err
	}
	if s.monthlyAt, err = ParseClockTime(s.MonthlyReportTime, "schedule.monthly_report_time"); err != nil {
		return err
	}

	wd, ok := weekdays[strings.ToLower(s.WeeklyReportDay)]
	if !ok {
		return fmt.Errorf("schedule.weekly_report_day must be a weekday name, got %q", s.WeeklyReportDay)
	}
	s.weeklyWeekday = wd

	if s.RetryDelayMinutes <= 0 {
		return fmt.Errorf("schedule.retry_delay_minutes must be positive, got %d", s.RetryDelayMinutes)
	}
	// The retry must land on the same calendar day as the sync, or it
	// would never fire.
	if s.syncAt.MinuteOfDay()+s.RetryDelayMinutes >= 24*60 {
		return fmt.Errorf("schedule.sync_time %s plus retry_delay_minutes %d crosses midnight",
			s.syncAt, s.RetryDelayMinutes)
	}
	if s.WakePollMinutes <= 0 {
		return fmt.Errorf("schedule.wake_poll_minutes must be positive, got %d", s.WakePollMinutes)
	}
	if s.MonthlyReportDay < 1 || s.MonthlyReportDay > 28 {
		return fmt.Errorf("schedule.monthly_report_day must be 1-28, got %d", s.MonthlyReportDay)
	}
	if c.HealthPort < 0 || c.HealthPort > 65535 {
		return fmt.Errorf("health_port out of range: %d", c.HealthPort)
	}
	return nil
}

// Parsed accessors. Valid only after Validate.

func (s *Schedule) SyncAt() ClockTime           { return s.syncAt }
func (s *Schedule) ReportAt() ClockTime         { return s.reportAt }
func (s *Schedule) WindowStart() ClockTime      { return s.windowStart }
func (s *Schedule) WindowEnd() ClockTime        { return s.windowEnd }
func (s *Schedule) WeeklyAt() ClockTime         { return s.weeklyAt }
func (s *Schedule) MonthlyAt() ClockTime        { return s.monthlyAt }
func (s *Schedule) WeeklyWeekday() time.Weekday { return s.weeklyWeekday }

// PollInterval returns the wake-detection poll cadence.
func (s *Schedule) PollInterval() time.Duration {
	return time.Duration(s.WakePollMinutes) * time.Minute
}

// RetryDelay returns the fixed-mode retry offset.
func (s *Schedule) RetryDelay() time.Duration {
	return time.Duration(s.RetryDelayMinutes) * time.Minute
}
