package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jmcorreia/vitals/internal/types"
)

// HTTPClient is a thin JSON adapter for a metrics gateway that fronts
// the actual wearable vendor API. It carries no decision logic: it
// maps transport outcomes onto the Client contract and nothing else.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHTTPClient creates a client for the gateway at baseURL. The
// token is sent as a bearer credential on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type sleepPayload struct {
	Hours *float64 `json:"hours"`
	Score *int     `json:"score"`
}

type activityPayload struct {
	Steps           *int `json:"steps"`
	ActiveCalories  *int `json:"active_calories"`
	RestingCalories *int `json:"resting_calories"`
}

type healthPayload struct {
	RestingHeartRate *int `json:"resting_heart_rate"`
	AvgStress        *int `json:"avg_stress"`
	BodyBatteryHigh  *int `json:"body_battery_high"`
	BodyBatteryLow   *int `json:"body_battery_low"`
}

type availabilityPayload struct {
	Available bool `json:"available"`
}

// FetchSleep implements Client.
func (c *HTTPClient) FetchSleep(ctx context.Context, date types.Date) (*SleepData, error) {
	var payload sleepPayload
	if err := c.get(ctx, fmt.Sprintf("/v1/sleep/%s", date), &payload); err != nil {
		return nil, err
	}
	return &SleepData{Hours: payload.Hours, Score: payload.Score}, nil
}

// FetchActivity implements Client.
func (c *HTTPClient) FetchActivity(ctx context.Context, date types.Date) (*ActivityData, error) {
	var payload activityPayload
	if err := c.get(ctx, fmt.Sprintf("/v1/activity/%s", date), &payload); err != nil {
		return nil, err
	}
	return &ActivityData{
		Steps:           payload.Steps,
		ActiveCalories:  payload.ActiveCalories,
		RestingCalories: payload.RestingCalories,
	}, nil
}

// FetchHealth implements Client.
func (c *HTTPClient) FetchHealth(ctx context.Context, date types.Date) (*HealthData, error) {
	var payload healthPayload
	if err := c.get(ctx, fmt.Sprintf("/v1/health/%s", date), &payload); err != nil {
		return nil, err
	}
	return &HealthData{
		RestingHeartRate: payload.RestingHeartRate,
		AvgStress:        payload.AvgStress,
		BodyBatteryHigh:  payload.BodyBatteryHigh,
		BodyBatteryLow:   payload.BodyBatteryLow,
	}, nil
}

// CheckDataAvailable implements Client. Errors collapse to false.
func (c *HTTPClient) CheckDataAvailable(ctx context.Context, date types.Date) bool {
	var payload availabilityPayload
	if err := c.get(ctx, fmt.Sprintf("/v1/sleep/%s/available", date), &payload); err != nil {
		return false
	}
	return payload.Available
}

func (c *HTTPClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("provider request %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s: %w", path, ErrAuth)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", path, ErrRateLimited)
	default:
		return fmt.Errorf("provider request %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
