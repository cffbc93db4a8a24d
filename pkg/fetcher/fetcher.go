// Package fetcher retrieves a day's prayer instants from the salat.habibur.com time-table API.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/borgmon/prayer-bar/pkg/models"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public time-table endpoint
const DefaultBaseURL = "https://salat.habibur.com/api/"

var (
	// ErrBadStatus is returned for non-200 responses
	ErrBadStatus = errors.New("unexpected response status")
	// ErrMalformedPayload is returned when a required field is missing or not a valid instant
	ErrMalformedPayload = errors.New("malformed time-table payload")
)

// Client fetches schedules over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client. Empty baseURL selects DefaultBaseURL, nil httpClient a 15s-timeout client.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

type instant struct {
	Short string `json:"short"`
	Long  string `json:"long"`
	Secs  int64  `json:"secs"`
}

type payload struct {
	Data struct {
		Sehri    *instant `json:"sehri"`
		Fajar18  *instant `json:"fajar18"`
		Rise     *instant `json:"rise"`
		Ishraq   *instant `json:"ishraq"`
		Noon     *instant `json:"noon"`
		Asar1    *instant `json:"asar1"`
		Asar2    *instant `json:"asar2"`
		Set      *instant `json:"set"`
		Magrib12 *instant `json:"magrib12"`
		Esha     *instant `json:"esha"`
		Night2   *instant `json:"night2"`
		Night6   *instant `json:"night6"`
	} `json:"data"`
	TZName string `json:"tzname"`
	Name   string `json:"name"`
}

// Fetch returns today's raw schedule for the given coordinates and IANA timezone
func (c *Client) Fetch(ctx context.Context, lat, lng float64, tzname string) (*models.RawSchedule, error) {
	loc, err := time.LoadLocation(tzname)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", tzname, err)
	}

	reqURL, err := c.buildURL(lat, lng, tzname, loc)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d %s", ErrBadStatus, resp.StatusCode, preview(body))
	}

	raw, err := parsePayload(body, loc)
	if err != nil {
		return nil, err
	}
	if raw.Timezone == "" {
		raw.Timezone = tzname
	}

	log.Info().
		Str("location", raw.Location).
		Str("date", raw.Date).
		Msg("Fetched prayer schedule")

	return raw, nil
}

func (c *Client) buildURL(lat, lng float64, tzname string, loc *time.Location) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", c.baseURL, err)
	}

	_, offsetSecs := time.Now().In(loc).Zone()

	q := u.Query()
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("tzoffset", strconv.Itoa(offsetSecs/60))
	q.Set("tzname", tzname)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func parsePayload(body []byte, loc *time.Location) (*models.RawSchedule, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(strings.ToUpper(trimmed), "<!DOCTYPE") || strings.HasPrefix(strings.ToUpper(trimmed), "<HTML") {
		return nil, fmt.Errorf("%w: received HTML instead of JSON", ErrMalformedPayload)
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	d := p.Data
	times := models.RawTimes{}

	fields := []field{
		{"fajar18", d.Fajar18, &times.Fajr, true},
		{"rise", d.Rise, &times.Sunrise, true},
		{"noon", d.Noon, &times.Noon, true},
		{"asar1", d.Asar1, &times.Asr1, true},
		{"asar2", d.Asar2, &times.Asr2, true},
		{"set", d.Set, &times.Sunset, true},
		{"magrib12", d.Magrib12, &times.Maghrib, true},
		{"esha", d.Esha, &times.Isha, true},
		{"sehri", d.Sehri, &times.Sehri, false},
		{"ishraq", d.Ishraq, &times.Ishraq, false},
		{"night2", d.Night2, &times.Night2, false},
		{"night6", d.Night6, &times.Night6, false},
	}

	for _, f := range fields {
		if f.value == nil || f.value.Secs <= 0 {
			if f.required {
				return nil, fmt.Errorf("%w: %s is missing", ErrMalformedPayload, f.name)
			}
			continue
		}
		*f.dst = time.Unix(f.value.Secs, 0).In(loc)
	}

	location := p.Name
	if location == "" {
		location = p.TZName
	}

	return &models.RawSchedule{
		Date:     times.Fajr.Format("2006-01-02"),
		Location: location,
		Timezone: p.TZName,
		Times:    times,
	}, nil
}

type field struct {
	name     string
	value    *instant
	dst      *time.Time
	required bool
}

func preview(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 100 {
		return s[:100]
	}
	return s
}
