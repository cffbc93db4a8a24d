package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-03-10 05:00 +06:00
const fajrSecs int64 = 1741561200

func samplePayload(omit string) string {
	fields := []struct {
		name   string
		offset int64
	}{
		{"sehri", -10 * 60},
		{"fajar18", 0},
		{"rise", 80 * 60},
		{"ishraq", 95 * 60},
		{"noon", 425 * 60},
		{"asar1", 605 * 60},
		{"asar2", 640 * 60},
		{"set", 780 * 60},
		{"magrib12", 782 * 60},
		{"esha", 860 * 60},
		{"night2", 1160 * 60},
		{"night6", 1300 * 60},
	}

	data := ""
	for _, f := range fields {
		if f.name == omit {
			continue
		}
		if data != "" {
			data += ","
		}
		data += fmt.Sprintf(`"%s":{"short":"x","long":"x","secs":%d}`, f.name, fajrSecs+f.offset)
	}
	return fmt.Sprintf(`{"data":{%s},"tzname":"Asia/Dhaka","name":"Dhaka"}`, data)
}

func TestFetchParsesPayload(t *testing.T) {
	var query map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{
			"lat":      r.URL.Query().Get("lat"),
			"lng":      r.URL.Query().Get("lng"),
			"tzoffset": r.URL.Query().Get("tzoffset"),
			"tzname":   r.URL.Query().Get("tzname"),
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, samplePayload(""))
	}))
	defer srv.Close()

	raw, err := NewClient(srv.URL+"/api/", srv.Client()).Fetch(context.Background(), 23.8103, 90.4125, "Asia/Dhaka")
	require.NoError(t, err)

	assert.Equal(t, "23.8103", query["lat"])
	assert.Equal(t, "90.4125", query["lng"])
	assert.Equal(t, "360", query["tzoffset"])
	assert.Equal(t, "Asia/Dhaka", query["tzname"])

	assert.Equal(t, "Dhaka", raw.Location)
	assert.Equal(t, "Asia/Dhaka", raw.Timezone)
	assert.Equal(t, "2025-03-10", raw.Date)
	assert.Equal(t, fajrSecs, raw.Times.Fajr.Unix())
	assert.Equal(t, "12:05", raw.Times.Noon.Format("15:04"))
	assert.Equal(t, "15:40", raw.Times.Asr2.Format("15:04"))
	assert.Equal(t, "19:20", raw.Times.Isha.Format("15:04"))
	assert.False(t, raw.Times.Night6.IsZero())
}

func TestFetchOptionalFieldsMayBeMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, samplePayload("ishraq"))
	}))
	defer srv.Close()

	raw, err := NewClient(srv.URL, srv.Client()).Fetch(context.Background(), 23.8, 90.4, "Asia/Dhaka")
	require.NoError(t, err)
	assert.True(t, raw.Times.Ishraq.IsZero())
	assert.Len(t, raw.Times.Points(), 11)
}

func TestFetchRejectsMissingRequiredField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, samplePayload("esha"))
	}))
	defer srv.Close()

	raw, err := NewClient(srv.URL, srv.Client()).Fetch(context.Background(), 23.8, 90.4, "Asia/Dhaka")
	assert.Nil(t, raw)
	assert.ErrorIs(t, err, ErrMalformedPayload)
	assert.Contains(t, err.Error(), "esha")
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, "boom", ErrBadStatus},
		{"html page", http.StatusOK, "<!DOCTYPE html><html></html>", ErrMalformedPayload},
		{"not json", http.StatusOK, "nope", ErrMalformedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, srv.Client()).Fetch(context.Background(), 23.8, 90.4, "Asia/Dhaka")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFetchUnknownTimezone(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:1", nil).Fetch(context.Background(), 0, 0, "Mars/Olympus")
	assert.Error(t, err)
}

func TestFetchHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient(srv.URL, srv.Client()).Fetch(ctx, 23.8, 90.4, "Asia/Dhaka")
	assert.Error(t, err)
}
