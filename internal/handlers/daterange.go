package handlers

import (
	"net/http"
	"time"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/timeutil"
)

// parseDateRange reads optional from/to query params (YYYY-MM-DD) and widens
// them to full business days. Missing params default to today.
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	now := timeutil.Now()
	from := timeutil.StartOfDay(now)
	to := timeutil.EndOfDay(now)

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.ParseInLocation(timeutil.DateLayout, v, timeutil.IST)
		if err != nil {
			return from, to, err
		}
		from = timeutil.StartOfDay(parsed)
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.ParseInLocation(timeutil.DateLayout, v, timeutil.IST)
		if err != nil {
			return from, to, err
		}
		to = timeutil.EndOfDay(parsed)
	}
	return from, to, nil
}
