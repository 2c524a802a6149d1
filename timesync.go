package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/carlmjohnson/requests"
)

// fetchServerTime asks url for its Date header. It is good to a second,
// which is all the clock keeps.
func fetchServerTime(ctx context.Context, url string) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	h := http.Header{}
	err := requests.
		URL(url).
		Head().
		CopyHeaders(h).
		Fetch(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("time sync: %w", err)
	}
	date := h.Get("Date")
	if date == "" {
		return time.Time{}, fmt.Errorf("time sync: %s sent no Date header", url)
	}
	t, err := http.ParseTime(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("time sync: %w", err)
	}
	return t, nil
}
