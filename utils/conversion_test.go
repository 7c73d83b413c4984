package utils

import (
	"sync"
	"testing"
	"time"
)

func TestMinutesToClock(t *testing.T) {
	cases := []struct {
		minutes int
		clock   string
	}{
		{0, "00:00"},
		{540, "09:00"},
		{810, "13:30"},
		{1439, "23:59"},
	}
	for _, tc := range cases {
		if got := MinutesToClock(tc.minutes); got != tc.clock {
			t.Errorf("MinutesToClock(%d) = %q, want %q", tc.minutes, got, tc.clock)
		}
	}
}

func TestDayStart(t *testing.T) {
	in := time.Date(2025, 3, 3, 15, 42, 7, 123, time.UTC)
	want := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	if got := DayStart(in); !got.Equal(want) {
		t.Errorf("DayStart = %v, want %v", got, want)
	}
}

func TestProviderLockerSerializesPerProvider(t *testing.T) {
	locker := NewProviderLocker()

	const workers = 16
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locker.Lock("prov-1")
			defer locker.Unlock("prov-1")
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d; increments raced", counter, workers)
	}
}
