package worker

import (
	"testing"
	"time"
)

func TestLightNext(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "on the hour",
			now:  time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
			want: time.Date(2024, 6, 3, 10, 3, 0, 0, time.UTC),
		},
		{
			name: "mid interval",
			now:  time.Date(2024, 6, 3, 10, 2, 30, 0, time.UTC),
			want: time.Date(2024, 6, 3, 10, 3, 0, 0, time.UTC),
		},
		{
			name: "exactly on a fire minute advances to the next",
			now:  time.Date(2024, 6, 3, 10, 3, 0, 0, time.UTC),
			want: time.Date(2024, 6, 3, 10, 6, 0, 0, time.UTC),
		},
		{
			name: "hour rollover",
			now:  time.Date(2024, 6, 3, 10, 58, 10, 0, time.UTC),
			want: time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := lightNext(tc.now); !got.Equal(tc.want) {
				t.Errorf("lightNext(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestHeavyNext(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "start of hour",
			now:  time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
			want: time.Date(2024, 6, 3, 10, 1, 0, 0, time.UTC),
		},
		{
			name: "between fire minutes",
			now:  time.Date(2024, 6, 3, 10, 7, 30, 0, time.UTC),
			want: time.Date(2024, 6, 3, 10, 10, 0, 0, time.UTC),
		},
		{
			name: "after last fire minute rolls to next hour",
			now:  time.Date(2024, 6, 3, 10, 10, 0, 0, time.UTC),
			want: time.Date(2024, 6, 3, 11, 1, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := heavyNext(tc.now); !got.Equal(tc.want) {
				t.Errorf("heavyNext(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestBidsNext(t *testing.T) {
	// 2024-06-02 is a Sunday.
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "weekday waits for sunday",
			now:  time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC),
			want: time.Date(2024, 6, 9, 1, 0, 0, 0, time.UTC),
		},
		{
			name: "inside the sunday window",
			now:  time.Date(2024, 6, 2, 1, 1, 30, 0, time.UTC),
			want: time.Date(2024, 6, 2, 1, 2, 0, 0, time.UTC),
		},
		{
			name: "window minute 3 is skipped",
			now:  time.Date(2024, 6, 2, 1, 2, 30, 0, time.UTC),
			want: time.Date(2024, 6, 2, 1, 4, 0, 0, time.UTC),
		},
		{
			name: "after the window waits a week",
			now:  time.Date(2024, 6, 2, 1, 5, 30, 0, time.UTC),
			want: time.Date(2024, 6, 9, 1, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := bidsNext(tc.now); !got.Equal(tc.want) {
				t.Errorf("bidsNext(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestJobSpecs(t *testing.T) {
	specs := jobSpecs()
	if len(specs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(specs))
	}
	heavy := map[string]bool{}
	for _, s := range specs {
		heavy[s.name] = s.heavy
	}
	if heavy["light"] || !heavy["heavy"] || heavy["bids"] {
		t.Errorf("unexpected job classes: %v", heavy)
	}
}
