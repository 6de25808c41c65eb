package worker

import "time"

// Each running worker owns a fixed set of three named jobs, constructed
// together at start and torn down together at stop. Fire times mirror
// the upstream site's update cadence:
//
//   - "light": every 3 minutes — league year and actions.
//   - "heavy": minutes 1,2,4,5,7,10 of every hour — the master game list,
//     trailing the site's even-hour batch update (minute multiples of 3
//     are left to the light check).
//   - "bids": Sunday 01:00-01:05 UTC — bids and drops are processed
//     Saturday 8PM Eastern, which lands there.
type jobSpec struct {
	name  string
	heavy bool
	next  func(time.Time) time.Time
}

func jobSpecs() []jobSpec {
	return []jobSpec{
		{name: "light", heavy: false, next: lightNext},
		{name: "heavy", heavy: true, next: heavyNext},
		{name: "bids", heavy: false, next: bidsNext},
	}
}

func lightNext(now time.Time) time.Time {
	now = now.UTC()
	base := now.Truncate(time.Minute)
	for {
		base = base.Add(time.Minute)
		if base.Minute()%3 == 0 {
			return base
		}
	}
}

var heavyMinutes = []int{1, 2, 4, 5, 7, 10}

func heavyNext(now time.Time) time.Time {
	now = now.UTC()
	hour := now.Truncate(time.Hour)
	for {
		for _, m := range heavyMinutes {
			candidate := hour.Add(time.Duration(m) * time.Minute)
			if candidate.After(now) {
				return candidate
			}
		}
		hour = hour.Add(time.Hour)
	}
}

var bidsMinutes = []int{0, 1, 2, 4, 5}

func bidsNext(now time.Time) time.Time {
	now = now.UTC()
	day := now.Truncate(24 * time.Hour)
	for {
		if day.Weekday() == time.Sunday {
			for _, m := range bidsMinutes {
				candidate := day.Add(time.Hour + time.Duration(m)*time.Minute)
				if candidate.After(now) {
					return candidate
				}
			}
		}
		day = day.Add(24 * time.Hour)
	}
}
