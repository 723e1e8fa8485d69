package timeclock

import (
	"math"
	"time"

	"github.com/clockwork-hr/timeclock-backend-go/internal/domain/timeclock"
)

// All duration math is done in whole seconds; fractional hours exist only
// in responses, via HoursForDisplay.

// WorkedSeconds is the gross clocked time: clock-in to clock-out when the
// day is complete, clock-in to now while in progress, zero otherwise.
func WorkedSeconds(day *timeclock.AttendanceDay, now time.Time) int64 {
	if day == nil || day.ClockIn == nil {
		return 0
	}
	end := now
	if day.ClockOut != nil {
		end = *day.ClockOut
	}
	secs := int64(end.Sub(*day.ClockIn).Seconds())
	if secs < 0 {
		return 0
	}
	return secs
}

// BreakSeconds sums the day's break intervals; an open break counts up to now.
func BreakSeconds(day *timeclock.AttendanceDay, now time.Time) int64 {
	if day == nil {
		return 0
	}
	var total int64
	for _, b := range day.Breaks {
		end := now
		if b.End != nil {
			end = *b.End
		}
		if secs := int64(end.Sub(b.Start).Seconds()); secs > 0 {
			total += secs
		}
	}
	return total
}

// NetSeconds is worked minus break time. A negative result indicates
// overlapping or corrupt intervals; it is clamped to zero and reported as
// an anomaly instead of being surfaced.
func NetSeconds(day *timeclock.AttendanceDay, now time.Time) (secs int64, anomaly bool) {
	net := WorkedSeconds(day, now) - BreakSeconds(day, now)
	if net < 0 {
		return 0, true
	}
	return net, false
}

// HoursForDisplay converts whole seconds to hours rounded to two decimals.
// Only response mapping calls this; stored data stays in seconds.
func HoursForDisplay(secs int64) float64 {
	return math.Round(float64(secs)/3600*100) / 100
}

// WeekStart returns the Monday of the week containing t, at midnight UTC.
func WeekStart(t time.Time) time.Time {
	d := timeclock.DateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return d.AddDate(0, 0, -offset)
}

// WeeklySummary maps each of the 7 Monday-start dates to its day's clock
// times and total hours. Dates without a record stay explicitly absent.
func WeeklySummary(days []timeclock.AttendanceDay, weekStart, now time.Time) timeclock.WeeklySummaryResponse {
	byDate := make(map[string]*timeclock.AttendanceDay, len(days))
	for i := range days {
		byDate[days[i].Date.Format(dateLayout)] = &days[i]
	}

	out := timeclock.WeeklySummaryResponse{
		WeekStart: weekStart.Format(dateLayout),
		Days:      make([]timeclock.WeeklyDaySummary, 0, 7),
	}
	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		key := date.Format(dateLayout)
		entry := timeclock.WeeklyDaySummary{Date: key}
		if day, ok := byDate[key]; ok {
			entry.HasRecord = true
			entry.ClockInTime = timePtrToRFC3339(day.ClockIn)
			entry.ClockOutTime = timePtrToRFC3339(day.ClockOut)
			hours := HoursForDisplay(WorkedSeconds(day, now))
			entry.TotalHours = &hours
		}
		out.Days = append(out.Days, entry)
	}
	return out
}

const dateLayout = "2006-01-02"

// timePtrToRFC3339 safely converts a *time.Time to an ISO-8601 string.
func timePtrToRFC3339(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
