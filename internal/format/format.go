// Package format renders timestamps and durations the way the
// referee expects them on the pitch: Irish locale conventions,
// 24-hour clock.
package format

import (
	"fmt"
	"time"
)

// ShortTime renders a 24-hour HH:MM clock reading, zero-padded,
// no seconds.
func ShortTime(t time.Time) string {
	return t.Format("15:04")
}

// LongDate renders e.g. "Tue, 14 May 2024".
func LongDate(t time.Time) string {
	return t.Format("Mon, 2 Jan 2006")
}

// Duration renders H:MM:SS. Hours are not zero-padded and carry no
// upper bound; minutes and seconds are printed as entered, two
// digits minimum, without normalization. 25 hours is "25:00:00",
// never "1 day 1:00:00".
func Duration(hours, minutes, seconds int) string {
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}
