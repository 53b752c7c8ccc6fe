// Package timestamp provides utilities for handling timestamps
package timestamp

import (
	"time"
)

// FromDOS combines a DOS date and time, as stored in FAT directory entries, into a time.Time in UTC.
//
// The date packs the day of month in bits 0-4, the month in bits 5-8 and the years since 1980 in
// bits 9-15. The time packs 2-second units in bits 0-4, minutes in bits 5-10 and hours in bits 11-15.
//
// A zero day or month is invalid, in which case time.Time{} is returned so that IsZero() can be used.
// Out-of-range time fields are clamped to 23:59:58.
func FromDOS(date, tm uint16) time.Time {
	day := int(date & 0x1f)
	month := int(date >> 5 & 0x0f)
	year := 1980 + int(date>>9&0x7f)
	if day == 0 || month == 0 || month > 12 {
		return time.Time{}
	}

	seconds := int(tm&0x1f) * 2
	minutes := int(tm >> 5 & 0x3f)
	hours := int(tm >> 11 & 0x1f)
	if hours > 23 || minutes > 59 || seconds > 59 {
		hours, minutes, seconds = 23, 59, 58
	}

	return time.Date(year, time.Month(month), day, hours, minutes, seconds, 0, time.UTC)
}
