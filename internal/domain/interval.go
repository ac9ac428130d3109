package domain

import "time"

// Overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd).
// Интервалы, которые только граничат (aEnd == bStart), не пересекаются.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Interval полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps проверяет пересечение с другим интервалом
func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.Start, i.End, other.Start, other.End)
}

// IsValid returns true if Start is strictly before End
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Duration длительность интервала
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// DayBounds возвращает границы календарного дня date в часовом поясе loc: [00:00, 00:00 следующего дня)
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// Dates возвращает полночь каждого календарного дня (в loc), который задевает интервал
func (i Interval) Dates(loc *time.Location) []time.Time {
	if !i.IsValid() {
		return nil
	}

	dates := make([]time.Time, 0, 1)
	day, next := DayBounds(i.Start, loc)
	for day.Before(i.End) {
		dates = append(dates, day)
		day, next = next, next.AddDate(0, 0, 1)
	}
	return dates
}

// IsSameDay проверяет, что два момента времени относятся к одному дню в loc
func IsSameDay(a, b time.Time, loc *time.Location) bool {
	y1, m1, d1 := a.In(loc).Date()
	y2, m2, d2 := b.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
