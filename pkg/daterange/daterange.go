// Package daterange содержит операции над календарными датами и полуоткрытыми интервалами дат.
//
// Все даты нормализуются к полуночи UTC, поэтому количество ночей не зависит
// от часового пояса и перехода на летнее время.
package daterange

import (
	"fmt"
	"time"
)

// DateFormat формат даты YYYY-MM-DD
const DateFormat = "2006-01-02"

// Day возвращает календарную дату t (полночь UTC)
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Parse парсит дату в формате YYYY-MM-DD
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// MustParse как Parse, но паникует при ошибке. Только для тестов и констант.
func MustParse(s string) time.Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Nights возвращает количество ночей между датой заезда и датой выезда
// Может быть отрицательным, если end раньше start
func Nights(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)) / (24 * time.Hour))
}

// Overlaps проверяет пересечение полуоткрытых интервалов [a1, a2) и [b1, b2)
// Интервалы, которые только касаются границами, не пересекаются
func Overlaps(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}

// Range полуоткрытый интервал дат [Start, End)
type Range struct {
	Start time.Time
	End   time.Time
}

// New создает интервал [start, end) из даты заезда и даты выезда
func New(start, end time.Time) Range {
	return Range{Start: Day(start), End: Day(end)}
}

// FromInclusive создает интервал из включительных границ [start, end]
// Используется для блокировок и сезонов, где end - последний занятый день
func FromInclusive(start, end time.Time) Range {
	return Range{Start: Day(start), End: Day(end).AddDate(0, 0, 1)}
}

// Nights количество ночей (дней) в интервале
func (r Range) Nights() int {
	return Nights(r.Start, r.End)
}

// IsValid true, если интервал содержит хотя бы один день
func (r Range) IsValid() bool {
	return r.Start.Before(r.End)
}

// Overlaps проверяет, есть ли у интервалов хотя бы один общий день
func (r Range) Overlaps(other Range) bool {
	return Overlaps(r.Start, r.End, other.Start, other.End)
}

// Contains проверяет, что день d входит в интервал
func (r Range) Contains(d time.Time) bool {
	day := Day(d)
	return !day.Before(r.Start) && day.Before(r.End)
}

// Days возвращает все дни интервала по порядку
func (r Range) Days() []time.Time {
	n := r.Nights()
	if n <= 0 {
		return []time.Time{}
	}

	days := make([]time.Time, 0, n)
	for d := r.Start; d.Before(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(DateFormat), r.End.Format(DateFormat))
}
