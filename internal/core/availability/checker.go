// Package availability проверяет, можно ли забронировать домик на указанные даты.
//
// Проверка чистая: вызывающая сторона передает снимок бронирований, блокировок и праздников.
package availability

import (
	"github.com/m04kA/SMC-CampBooking/internal/domain"
)

// CheckAvailability проверяет даты проживания в порядке:
// длительность, блокировки, пересечения с бронированиями.
// Праздники не влияют на результат и прикладываются к нему для информации.
func CheckAvailability(
	cabin *domain.Cabin,
	stay domain.Stay,
	reservations []domain.Reservation,
	blockedDates []domain.BlockedDate,
	holidays []domain.Holiday,
	policy Policy,
) (*Result, error) {
	// 1. Валидация входных данных
	if cabin == nil {
		return nil, ErrInvalidCabin
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	stayRange := stay.Range()
	if !stayRange.IsValid() {
		return nil, ErrInvalidRange
	}

	result := &Result{
		Nights:    stayRange.Nights(),
		MinNights: policy.MinNightsFor(stay),
		MaxNights: policy.MaxNights,
	}

	// 2. Длительность проживания
	if result.Nights < result.MinNights {
		result.Verdict = VerdictStayTooShort
		return result, nil
	}
	if result.Nights > result.MaxNights {
		result.Verdict = VerdictStayTooLong
		return result, nil
	}

	// 3. Блокировки (включая общие для всех домиков)
	for i := range blockedDates {
		block := &blockedDates[i]
		if !block.AppliesTo(cabin.ID) {
			continue
		}
		if block.Range().Overlaps(stayRange) {
			result.Verdict = VerdictBlocked
			blocking := *block
			result.Blocking = &blocking
			return result, nil
		}
	}

	// 4. Активные бронирования этого домика
	for i := range reservations {
		res := &reservations[i]
		if res.CabinID != cabin.ID || !res.IsBlocking() {
			continue
		}
		if res.Range().Overlaps(stayRange) {
			result.Verdict = VerdictConflict
			conflict := *res
			result.Conflict = &conflict
			return result, nil
		}
	}

	// 5. Даты свободны
	result.Verdict = VerdictAvailable
	result.Holidays = HolidaysWithin(stay, holidays)

	return result, nil
}

// HolidaysWithin возвращает праздники, выпадающие на ночи проживания
// Date у найденного праздника - дата внутри проживания (для повторяющихся - в году проживания)
func HolidaysWithin(stay domain.Stay, holidays []domain.Holiday) []domain.Holiday {
	nights := stay.Range().Days()

	var found []domain.Holiday
	for _, h := range holidays {
		for _, night := range nights {
			if h.Matches(night) {
				occurrence := h
				occurrence.Date = night
				found = append(found, occurrence)
				break
			}
		}
	}
	return found
}
