package get_quote

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/core/availability"
	"github.com/m04kA/SMC-CampBooking/internal/domain"
)

// Request модель запроса расчета стоимости
type Request struct {
	CabinID uuid.UUID // ID домика
	Start   time.Time // Дата заезда
	End     time.Time // Дата выезда
	Guests  int       // Количество гостей
}

// Response модель ответа с доступностью и стоимостью
type Response struct {
	Cabin        *domain.Cabin
	Availability *availability.Result
	Quote        *domain.Quote // nil, если даты недоступны
	SkippedRules int           // правила, пропущенные из-за некорректных условий
}
