package check_availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/core/availability"
	"github.com/m04kA/SMC-CampBooking/internal/domain"
)

// Request модель запроса проверки доступности
type Request struct {
	CabinID uuid.UUID // ID домика
	Start   time.Time // Дата заезда
	End     time.Time // Дата выезда
	Guests  int       // Количество гостей
}

// Response модель ответа
type Response struct {
	Cabin  *domain.Cabin
	Result *availability.Result
}
