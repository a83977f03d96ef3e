package create_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
	"github.com/m04kA/SMC-CampBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    string           // ID пользователя (из X-User-ID)
	CabinID   uuid.UUID        // ID домика
	Start     time.Time        // Дата заезда
	End       time.Time        // Дата выезда
	Guests    int              // Количество гостей
	StartTime types.TimeString // Планируемое время заезда (опционально)
	EndTime   types.TimeString // Планируемое время выезда (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation *domain.Reservation
	Quote       *domain.Quote
}
