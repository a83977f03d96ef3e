package cancel_late_arrivals

import "github.com/google/uuid"

// Response результат одного прогона задачи
type Response struct {
	Checked   int         // Сколько бронирований попало под выборку
	Cancelled []uuid.UUID // ID отмененных бронирований
	Failed    int         // Сколько отмен завершилось ошибкой
}
