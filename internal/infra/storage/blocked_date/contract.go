package blocked_date

import "github.com/m04kA/SMC-CampBooking/pkg/txmanager"

// DBExecutor интерфейс для выполнения запросов (*sql.DB или *sql.Tx)
type DBExecutor = txmanager.DBExecutor
