package booking

import "github.com/m04kA/SMC-BeautyBooking/pkg/dbmetrics"

// DBExecutor соединение или транзакция из контекста, см. dbmetrics.GetExecutor
type DBExecutor = dbmetrics.DBExecutor
