package awayday

import "github.com/m04kA/KingsBarber-BookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
