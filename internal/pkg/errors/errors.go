package errors

import "errors"

// Custom application errors
var (
	ErrMedicineNotFound  = errors.New("medicine not found")
	ErrInvalidTime       = errors.New("invalid alarm time") // hour outside [1,12] or minute outside [0,59]
	ErrDatabaseOperation = errors.New("database operation failed")
	ErrScheduling        = errors.New("failed to register wake-up")
	ErrAlertNotActive    = errors.New("no active alert for this alarm")
)
