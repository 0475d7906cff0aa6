package errors

import "fmt"

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrEmptyMessage       = fmt.Errorf("message text is empty")
	ErrMessageTooLong     = fmt.Errorf("message text exceeds maximum length")
	ErrMissingUserID      = fmt.Errorf("user id is missing")
	ErrSelfMessage        = fmt.Errorf("sender and recipient are the same user")
	ErrDailyLimitExceeded = fmt.Errorf("daily request limit reached")
)
