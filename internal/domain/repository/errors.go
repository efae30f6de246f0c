package repository

import "errors"

// ErrDuplicateReceiptNumber is returned when a receipt insert collides with
// an existing receipt_number. The random suffix makes this rare; callers
// regenerate the number and retry.
var ErrDuplicateReceiptNumber = errors.New("receipt number already exists")
