package repositories

import "errors"

// Store-agnostic error kinds. GORM implementations translate driver errors
// into these so services never depend on gorm error values.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
