package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrPlanNotFound = errors.New("plan not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)
