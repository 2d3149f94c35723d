package service_test

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	errDB    = errors.New("connection refused")
	eventID  = uuid.MustParse("a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11")
)

func clock() time.Time { return fixedNow }

func strPtr(s string) *string { return &s }
