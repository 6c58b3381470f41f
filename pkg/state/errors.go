package state

import "errors"

var (
	// ErrInvalidAmount indicates a non-positive intake amount.
	ErrInvalidAmount = errors.New("intake amount must be positive")

	// ErrInvalidSetting indicates a non-positive goal or increment, or an empty display name.
	ErrInvalidSetting = errors.New("invalid participant setting")

	// ErrAlreadyRegistered indicates a registration attempt against an active challenge.
	ErrAlreadyRegistered = errors.New("challenge already registered")

	// ErrNotRegistered indicates an operation that needs an active challenge.
	ErrNotRegistered = errors.New("challenge not registered")

	// ErrUnknownParticipant indicates a participant id other than A or B.
	ErrUnknownParticipant = errors.New("unknown participant")

	// ErrInvalidDate indicates a calendar date that is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid calendar date")
)
