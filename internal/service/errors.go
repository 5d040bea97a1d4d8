package service

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrAlreadyPaid         = errors.New("job is already paid")
	ErrInsufficientFunds   = errors.New("Not enough money in your balance!")
	ErrDepositExceedsLimit = errors.New("deposit exceeds the allowed limit")
)
