package domain

import (
	"errors"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUnknown        = errors.New("unknown error")

	// ErrStoreTimeout запрос к хранилищу не уложился в таймаут.
	ErrStoreTimeout = errors.New("store timeout")
	// ErrStoreNotConfigured хранилище не сконфигурировано (нет строки подключения). Не путать с пустым результатом.
	ErrStoreNotConfigured = errors.New("store is not configured")
	// ErrInvalidArgument нарушение контракта вызова.
	ErrInvalidArgument = errors.New("invalid argument")
)
