package services

import "errors"

// Ошибки ядра; HTTP-слой маппит их на статусы ответов
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)
