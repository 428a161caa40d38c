package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены
	// (нет викторины в курсе, нет кодировщика для формата).
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется, когда нет действующей сессии хоста.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда пользователь не видит викторину или курс.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConfiguration означает, что запросу не хватает обязательного контекста
	// (например, нет courseid) или схема хоста недоступна.
	ErrConfiguration = errors.New("configuration error")

	// ErrEmptyResult означает, что в викторине нет вопросов для экспорта.
	ErrEmptyResult = errors.New("no questions available for export")

	// ErrEncoding означает, что кодировщик формата не смог сформировать файл.
	ErrEncoding = errors.New("export file not generated")
)
