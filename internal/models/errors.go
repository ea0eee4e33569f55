package models

import "errors"

var (
	ErrNotFound     = errors.New("не найдено")
	ErrForbidden    = errors.New("доступ запрещен")
	ErrUnauthorized = errors.New("требуется авторизация")
	ErrConflict     = errors.New("конфликт данных")
	ErrValidation   = errors.New("неверные данные")
	ErrGateway      = errors.New("внешний сервис недоступен")

	ErrInvalidCode      = errors.New("неверный код")
	ErrExpiredCode      = errors.New("срок действия кода истёк")
	ErrUsedCode         = errors.New("код уже использован")
	ErrPasswordMismatch = errors.New("пароли не совпадают")
	ErrDispatchFailed   = errors.New("не удалось отправить письмо")
)
