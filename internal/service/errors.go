package service

import "errors"

var (
	// ErrEmailTaken: email уже зарегистрирован.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials: неизвестный email или неверный пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound: запись или пользователь не найдены (в том числе чужая запись).
	ErrNotFound = errors.New("not found")
	// ErrNoFieldsToUpdate: запрос на обновление профиля без полей.
	ErrNoFieldsToUpdate = errors.New("no valid fields to update")
)
