package domain

import (
	"regexp"
	"strings"
)

// Консервативная проверка адреса: непустая локальная часть, '@',
// доменные метки без пустых сегментов и обязательная конечная метка
// (отвергает "user@domain", "user@.com", "a..b").
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^.@\s]+(\.[^.@\s]+)*\.[^.@\s]+$`)

// ParseFullName разбивает полное имя по пробельным символам.
// Первый токен - имя, второй - фамилия, всё остальное склеивается
// в отчество. Недостающие части - пустые строки.
func ParseFullName(fullName string) (firstName, lastName, patronymic string) {
	parts := strings.Fields(fullName)

	if len(parts) > 0 {
		firstName = parts[0]
	}
	if len(parts) > 1 {
		lastName = parts[1]
	}
	if len(parts) > 2 {
		patronymic = strings.Join(parts[2:], " ")
	}

	return firstName, lastName, patronymic
}

// ValidateFullName требует минимум два непустых токена: имя и фамилию.
// Однословное имя отвергается, хотя ParseFullName его разобрал бы.
func ValidateFullName(fullName string) error {
	if len(strings.Fields(fullName)) < 2 {
		return ErrInvalidFullName
	}
	return nil
}

// ValidateEmail проверяет адрес по emailPattern
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}
