package models

import "time"

// SendRequest запрос на отправку кода
type SendRequest struct {
	Phone string `json:"phone"`
}

// SendResponse ответ после отправки кода
type SendResponse struct {
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ConfirmRequest запрос на подтверждение телефона
type ConfirmRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// ConfirmResponse ответ после подтверждения телефона
type ConfirmResponse struct {
	Phone         string    `json:"phone"`
	Verified      bool      `json:"verified"`
	VerifiedUntil time.Time `json:"verifiedUntil"`
}
