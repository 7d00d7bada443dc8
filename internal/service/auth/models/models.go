package models

import "time"

// Account учетная запись сотрудника из конфигурации
type Account struct {
	Username     string
	PasswordHash string // bcrypt
	Barber       string // пусто для менеджера
}

// LoginRequest запрос на вход сотрудника
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse ответ с открытой сессией
type LoginResponse struct {
	SessionID string    `json:"sessionId"`
	Username  string    `json:"username"`
	Barber    string    `json:"barber,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}
