package models

import "time"

// User представляет пользователя в системе
type User struct {
	ID           string    `json:"id"`            // UUID пользователя
	Username     string    `json:"username"`      // уникальный username
	PasswordHash string    `json:"password_hash"` // hex-кодированный argon2id хеш пароля
	PasswordSalt string    `json:"password_salt"` // base64 encoded salt (32 bytes)
	CreatedAt    time.Time `json:"created_at"`    // время создания
}
