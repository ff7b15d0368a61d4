package models

import "github.com/iudanet/webcards/pkg/api"

// UserProfile представляет профиль пользователя Telegram, подтвержденный бэкендом.
// Профиль неизменяемый: при повторной аутентификации заменяется целиком.
type UserProfile struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
	IsPremium    bool   `json:"is_premium,omitempty"`
}

// UserProfileFromAPI конвертирует wire-представление пользователя в доменную модель
func UserProfileFromAPI(u api.TelegramUser) UserProfile {
	return UserProfile{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		LanguageCode: u.LanguageCode,
		PhotoURL:     u.PhotoURL,
		IsPremium:    u.IsPremium,
	}
}
