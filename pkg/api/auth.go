package api

// AuthRequest представляет запрос на валидацию доступа к web card
type AuthRequest struct {
	InitData    string `json:"initData"`    // подписанный хостом payload (Telegram initData)
	CardID      string `json:"cardId"`      // идентификатор карточки/бота
	AccessToken string `json:"accessToken"` // одноразовый токен из ссылки бота
}

// TelegramUser представляет профиль пользователя, подтвержденный бэкендом
type TelegramUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
	IsPremium    bool   `json:"is_premium,omitempty"`
}

// AuthResponse представляет современный ответ на успешную аутентификацию
type AuthResponse struct {
	Data AuthResponseData `json:"data"`
}

// AuthResponseData содержит полезную нагрузку успешного ответа
type AuthResponseData struct {
	Token string       `json:"token"` // bearer token сессии
	User  TelegramUser `json:"user"`
}

// LegacyAuthResponse представляет старый (плоский) формат успешного ответа
type LegacyAuthResponse struct {
	SessionToken string       `json:"sessionToken"`
	ExpiresAt    string       `json:"expiresAt"` // RFC 3339
	User         TelegramUser `json:"user"`
	CardID       string       `json:"cardId"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"` // описание причины отказа
}

// Known backend rejection reasons. Anything else is reported verbatim
// behind a generic prefix.
const (
	ReasonTokenExpired   = "Token expired - request a new one from the bot"
	ReasonNotAuthorized  = "User not authorized for this card"
	ReasonCardInactive   = "Card not found or inactive"
	ReasonCardAtCapacity = "Maximum users reached for this card"
)

// AuthEndpointPath is the single backend endpoint used by the gate.
const AuthEndpointPath = "/web-cards/auth/telegram"
