package host

import (
	"net"
	"net/url"
)

// URL query parameters delivered by the bot-issued link
const (
	ParamCardID      = "card_id"
	ParamAccessToken = "access_token"
)

// LaunchContext is the ephemeral per-load input of the gate. It is read
// once at startup and never persisted; the access token is a one-time code
// and must be stripped from the URL after the exchange.
type LaunchContext struct {
	InitData    string
	AccessToken string
	CardID      string
	IsLocalHost bool
}

// ResolveLaunch собирает Launch Context из данных хоста и launch URL.
// defaultCardID используется, когда card_id в URL отсутствует
// (карточка задана конфигурацией).
func ResolveLaunch(b Bridge, defaultCardID string) LaunchContext {
	launch := LaunchContext{
		InitData:    b.InitData(),
		CardID:      defaultCardID,
		IsLocalHost: b.LocalDevelopment(),
	}

	u, err := url.Parse(b.LaunchURL())
	if err != nil {
		return launch
	}

	query := u.Query()
	if cardID := query.Get(ParamCardID); cardID != "" {
		launch.CardID = cardID
	}
	launch.AccessToken = query.Get(ParamAccessToken)

	return launch
}

// StripCredentials returns the URL with the one-time access token and card
// id query parameters removed, leaving the rest of the URL intact. An
// unparseable URL is returned as-is.
func StripCredentials(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	query := u.Query()
	query.Del(ParamCardID)
	query.Del(ParamAccessToken)
	u.RawQuery = query.Encode()

	return u.String()
}

// loopbackURL reports whether the URL's hostname is a loopback address
func loopbackURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	hostname := u.Hostname()
	if hostname == "localhost" {
		return true
	}
	if ip := net.ParseIP(hostname); ip != nil {
		return ip.IsLoopback()
	}
	return false
}
