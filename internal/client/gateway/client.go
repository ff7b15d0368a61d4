package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iudanet/webcards/internal/client/host"
	"github.com/iudanet/webcards/internal/models"
	"github.com/iudanet/webcards/pkg/api"
)

// requestTimeout bounds the single exchange; an unbounded hang would
// strand the user on the loading screen.
const requestTimeout = 10 * time.Second

// Client представляет HTTP клиент обмена launch-данных на сессию.
// Клиент ничего не сохраняет: это чистая функция от Launch Context к
// результату, персистенция — забота вызывающего.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый клиент шлюза аутентификации
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Authenticate выполняет единственный обмен с бэкендом.
//
// Возвращает *DeniedError при непройденных предусловиях (без сетевого
// вызова) и при отказе бэкенда; транспортные сбои и неразбираемые ответы
// заворачиваются в ErrConnection. Ошибки никогда не паникуют выше.
func (c *Client) Authenticate(ctx context.Context, launch host.LaunchContext) (*models.Session, error) {
	// Предусловия: оба входа обязательны, различаем причины отказа
	if launch.InitData == "" {
		return nil, denied(CodeMissingInitData)
	}
	if launch.AccessToken == "" {
		return nil, denied(CodeMissingAccessToken)
	}

	req := api.AuthRequest{
		InitData:    launch.InitData,
		CardID:      launch.CardID,
		AccessToken: launch.AccessToken,
	}

	status, body, err := c.doRequest(ctx, http.MethodPost, api.AuthEndpointPath, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	// Не-2xx: бэкенд сообщает причину отказа в error envelope
	if status < 200 || status >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
			return nil, fmt.Errorf("%w: status %d: %s", ErrConnection, status, body)
		}
		return nil, denied(errResp.Error)
	}

	session, err := decodeSession(body, launch.CardID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	return session, nil
}

// decodeSession принимает оба формата успешного ответа: современный
// envelope {data:{token,user}} и старый плоский {sessionToken,expiresAt,...}
func decodeSession(body []byte, cardID string) (*models.Session, error) {
	var resp api.AuthResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Data.Token != "" {
		return models.SessionFromAuthResponse(&resp, cardID), nil
	}

	var legacy api.LegacyAuthResponse
	if err := json.Unmarshal(body, &legacy); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if legacy.SessionToken == "" {
		return nil, fmt.Errorf("response carries no session token")
	}

	return models.SessionFromLegacyResponse(&legacy), nil
}

// doRequest выполняет HTTP запрос и возвращает статус и тело ответа
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (int, []byte, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, respBody, nil
}
