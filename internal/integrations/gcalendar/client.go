// Package gcalendar клиент синхронизации подтверждённых бронирований
// с Google Calendar. Access token обновляется по refresh token
// через стандартный OAuth token endpoint
package gcalendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	tokenEndpoint  = "https://oauth2.googleapis.com/token"
	eventsEndpoint = "https://www.googleapis.com/calendar/v3/calendars/%s/events"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент Google Calendar API
type Client struct {
	enabled      bool
	clientID     string
	clientSecret string
	refreshToken string
	calendarID   string
	httpClient   *http.Client
	log          Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient создает новый экземпляр клиента Google Calendar
func NewClient(enabled bool, clientID, clientSecret, refreshToken, calendarID string, timeout time.Duration, log Logger) *Client {
	return &Client{
		enabled:      enabled,
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshToken: refreshToken,
		calendarID:   calendarID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateEvent создает событие в календаре мастерской
// Возвращает ID созданного события. Вызывающая сторона трактует
// любые ошибки как best-effort: бронирование не откатывается
func (c *Client) CreateEvent(ctx context.Context, event Event) (string, error) {
	if !c.enabled {
		return "", ErrDisabled
	}

	token, err := c.token(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	endpoint := fmt.Sprintf(eventsEndpoint, url.PathEscape(c.calendarID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var created createdEvent
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("GCalendar: event created id=%s summary=%q", created.ID, event.Summary)
	return created.ID, nil
}

// token возвращает действующий access token, обновляя его при необходимости
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Минута запаса, чтобы токен не истёк в полёте
	if c.accessToken != "" && time.Now().Add(time.Minute).Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("refresh_token", c.refreshToken)
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrTokenRefresh, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrTokenRefresh, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrTokenRefresh, resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("%w: failed to decode token response: %v", ErrTokenRefresh, err)
	}

	c.accessToken = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)

	c.log.Info("GCalendar: access token refreshed, expires in %ds", token.ExpiresIn)
	return c.accessToken, nil
}
