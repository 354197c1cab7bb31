package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/studiobook/booking-service/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса уведомлений. Уведомления отправляются асинхронно
// с graceful degradation: недоступность сервиса логируется, но не влияет
// на результат операции
type Client struct {
	baseURL    string
	enabled    bool
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений.
// При enabled=false все вызовы становятся no-op
func NewClient(baseURL string, timeout time.Duration, enabled bool, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		enabled: enabled,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NotifyBookingCreated отправляет уведомление о созданном бронировании
func (c *Client) NotifyBookingCreated(ctx context.Context, booking *domain.Booking, cancellationURL string) {
	if !c.enabled {
		return
	}

	event := bookingCreatedEvent{
		BookingID:       booking.ID,
		ClientName:      booking.ClientName,
		ClientEmail:     booking.ClientEmail,
		ClientPhone:     booking.ClientPhone,
		ServiceName:     booking.ServiceName,
		StartAt:         booking.StartAt.Format(time.RFC3339),
		EndAt:           booking.EndAt.Format(time.RFC3339),
		CancellationURL: cancellationURL,
	}

	go c.send("/internal/notifications/booking-created", booking.ID, event)
}

// NotifyBookingCancelled отправляет уведомление об отмене бронирования
func (c *Client) NotifyBookingCancelled(ctx context.Context, booking *domain.Booking) {
	if !c.enabled {
		return
	}

	event := bookingCancelledEvent{
		BookingID:   booking.ID,
		ClientName:  booking.ClientName,
		ClientEmail: booking.ClientEmail,
		ClientPhone: booking.ClientPhone,
		ServiceName: booking.ServiceName,
		StartAt:     booking.StartAt.Format(time.RFC3339),
	}

	go c.send("/internal/notifications/booking-cancelled", booking.ID, event)
}

// send выполняет POST в отдельной горутине. Контекст запроса не
// наследуется: завершение HTTP-запроса клиента не должно отменять
// уведомление
func (c *Client) send(path string, bookingID int64, event interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
	defer cancel()

	if err := c.post(ctx, path, event); err != nil {
		c.log.Error("Notifier unavailable, notification dropped for booking_id=%d: %v", bookingID, err)
		return
	}

	c.log.Info("Notification sent for booking_id=%d (%s)", bookingID, path)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}
