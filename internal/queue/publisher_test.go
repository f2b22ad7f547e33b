package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type sentMail struct {
	to      string
	subject string
	body    string
}

type recordingMailer struct {
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func TestPublish_DisabledFallsBackToMailer(t *testing.T) {
	mail := &recordingMailer{}
	p := NewPublisher(false, "", "notifications", mail, nopLogger{})

	err := p.Publish(context.Background(), NotificationEvent{
		Type:      EventBookingCreated,
		Recipient: "ivan@example.com",
		Subject:   "Бронирование создано",
		Body:      "Ждем вас 15 сентября в 10:00",
		EntityID:  7,
	})
	require.NoError(t, err)

	// Письмо уходит напрямую, минуя брокер
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "ivan@example.com", mail.sent[0].to)
	assert.Equal(t, "Бронирование создано", mail.sent[0].subject)
	assert.Equal(t, "Ждем вас 15 сентября в 10:00", mail.sent[0].body)
}

func TestPublish_DisabledWithoutRecipient(t *testing.T) {
	mail := &recordingMailer{}
	p := NewPublisher(false, "", "notifications", mail, nopLogger{})

	err := p.Publish(context.Background(), NotificationEvent{
		Type:     EventLeaveReviewed,
		EntityID: 3,
	})
	require.NoError(t, err)
	assert.Empty(t, mail.sent)
}

func TestPublish_DisabledMailerFailure(t *testing.T) {
	mail := &recordingMailer{err: errors.New("smtp down")}
	p := NewPublisher(false, "", "notifications", mail, nopLogger{})

	err := p.Publish(context.Background(), NotificationEvent{
		Type:      EventInvoiceIssued,
		Recipient: "ivan@example.com",
		EntityID:  12,
	})
	assert.ErrorIs(t, err, ErrPublish)
}

func TestPublish_DisabledWithoutFallback(t *testing.T) {
	p := NewPublisher(false, "", "notifications", nil, nopLogger{})

	err := p.Publish(context.Background(), NotificationEvent{
		Type:      EventBookingCancelled,
		Recipient: "ivan@example.com",
		EntityID:  1,
	})
	assert.ErrorIs(t, err, ErrDisabled)
}
