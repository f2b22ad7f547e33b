// Package mailer отправка почтовых уведомлений через SMTP
package mailer

import (
	"fmt"
	"net/smtp"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Mailer SMTP клиент для отправки уведомлений
type Mailer struct {
	enabled  bool
	host     string
	port     int
	from     string
	password string
	log      Logger

	// send подменяется в тестах
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// New создает новый SMTP клиент
func New(enabled bool, host string, port int, from, password string, log Logger) *Mailer {
	return &Mailer{
		enabled:  enabled,
		host:     host,
		port:     port,
		from:     from,
		password: password,
		log:      log,
		send:     smtp.SendMail,
	}
}

// Send отправляет письмо с указанной темой и телом
// Возвращает ErrDisabled, если SMTP выключен в конфигурации
func (m *Mailer) Send(to, subject, body string) error {
	if !m.enabled {
		return ErrDisabled
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s", m.from, to, subject, body))

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.from, m.password, m.host)

	if err := m.send(addr, auth, m.from, []string{to}, msg); err != nil {
		m.log.Error("Mailer: failed to send email to=%s subject=%q: %v", to, subject, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	m.log.Info("Mailer: email sent to=%s subject=%q", to, subject)
	return nil
}
