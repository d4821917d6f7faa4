// Package smtp отправляет письма через SMTP-сервер с STARTTLS и PLAIN-аутентификацией.
package smtp

import "io"

// Client минимальный набор команд SMTP-сессии.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface открывает аутентифицированную SMTP-сессию.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
