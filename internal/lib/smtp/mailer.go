package smtp

import (
	"fmt"
	"strings"
)

// Message одно текстовое письмо.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer отправляет письма через TransportInterface.
type Mailer struct {
	transport TransportInterface
}

// NewMailer создает Mailer.
func NewMailer(transport TransportInterface) *Mailer {
	return &Mailer{transport: transport}
}

// Send открывает сессию, передает письмо и завершает сессию.
func (m *Mailer) Send(msg Message) error {
	const op = "smtp.Send"
	if len(msg.To) == 0 {
		return fmt.Errorf("%s: no recipients", op)
	}

	client, err := m.transport.Connect()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer client.Close()

	from := m.transport.GetSMTPUser()
	if err = client.Mail(from); err != nil {
		return fmt.Errorf("%s: mail from: %w", op, err)
	}
	for _, addr := range msg.To {
		if err = client.Rcpt(addr); err != nil {
			return fmt.Errorf("%s: rcpt %s: %w", op, addr, err)
		}
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("%s: data: %w", op, err)
	}
	if _, err = wc.Write(compose(from, msg)); err != nil {
		_ = wc.Close()
		return fmt.Errorf("%s: write: %w", op, err)
	}
	if err = wc.Close(); err != nil {
		return fmt.Errorf("%s: close data: %w", op, err)
	}

	if err = client.Quit(); err != nil {
		return fmt.Errorf("%s: quit: %w", op, err)
	}
	return nil
}

func compose(from string, msg Message) []byte {
	return []byte(strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(msg.To, ", "),
		"Subject: " + msg.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		msg.Body,
	}, "\r\n"))
}
