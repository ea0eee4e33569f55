package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"civicposts/internal/config"
)

// Mailer доставляет письма с кодами восстановления. Ошибка доставки должна
// доходить до вызывающего кода: без письма код недостижим для пользователя.
type Mailer interface {
	SendResetCode(to, code string) error
}

type SMTPMailer struct {
	cfg *config.Config
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendResetCode(to, code string) error {
	subject := "Восстановление пароля"
	body := fmt.Sprintf(
		"Здравствуйте!\r\n\r\n"+
			"Вы запросили восстановление пароля на нашем сайте.\r\n\r\n"+
			"Ваш код подтверждения: %s\r\n\r\n"+
			"Код действителен в течение 15 минут.\r\n\r\n"+
			"Если вы не запрашивали восстановление пароля, просто проигнорируйте это письмо.\r\n\r\n"+
			"С уважением,\r\nКоманда сайта\r\n",
		code)

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.cfg.SMTP.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTP.Host, m.cfg.SMTP.Port)

	var auth smtp.Auth
	if m.cfg.SMTP.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTP.Username, m.cfg.SMTP.Password, m.cfg.SMTP.Host)
	}

	err := smtp.SendMail(addr, auth, m.cfg.SMTP.From, []string{to}, []byte(msg.String()))
	if err != nil {
		return fmt.Errorf("ошибка отправки email: %w", err)
	}

	return nil
}
