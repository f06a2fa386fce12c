package email

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

type Service interface {
	SendVerification(ctx context.Context, to string, token string) error
	SendWelcome(ctx context.Context, to string, name string) error
}

type Config struct {
	Host    string
	Port    int
	User    string
	Pass    string
	From    string
	BaseURL string
}

type smtpService struct {
	dialer *gomail.Dialer
	cfg    Config
}

func NewSMTPService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		cfg:    cfg,
	}
}

func (s *smtpService) SendVerification(ctx context.Context, to string, token string) error {
	link := fmt.Sprintf("%s/api/v1/auth/verify?token=%s", s.cfg.BaseURL, token)
	body := fmt.Sprintf(
		"<p>Confirme seu email clicando no link abaixo:</p><p><a href=%q>Verificar email</a></p>",
		link,
	)
	return s.send(to, "Confirme seu email", body)
}

func (s *smtpService) SendWelcome(ctx context.Context, to string, name string) error {
	body := fmt.Sprintf("<p>Olá %s, sua conta foi criada com sucesso.</p>", name)
	return s.send(to, "Bem-vindo", body)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
