package mailer

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	texttemplate "text/template"
	"time"

	"github.com/wneessen/go-mail"
)

type Template string

const (
	TemplateInvitation Template = "invitation"
	TemplateWelcome    Template = "welcome"
)

var ErrUnknownTemplate = errors.New("unknown email template")

//go:embed templates/*
var templateFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.New("").Option("missingkey=zero").ParseFS(templateFS, "templates/*.html"))
	textTemplates = texttemplate.Must(texttemplate.New("").Option("missingkey=zero").ParseFS(templateFS, "templates/*.txt"))
)

var subjects = map[Template]string{
	TemplateInvitation: "You're invited to join {{.workspace_name}} on Kinnected",
	TemplateWelcome:    "Welcome to Kinnected",
}

type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Render fills a named template. Missing keys render empty.
func Render(tpl Template, to string, data map[string]string) (Email, error) {
	subject, ok := subjects[tpl]
	if !ok {
		return Email{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, tpl)
	}

	var subj, html, text bytes.Buffer
	st, err := texttemplate.New("subject").Option("missingkey=zero").Parse(subject)
	if err != nil {
		return Email{}, fmt.Errorf("parsing subject: %w", err)
	}
	if err := st.Execute(&subj, data); err != nil {
		return Email{}, fmt.Errorf("rendering subject: %w", err)
	}
	if err := htmlTemplates.ExecuteTemplate(&html, string(tpl)+".html", data); err != nil {
		return Email{}, fmt.Errorf("rendering html body: %w", err)
	}
	if err := textTemplates.ExecuteTemplate(&text, string(tpl)+".txt", data); err != nil {
		return Email{}, fmt.Errorf("rendering text body: %w", err)
	}

	return Email{To: to, Subject: subj.String(), HTML: html.String(), Text: text.String()}, nil
}

type Sender interface {
	Send(ctx context.Context, email Email) error
}

type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

type smtpSender struct {
	cfg Config
}

func NewSender(cfg Config) (Sender, error) {
	if cfg.Host == "" || cfg.FromEmail == "" {
		return nil, fmt.Errorf("smtp host and from address are required")
	}
	return &smtpSender{cfg: cfg}, nil
}

func (s *smtpSender) Send(ctx context.Context, email Email) error {
	msg, err := s.buildMessage(email)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(30 * time.Second),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password))
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}

	start := time.Now()
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	slog.InfoContext(ctx, "email sent",
		"subject", email.Subject,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (s *smtpSender) buildMessage(email Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.FromEmail); err != nil {
		return nil, fmt.Errorf("setting from address: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("setting recipient: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetMessageID()
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, email.Text)
	if email.HTML != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	}
	return msg, nil
}
