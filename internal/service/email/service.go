package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/resend/resend-go/v3"
	"github.com/rs/zerolog/log"

	"eventoria/internal/config"
	"eventoria/internal/domain"
	"eventoria/internal/pkg/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

const dateLayout = "02.01.2006 15:04"

type Service interface {
	SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error
	SendReviewEmail(ctx context.Context, toEmail, fullName, serviceName string, approved bool, feedback *string) error
	SendEventConfirmedEmail(ctx context.Context, toEmail, recipientName string, event *domain.ConfirmedEvent) error
}

type sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type service struct {
	sender sender
	config *config.Config
	loc    *time.Location
}

func NewService(cfg *config.Config) Service {
	var s sender
	if cfg.ResendAPIKey != "" {
		s = resend.NewClient(cfg.ResendAPIKey).Emails
	}
	return &service{sender: s, config: cfg, loc: cfg.Location()}
}

func render(templateName string, data any) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(toEmail, subject, templateName string, data any) error {
	html, err := render(templateName, data)
	if err != nil {
		return err
	}

	if s.sender == nil {
		log.Debug().Str("to", toEmail).Str("subject", subject).Msg("email delivery disabled, skipping")
		return nil
	}

	_, err = s.sender.Send(&resend.SendEmailRequest{
		From:    fmt.Sprintf("Eventoria <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	})
	return err
}

func (s *service) link(path string) string {
	return fmt.Sprintf("https://%s%s", s.config.Domain, path)
}

func (s *service) SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: i18n.T("email.password_reset_subject"),
		Name:  fullName,
		Link:  s.link("/reset-password?token=" + resetToken),
	}
	return s.sendEmail(toEmail, data.Title, "reset_password.html", data)
}

func (s *service) SendReviewEmail(ctx context.Context, toEmail, fullName, serviceName string, approved bool, feedback *string) error {
	status, color := "respins", "#ef4444"
	if approved {
		status, color = "aprobat", "#10b981"
	}

	data := struct {
		Title       string
		Name        string
		ServiceName string
		Status      string
		Color       string
		Feedback    string
		Link        string
	}{
		Title:       i18n.T("email.review_subject"),
		Name:        fullName,
		ServiceName: serviceName,
		Status:      status,
		Color:       color,
		Link:        s.link("/furnizor/servicii"),
	}
	if feedback != nil {
		data.Feedback = *feedback
	}
	return s.sendEmail(toEmail, data.Title, "review.html", data)
}

func (s *service) SendEventConfirmedEmail(ctx context.Context, toEmail, recipientName string, event *domain.ConfirmedEvent) error {
	data := struct {
		Title           string
		Name            string
		EventName       string
		ParticipantName string
		VendorName      string
		Location        string
		Start           string
		End             string
		Link            string
	}{
		Title:           i18n.T("email.booking_confirmed_subject"),
		Name:            recipientName,
		EventName:       event.EventName,
		ParticipantName: event.ParticipantName,
		VendorName:      event.VendorName,
		Location:        event.Location,
		Start:           event.StartAt.In(s.loc).Format(dateLayout),
		End:             event.EndAt.In(s.loc).Format(dateLayout),
		Link:            s.link("/evenimente-confirmate/" + event.ID.String()),
	}
	return s.sendEmail(toEmail, data.Title, "event_confirmed.html", data)
}
