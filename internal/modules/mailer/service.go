package mailer

import (
	"context"
	"fmt"
	"log"

	"trailhub/internal/config"

	"gopkg.in/gomail.v2"
)

const (
	defaultDashboardURL = "https://app.trailhub.io/organizer/login"
	defaultSupportEmail = "support@trailhub.io"
)

// Service implements the two admin-gated callable mail actions. The
// SMTP credentials arrive as an injected config; a missing config is
// detected per call and surfaced as ErrNotConfigured, after the
// authorization and validation checks.
type Service struct {
	cfg       config.SMTP
	admins    AdminRegistry
	transport Transport
}

func NewService(cfg config.SMTP, admins AdminRegistry, transport Transport) *Service {
	if transport == nil {
		transport = &smtpTransport{cfg: cfg}
	}
	return &Service{cfg: cfg, admins: admins, transport: transport}
}

// SendApprovalEmail sends the organizer-approved email. callerID is the
// authenticated caller's identity; empty means unauthenticated.
func (s *Service) SendApprovalEmail(ctx context.Context, callerID string, req ApprovalEmailRequest) (string, error) {
	if err := s.authorize(ctx, callerID); err != nil {
		return "", err
	}
	if req.OrganizerEmail == "" || req.OrganizerName == "" {
		return "", ErrInvalidArgument
	}
	if !s.cfg.Configured() {
		log.Printf("mailer approval email blocked: smtp not configured")
		return "", ErrNotConfigured
	}

	html, text, err := renderApproval(templateData{
		OrganizerName:    req.OrganizerName,
		OrganizerEmail:   req.OrganizerEmail,
		OrganizationName: req.OrganizationName,
		DashboardURL:     defaultDashboardURL,
		SupportEmail:     defaultSupportEmail,
	})
	if err != nil {
		return "", fmt.Errorf("render approval email: %w", err)
	}

	msg := &Message{
		To:      req.OrganizerEmail,
		From:    s.cfg.From,
		Subject: approvalSubject,
		HTML:    html,
		Text:    text,
	}
	if err := s.transport.Send(msg); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("mailer approval email sent to=%s", req.OrganizerEmail)
	return "Approval email sent successfully", nil
}

// SendRejectionEmail sends the application-rejected email; it
// additionally requires a rejection reason.
func (s *Service) SendRejectionEmail(ctx context.Context, callerID string, req RejectionEmailRequest) (string, error) {
	if err := s.authorize(ctx, callerID); err != nil {
		return "", err
	}
	if req.OrganizerEmail == "" || req.OrganizerName == "" || req.RejectionReason == "" {
		return "", ErrInvalidArgument
	}
	if !s.cfg.Configured() {
		log.Printf("mailer rejection email blocked: smtp not configured")
		return "", ErrNotConfigured
	}

	html, text, err := renderRejection(templateData{
		OrganizerName:    req.OrganizerName,
		OrganizerEmail:   req.OrganizerEmail,
		OrganizationName: req.OrganizationName,
		RejectionReason:  req.RejectionReason,
		SupportEmail:     defaultSupportEmail,
	})
	if err != nil {
		return "", fmt.Errorf("render rejection email: %w", err)
	}

	msg := &Message{
		To:      req.OrganizerEmail,
		From:    s.cfg.From,
		Subject: rejectionSubject,
		HTML:    html,
		Text:    text,
	}
	if err := s.transport.Send(msg); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("mailer rejection email sent to=%s", req.OrganizerEmail)
	return "Rejection email sent successfully", nil
}

func (s *Service) authorize(ctx context.Context, callerID string) error {
	if callerID == "" {
		return ErrUnauthenticated
	}

	ok, err := s.admins.Exists(ctx, callerID)
	if err != nil {
		return fmt.Errorf("admin lookup: %w", err)
	}
	if !ok {
		return ErrPermissionDenied
	}
	return nil
}

type smtpTransport struct {
	cfg config.SMTP
}

func (t *smtpTransport) Send(m *Message) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Text)
	msg.AddAlternative("text/html", m.HTML)

	d := gomail.NewDialer(t.cfg.Host, t.cfg.Port, t.cfg.Username, t.cfg.Password)
	return d.DialAndSend(msg)
}
