package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/teamtrackhq/teamtrack-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService sends workflow notification emails. Sends are
// best-effort: callers treat failures as non-fatal.
type EmailService interface {
	SendUpdateDecision(to, employeeName, reviewerName, updateTitle, decision, feedback string) error
	SendLeaveDecision(to, employeeName, reviewerName, startDate, endDate, decision string, feedback *string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type updateDecisionData struct {
	EmployeeName string
	ReviewerName string
	UpdateTitle  string
	Decision     string
	Feedback     string
}

// SendUpdateDecision notifies an employee that a daily update was
// approved or rejected.
func (s *emailServiceImpl) SendUpdateDecision(to, employeeName, reviewerName, updateTitle, decision, feedback string) error {
	data := updateDecisionData{
		EmployeeName: employeeName,
		ReviewerName: reviewerName,
		UpdateTitle:  updateTitle,
		Decision:     decision,
		Feedback:     feedback,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "update_decision.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Your daily update was %s", decision), body.String())
}

type leaveDecisionData struct {
	EmployeeName string
	ReviewerName string
	StartDate    string
	EndDate      string
	Decision     string
	Feedback     string
}

// SendLeaveDecision notifies an employee about a leave request decision.
func (s *emailServiceImpl) SendLeaveDecision(to, employeeName, reviewerName, startDate, endDate, decision string, feedback *string) error {
	data := leaveDecisionData{
		EmployeeName: employeeName,
		ReviewerName: reviewerName,
		StartDate:    startDate,
		EndDate:      endDate,
		Decision:     decision,
	}
	if feedback != nil {
		data.Feedback = *feedback
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_decision.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Your leave request was %s", decision), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Exponential backoff: 1s, 2s, 4s
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
