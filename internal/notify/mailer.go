package notify

import (
	"fmt"
	"html"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"dealdesk/internal/models"
)

// Sender is satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EscalationMailer interface {
	SendOverdueCritical(deal models.Deal, overdue []models.Milestone, now time.Time) error
}

type emailService struct {
	sender Sender
	from   string
	to     string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, mailbox string) EscalationMailer {
	return NewEmailServiceWithSender(gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword), fromEmail, mailbox)
}

func NewEmailServiceWithSender(sender Sender, fromEmail, mailbox string) EscalationMailer {
	return &emailService{sender: sender, from: fromEmail, to: mailbox}
}

func (s *emailService) SendOverdueCritical(deal models.Deal, overdue []models.Milestone, now time.Time) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", fmt.Sprintf("[%s] %d overdue critical milestone(s)", deal.DealNumber, len(overdue)))

	var rows strings.Builder
	for _, ms := range overdue {
		fmt.Fprintf(&rows, "<li>%s: due %s, %d day(s) late</li>",
			html.EscapeString(ms.MilestoneName), ms.DueDate.Format(time.DateOnly), models.DaysBetween(ms.DueDate, now))
	}
	body := fmt.Sprintf(`
		<h3>Deal %s needs attention</h3>
		<p>Status: %s. Target closing: %s.</p>
		<ul>%s</ul>
	`, html.EscapeString(deal.DealNumber), deal.Status, deal.ClosingDate.Format(time.DateOnly), rows.String())
	m.SetBody("text/html", body)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("send escalation for %s: %w", deal.DealNumber, err)
	}
	return nil
}
