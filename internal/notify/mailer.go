package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridMailer struct {
	client     *sendgrid.Client
	from       *mail.Email
	templateID string
}

func NewSendGridMailer(apiKey, from, templateID string) *SendGridMailer {
	return &SendGridMailer{
		client:     newSendGridClient(apiKey, ""),
		from:       mail.NewEmail("", from),
		templateID: templateID,
	}
}

// newSendGridClient targets host, or the public API when host is empty.
func newSendGridClient(apiKey, host string) *sendgrid.Client {
	req := sendgrid.GetRequest(apiKey, "/v3/mail/send", host)
	req.Method = "POST"
	return &sendgrid.Client{Request: req}
}

func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail(msg.ToName, msg.To))
	p.SetDynamicTemplateData("title", msg.Title)
	p.SetDynamicTemplateData("message", msg.Body)
	if len(msg.Items) > 0 {
		p.SetDynamicTemplateData("items", msg.Items)
	}

	v3 := mail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.SetTemplateID(m.templateID)
	v3.AddPersonalizations(p)

	resp, err := m.client.SendWithContext(ctx, v3)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	Log *slog.Logger
}

func (m LogMailer) Send(_ context.Context, msg Message) error {
	m.Log.Info("notification_logged", "to", msg.To, "title", msg.Title, "items", len(msg.Items))
	return nil
}
