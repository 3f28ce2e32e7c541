package mail

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
	"go.uber.org/zap"
	"summercamp-backend/entity"
	"summercamp-backend/errs"
	"summercamp-backend/log"
)

type Mailer struct {
	mg     mailgun.Mailgun
	sender string
}

// New returns a Mailgun backed mailer. apiBase is empty outside tests.
func New(domain, apiKey, sender, apiBase string) *Mailer {
	mg := mailgun.NewMailgun(domain, apiKey)
	if apiBase != "" {
		mg.SetAPIBase(apiBase)
	}

	return &Mailer{mg: mg, sender: sender}
}

func receipt(p *entity.Payment) (subject, body string) {
	title := p.Title
	if title == "" {
		title = "class " + p.ClassID
	}
	subject = fmt.Sprintf("Enrollment confirmed: %s", title)
	body = fmt.Sprintf("Hi,\n\nWe received your payment of $%.2f for %s.\nTransaction: %s\n\nSee you at camp!\n",
		p.Amount, title, p.TransactionID)
	return subject, body
}

// SendReceipt mails the payer a confirmation of p.
func (m *Mailer) SendReceipt(ctx context.Context, p *entity.Payment) error {
	subject, body := receipt(p)
	msg := m.mg.NewMessage(m.sender, subject, body, p.User)

	_, id, err := m.mg.Send(ctx, msg)
	if err != nil {
		log.Logger.Error("mailgun failure", zap.Error(err), zap.String("email", p.User))
		return fmt.Errorf("%w: %v", errs.ErrMail, err)
	}
	log.Logger.Debug("receipt queued", zap.String("id", id), zap.String("email", p.User))

	return nil
}
