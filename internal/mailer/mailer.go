package mailer

import (
	"context"

	mailjet "github.com/mailjet/mailjet-apiv3-go/v4"

	"github.com/zenskecarape/storefront-api/pkg/config"
	pkgerrors "github.com/zenskecarape/storefront-api/pkg/errors"
	"github.com/zenskecarape/storefront-api/pkg/logger"
	"github.com/zenskecarape/storefront-api/pkg/metrics"
)

// Message is one transactional email. Kind labels the delivery metrics.
type Message struct {
	Kind     string
	Subject  string
	TextPart string
	HTMLPart string
	ReplyTo  string
}

// Mailer delivers transactional email to the shop inbox.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// MailjetMailer sends through the Mailjet v3.1 API. Sender and receiver are
// fixed by configuration; the shopper only ever appears as reply-to.
type MailjetMailer struct {
	client   *mailjet.Client
	sender   string
	receiver string
	metrics  *metrics.StorefrontMetrics
	logg     *logger.Logger
}

func New(cfg config.MailConfig, m *metrics.StorefrontMetrics, logg *logger.Logger) *MailjetMailer {
	return &MailjetMailer{
		client:   mailjet.NewMailjetClient(cfg.APIKey, cfg.SecretKey),
		sender:   cfg.SenderEmail,
		receiver: cfg.ReceiverEmail,
		metrics:  m,
		logg:     logg,
	}
}

func (m *MailjetMailer) Send(ctx context.Context, msg Message) error {
	info := mailjet.InfoMessagesV31{
		From: &mailjet.RecipientV31{
			Email: m.sender,
			Name:  "Ženske Čarape",
		},
		To: &mailjet.RecipientsV31{
			{Email: m.receiver},
		},
		Subject:  msg.Subject,
		TextPart: msg.TextPart,
		HTMLPart: msg.HTMLPart,
	}
	if msg.ReplyTo != "" {
		info.ReplyTo = &mailjet.RecipientV31{Email: msg.ReplyTo}
	}

	messages := mailjet.MessagesV31{Info: []mailjet.InfoMessagesV31{info}}
	if _, err := m.client.SendMailV31(&messages, mailjet.WithContext(ctx)); err != nil {
		m.metrics.IncEmailFailed(msg.Kind)
		m.logg.Error(ctx, "email delivery failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sending email")
	}
	m.metrics.IncEmailSent(msg.Kind)
	return nil
}
