package contact

import (
	"context"
	"fmt"
	"html"

	"github.com/go-playground/validator/v10"

	"github.com/zenskecarape/storefront-api/api/validators"
	"github.com/zenskecarape/storefront-api/internal/mailer"
	"github.com/zenskecarape/storefront-api/pkg/db/models"
	pkgerrors "github.com/zenskecarape/storefront-api/pkg/errors"
	"github.com/zenskecarape/storefront-api/pkg/logger"
	"github.com/zenskecarape/storefront-api/pkg/metrics"
)

// Storefront-facing messages. The site audience is Serbian.
const (
	MsgSuccess       = "Poruka je uspešno poslata!"
	MsgMissingFields = "Molimo popunite sva obavezna polja."
	MsgInvalidEmail  = "Email adresa nije ispravna."
	MsgSendFailed    = "Došlo je do greške prilikom slanja poruke. Pokušajte ponovo."
)

// Submission is a contact form payload. Phone is optional.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Service accepts contact form submissions.
type Service interface {
	Submit(ctx context.Context, sub Submission) error
}

type service struct {
	repo     Repository
	mail     mailer.Mailer
	validate *validator.Validate
	metrics  *metrics.StorefrontMetrics
	logg     *logger.Logger
}

// NewService wires contact form dependencies.
func NewService(repo Repository, mail mailer.Mailer, m *metrics.StorefrontMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "contact repository required")
	}
	if mail == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mailer required")
	}
	return &service{
		repo:     repo,
		mail:     mail,
		validate: validator.New(),
		metrics:  m,
		logg:     logg,
	}, nil
}

func (s *service) Submit(ctx context.Context, sub Submission) error {
	sub.Name = validators.SanitizeString(sub.Name, 200)
	sub.Email = validators.SanitizeString(sub.Email, 320)
	sub.Phone = validators.SanitizeString(sub.Phone, 50)
	sub.Message = validators.SanitizeString(sub.Message, 5000)

	if sub.Name == "" || sub.Email == "" || sub.Message == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, MsgMissingFields)
	}
	if err := s.validate.Var(sub.Email, "email"); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, MsgInvalidEmail)
	}

	record := &models.ContactMessage{
		Name:    sub.Name,
		Email:   sub.Email,
		Phone:   sub.Phone,
		Message: sub.Message,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, MsgSendFailed)
	}

	if err := s.mail.Send(ctx, buildEmail(sub)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, MsgSendFailed)
	}
	if err := s.repo.MarkEmailSent(ctx, record.ID); err != nil {
		// The message went out; a stale flag is not worth failing the shopper.
		s.logg.Warn(ctx, "marking contact message as sent failed")
	}

	s.metrics.IncContactSubmitted()
	s.logg.Info(ctx, "contact message accepted")
	return nil
}

func buildEmail(sub Submission) mailer.Message {
	phone := sub.Phone
	if phone == "" {
		phone = "-"
	}
	text := fmt.Sprintf(
		"Nova poruka sa kontakt forme\n\nIme: %s\nEmail: %s\nTelefon: %s\n\nPoruka:\n%s\n",
		sub.Name, sub.Email, phone, sub.Message,
	)
	htmlBody := fmt.Sprintf(
		`<h2>Nova poruka sa kontakt forme</h2>
<p><strong>Ime:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Telefon:</strong> %s</p>
<p><strong>Poruka:</strong></p>
<p>%s</p>`,
		html.EscapeString(sub.Name),
		html.EscapeString(sub.Email),
		html.EscapeString(phone),
		html.EscapeString(sub.Message),
	)
	return mailer.Message{
		Kind:     "contact",
		Subject:  fmt.Sprintf("Nova poruka sa sajta - %s", sub.Name),
		TextPart: text,
		HTMLPart: htmlBody,
		ReplyTo:  sub.Email,
	}
}
