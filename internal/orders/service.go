package orders

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/zenskecarape/storefront-api/api/validators"
	"github.com/zenskecarape/storefront-api/internal/cart"
	"github.com/zenskecarape/storefront-api/internal/mailer"
	"github.com/zenskecarape/storefront-api/pkg/db"
	"github.com/zenskecarape/storefront-api/pkg/db/models"
	pkgerrors "github.com/zenskecarape/storefront-api/pkg/errors"
	"github.com/zenskecarape/storefront-api/pkg/logger"
	"github.com/zenskecarape/storefront-api/pkg/metrics"
)

// Storefront-facing messages. The site audience is Serbian.
const (
	MsgSuccess       = "Porudžbina je uspešno poslata!"
	MsgMissingFields = "Molimo popunite sva obavezna polja."
	MsgInvalidEmail  = "Email adresa nije ispravna."
	MsgEmptyCart     = "Korpa je prazna."
	MsgSendFailed    = "Došlo je do greške prilikom slanja porudžbine. Pokušajte ponovo."
)

// Customer is the delivery and contact block of an order form.
type Customer struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Note       string `json:"note"`
}

// FullName joins the name parts for archival and the order email.
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Submission is a full order form payload. The client sends its own totals
// but they are advisory only; the service recomputes both currencies from
// the item snapshots.
type Submission struct {
	Customer Customer        `json:"customer"`
	Items    []cart.LineItem `json:"items"`
	TotalRSD float64         `json:"totalRSD,omitempty"`
	TotalEUR float64         `json:"totalEUR,omitempty"`
}

// Result reports the accepted order back to the storefront.
type Result struct {
	Reference string `json:"reference"`
}

// Service accepts order submissions.
type Service interface {
	Submit(ctx context.Context, sub Submission) (Result, error)
}

type service struct {
	db       *db.Client
	repo     Repository
	mail     mailer.Mailer
	validate *validator.Validate
	metrics  *metrics.StorefrontMetrics
	logg     *logger.Logger
}

// NewService wires order submission dependencies.
func NewService(dbc *db.Client, repo Repository, mail mailer.Mailer, m *metrics.StorefrontMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders repository required")
	}
	if mail == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mailer required")
	}
	return &service{
		db:       dbc,
		repo:     repo,
		mail:     mail,
		validate: validator.New(),
		metrics:  m,
		logg:     logg,
	}, nil
}

func (s *service) Submit(ctx context.Context, sub Submission) (Result, error) {
	if err := s.validateSubmission(&sub); err != nil {
		return Result{}, err
	}

	contents := cart.Cart{Items: sub.Items}
	totalRSD := contents.TotalRSD()
	var totalEUR *decimal.Decimal
	if eur := contents.TotalEUR(); !eur.IsZero() {
		totalEUR = &eur
	}

	order := &models.Order{
		CustomerName:  sub.Customer.FullName(),
		CustomerEmail: sub.Customer.Email,
		CustomerPhone: sub.Customer.Phone,
		Address:       sub.Customer.Address,
		City:          sub.Customer.City,
		PostalCode:    sub.Customer.PostalCode,
		Note:          sub.Customer.Note,
		TotalRSD:      totalRSD,
		TotalEUR:      totalEUR,
		ItemCount:     contents.TotalItems(),
		Items:         buildItems(sub.Items),
	}

	// References are short, so a collision is unlikely but possible.
	// Regenerate and retry when the unique index rejects one.
	var createErr error
	for attempt := 0; attempt < 3; attempt++ {
		order.Reference = newReference()
		createErr = s.withTx(ctx, func(tx *gorm.DB) error {
			return s.repo.WithTx(tx).Create(ctx, order)
		})
		if createErr == nil || !db.IsUniqueViolation(createErr, "idx_orders_reference") {
			break
		}
	}
	if createErr != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, MsgSendFailed)
	}

	ctx = s.logg.WithOrderRef(ctx, order.Reference)
	if err := s.mail.Send(ctx, buildEmail(order)); err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, MsgSendFailed)
	}
	if err := s.repo.MarkEmailSent(ctx, order.ID); err != nil {
		s.logg.Warn(ctx, "marking order as sent failed")
	}

	s.metrics.IncOrderSubmitted()
	s.logg.Info(ctx, "order accepted")
	return Result{Reference: order.Reference}, nil
}

// withTx runs fn inside a database transaction when a database client is
// wired. Repositories backed by something else run fn directly.
func (s *service) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.WithTx(ctx, fn)
}

func (s *service) validateSubmission(sub *Submission) error {
	c := &sub.Customer
	c.FirstName = validators.SanitizeString(c.FirstName, 100)
	c.LastName = validators.SanitizeString(c.LastName, 100)
	c.Email = validators.SanitizeString(c.Email, 320)
	c.Phone = validators.SanitizeString(c.Phone, 50)
	c.Address = validators.SanitizeString(c.Address, 300)
	c.City = validators.SanitizeString(c.City, 100)
	c.PostalCode = validators.SanitizeString(c.PostalCode, 20)
	c.Note = validators.SanitizeString(c.Note, 2000)

	if c.FirstName == "" || c.LastName == "" || c.Email == "" || c.Phone == "" || c.Address == "" || c.City == "" || c.PostalCode == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, MsgMissingFields)
	}
	if err := s.validate.Var(c.Email, "email"); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, MsgInvalidEmail)
	}
	if len(sub.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, MsgEmptyCart)
	}
	for _, item := range sub.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, MsgMissingFields)
		}
	}
	return nil
}

func newReference() string {
	return "ZC-" + strings.ToUpper(uuid.NewString()[:8])
}

func buildItems(items []cart.LineItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		row := models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Slug:      item.Slug,
			UnitRSD:   item.PriceRSD,
			UnitEUR:   item.PriceEUR,
			Quantity:  item.Quantity,
		}
		if item.Color != nil {
			row.ColorName = item.Color.Name
		}
		if item.Size != nil {
			row.SizeName = item.Size.Name
		}
		out = append(out, row)
	}
	return out
}

func buildEmail(order *models.Order) mailer.Message {
	var text strings.Builder
	var rows strings.Builder

	fmt.Fprintf(&text, "Nova porudžbina %s\n\n", order.Reference)
	fmt.Fprintf(&text, "Kupac: %s\nEmail: %s\nTelefon: %s\n", order.CustomerName, order.CustomerEmail, order.CustomerPhone)
	fmt.Fprintf(&text, "Adresa: %s, %s %s\n", order.Address, order.PostalCode, order.City)
	if order.Note != "" {
		fmt.Fprintf(&text, "Napomena: %s\n", order.Note)
	}
	text.WriteString("\nArtikli:\n")

	for _, item := range order.Items {
		variant := ""
		if item.ColorName != "" {
			variant += ", " + item.ColorName
		}
		if item.SizeName != "" {
			variant += ", " + item.SizeName
		}
		unit := "-"
		if item.UnitRSD != nil {
			unit = item.UnitRSD.StringFixed(2) + " RSD"
		}
		fmt.Fprintf(&text, "- %s%s x%d (%s)\n", item.Name, variant, item.Quantity, unit)
		fmt.Fprintf(&rows, "<tr><td>%s%s</td><td>%d</td><td>%s</td></tr>",
			html.EscapeString(item.Name), html.EscapeString(variant), item.Quantity, html.EscapeString(unit))
	}
	fmt.Fprintf(&text, "\nUkupno: %s RSD\n", order.TotalRSD.StringFixed(2))
	if order.TotalEUR != nil {
		fmt.Fprintf(&text, "Ukupno: %s EUR\n", order.TotalEUR.StringFixed(2))
	}
	text.WriteString("Dostava: besplatna\n")

	totalEURRow := ""
	if order.TotalEUR != nil {
		totalEURRow = fmt.Sprintf("<br>Ukupno: %s EUR", order.TotalEUR.StringFixed(2))
	}

	htmlBody := fmt.Sprintf(
		`<h2>Nova porudžbina %s</h2>
<p><strong>Kupac:</strong> %s<br>
<strong>Email:</strong> %s<br>
<strong>Telefon:</strong> %s<br>
<strong>Adresa:</strong> %s, %s %s</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>Artikal</th><th>Količina</th><th>Cena</th></tr>%s</table>
<p><strong>Ukupno: %s RSD</strong>%s<br>Dostava: besplatna</p>`,
		html.EscapeString(order.Reference),
		html.EscapeString(order.CustomerName),
		html.EscapeString(order.CustomerEmail),
		html.EscapeString(order.CustomerPhone),
		html.EscapeString(order.Address),
		html.EscapeString(order.PostalCode),
		html.EscapeString(order.City),
		rows.String(),
		order.TotalRSD.StringFixed(2),
		totalEURRow,
	)

	return mailer.Message{
		Kind:     "order",
		Subject:  fmt.Sprintf("Nova porudžbina %s - %s", order.Reference, order.CustomerName),
		TextPart: text.String(),
		HTMLPart: htmlBody,
		ReplyTo:  order.CustomerEmail,
	}
}
