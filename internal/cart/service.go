package cart

import (
	"context"

	"github.com/google/uuid"

	pkgerrors "github.com/zenskecarape/storefront-api/pkg/errors"
	"github.com/zenskecarape/storefront-api/pkg/logger"
)

// Service runs cart mutations against the repository. Every mutation loads
// the cart, applies the change and writes the whole cart back.
type Service struct {
	repo Repository
	logg *logger.Logger
}

func NewService(repo Repository, logg *logger.Logger) *Service {
	return &Service{repo: repo, logg: logg}
}

// NewToken mints a cart token for a first-time shopper.
func NewToken() string {
	return uuid.NewString()
}

// Get returns the cart for the token, empty if none exists.
func (s *Service) Get(ctx context.Context, token string) (Cart, error) {
	c, err := s.repo.Load(ctx, token)
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}
	return c, nil
}

// Add puts an item in the cart, merging into an existing line when the same
// product and variant is already there.
func (s *Service) Add(ctx context.Context, token string, item LineItem) (Cart, Outcome, error) {
	if item.ProductID == "" {
		return Cart{}, "", pkgerrors.New(pkgerrors.CodeValidation, "productId is required")
	}
	c, err := s.Get(ctx, token)
	if err != nil {
		return Cart{}, "", err
	}
	outcome := c.add(item)
	if err := s.save(ctx, token, c); err != nil {
		return Cart{}, "", err
	}
	return c, outcome, nil
}

// SetQuantity updates a line's quantity. Zero or below removes the line.
func (s *Service) SetQuantity(ctx context.Context, token string, ref ItemRef, quantity int) (Cart, error) {
	c, err := s.Get(ctx, token)
	if err != nil {
		return Cart{}, err
	}
	c.setQuantity(ref, quantity)
	if err := s.save(ctx, token, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// Remove drops a line from the cart.
func (s *Service) Remove(ctx context.Context, token string, ref ItemRef) (Cart, error) {
	c, err := s.Get(ctx, token)
	if err != nil {
		return Cart{}, err
	}
	c.remove(ref)
	if err := s.save(ctx, token, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, token string) error {
	if err := s.repo.Delete(ctx, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
	}
	return nil
}

func (s *Service) save(ctx context.Context, token string, c Cart) error {
	if err := s.repo.Save(ctx, token, c); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return nil
}
