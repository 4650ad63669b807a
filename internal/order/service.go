package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrValidation = errors.New("validation")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

// Place validates the request and submits it as one transaction. A request
// without line items is rejected: a header-only order would be invisible in
// the flattened listing and impossible to fulfil.
func (s *Service) Place(ctx context.Context, req PlaceOrderRequest) (int64, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return 0, fmt.Errorf("%w: customerName is required", ErrValidation)
	}
	if strings.TrimSpace(req.Address) == "" {
		return 0, fmt.Errorf("%w: address is required", ErrValidation)
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return 0, fmt.Errorf("%w: phoneNumber is required", ErrValidation)
	}
	if strings.TrimSpace(req.Email) == "" {
		return 0, fmt.Errorf("%w: email is required", ErrValidation)
	}

	total := decimal.NewFromFloat(req.TotalAmount)
	if total.IsNegative() {
		return 0, fmt.Errorf("%w: totalAmount must be >= 0", ErrValidation)
	}
	if len(req.Items) == 0 {
		return 0, fmt.Errorf("%w: at least one item is required", ErrValidation)
	}

	items := make([]Item, 0, len(req.Items))
	sum := decimal.Zero
	for i, it := range req.Items {
		if it.ID <= 0 {
			return 0, fmt.Errorf("%w: items[%d].id must be a valid product id", ErrValidation, i)
		}
		if it.Quantity <= 0 {
			return 0, fmt.Errorf("%w: items[%d].quantity must be > 0", ErrValidation, i)
		}
		price := decimal.NewFromFloat(it.Price)
		if price.IsNegative() {
			return 0, fmt.Errorf("%w: items[%d].price must be >= 0", ErrValidation, i)
		}
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		items = append(items, Item{
			ProductID: it.ID,
			Quantity:  it.Quantity,
			Price:     price.String(),
		})
	}

	// The frontend computes totalAmount itself; a mismatch is worth a log
	// line but the submitted value stays authoritative.
	if sum.Cmp(total) != 0 {
		log.Printf("[order] totalAmount mismatch: submitted=%s computed=%s", total, sum)
	}

	o := &Order{
		CustomerName: req.CustomerName,
		Address:      req.Address,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		TotalAmount:  total.String(),
		Status:       StatusPending,
	}
	return s.repo.Place(ctx, o, items)
}
