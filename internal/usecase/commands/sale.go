package commands

import (
	"context"
	"errors"

	"pos-backoffice/internal/domain/item"
	"pos-backoffice/internal/domain/sale"
	"pos-backoffice/internal/infra"
	"pos-backoffice/internal/pkg/clock"
	"pos-backoffice/internal/pkg/errs"
	"pos-backoffice/internal/usecase/queries"
	"pos-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	actionSaleCompleted = "sale_completed"
)

// SaleCommands drives a sale through its draft phase and the all-or-nothing
// finalize. Drafts never reserve stock: availability on AddItem is advisory
// only, and the ledger commits inventory solely at Finalize. A failed
// finalize leaves the draft untouched and retryable.
type SaleCommands interface {
	Open(ctx context.Context, employeeID *uuid.UUID) (*queries.SaleView, error)
	AddItem(ctx context.Context, saleID uuid.UUID, itemID int64, quantity int) (*queries.SaleView, error)
	RemoveItem(ctx context.Context, saleID uuid.UUID, itemID int64) (*queries.SaleView, error)
	ApplyCoupon(ctx context.Context, saleID uuid.UUID, code string) (*queries.SaleView, error)
	Finalize(ctx context.Context, saleID uuid.UUID) (*queries.SaleView, error)
}

type saleCommandsImpl struct {
	uow      shared.UnitOfWork
	activity shared.ActivityLogger
	settings shared.EngineSettings
	clock    clock.Clock
}

func NewSaleCommands(
	uow shared.UnitOfWork,
	activity shared.ActivityLogger,
	settings shared.EngineSettings,
	clock clock.Clock,
) SaleCommands {
	return &saleCommandsImpl{
		uow:      uow,
		activity: activity,
		settings: settings,
		clock:    clock,
	}
}

func (c *saleCommandsImpl) Open(ctx context.Context, employeeID *uuid.UUID) (*queries.SaleView, error) {
	s := sale.NewSale(employeeID, c.settings.TaxMultiplier, c.clock.Now())

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Sales().Create(ctx, s)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return saleViewFromDomain(s), nil
}

func (c *saleCommandsImpl) AddItem(ctx context.Context, saleID uuid.UUID, itemID int64, quantity int) (*queries.SaleView, error) {
	if quantity <= 0 {
		return nil, errs.ErrInvalidQuantity
	}

	var result *queries.SaleView
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := findDraft(ctx, tx, saleID)
		if err != nil {
			return err
		}

		it, err := tx.Items().FindByID(ctx, itemID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrItemNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		// Advisory availability check against the current stock read. It can
		// go stale before finalize; the ledger re-checks authoritatively there.
		if !it.AvailableForSale(s.QuantityOf(itemID) + quantity) {
			return errs.Mark(&item.InsufficientStockError{ItemID: itemID, Pool: item.PoolSale}, errs.ErrInsufficientStock)
		}

		if err := s.AddLine(itemID, it.Name(), it.Price(), quantity); err != nil {
			return mapSaleDomainErr(err)
		}
		if err := tx.Sales().Save(ctx, s); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = saleViewFromDomain(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *saleCommandsImpl) RemoveItem(ctx context.Context, saleID uuid.UUID, itemID int64) (*queries.SaleView, error) {
	var result *queries.SaleView
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := findDraft(ctx, tx, saleID)
		if err != nil {
			return err
		}

		if err := s.RemoveLine(itemID); err != nil {
			return mapSaleDomainErr(err)
		}
		if err := tx.Sales().Save(ctx, s); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = saleViewFromDomain(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *saleCommandsImpl) ApplyCoupon(ctx context.Context, saleID uuid.UUID, code string) (*queries.SaleView, error) {
	var result *queries.SaleView
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := findDraft(ctx, tx, saleID)
		if err != nil {
			return err
		}

		coup, err := tx.Coupons().FindByCode(ctx, code)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrInvalidCoupon)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := coup.ValidateUsage(); err != nil {
			return errs.Mark(err, errs.ErrInvalidCoupon)
		}

		if err := s.ApplyCoupon(coup.ID(), coup.RetainedFraction()); err != nil {
			return mapSaleDomainErr(err)
		}
		if err := tx.Sales().Save(ctx, s); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = saleViewFromDomain(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Finalize reserves every line's sale-pool stock in one all-or-nothing step
// and flips the sale to its terminal state. On InsufficientStock the whole
// transaction rolls back and the draft stays available for retry.
func (c *saleCommandsImpl) Finalize(ctx context.Context, saleID uuid.UUID) (*queries.SaleView, error) {
	var (
		result     *queries.SaleView
		employeeID *uuid.UUID
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := findDraft(ctx, tx, saleID)
		if err != nil {
			return err
		}
		if s.IsEmpty() {
			return errs.ErrEmptySale
		}

		entries := make([]shared.ReservationEntry, 0, len(s.Lines()))
		for _, line := range s.Lines() {
			entries = append(entries, shared.ReservationEntry{
				ItemID:   line.ItemID,
				Pool:     item.PoolSale,
				Quantity: line.Quantity,
			})
		}
		if err := tx.Ledger().ReserveMany(ctx, entries); err != nil {
			return mapLedgerErr(err)
		}

		if err := s.MarkFinalized(c.clock.Now()); err != nil {
			return mapSaleDomainErr(err)
		}
		if err := tx.Sales().Save(ctx, s); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = saleViewFromDomain(s)
		employeeID = s.EmployeeID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if employeeID != nil {
		c.activity.Log(ctx, *employeeID, actionSaleCompleted)
	}
	return result, nil
}

func findDraft(ctx context.Context, tx shared.Tx, saleID uuid.UUID) (*sale.Sale, error) {
	s, err := tx.Sales().FindByIDForUpdate(ctx, saleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrSaleNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return s, nil
}

func mapSaleDomainErr(err error) error {
	switch {
	case errors.Is(err, sale.ErrAlreadyFinalized):
		return errs.Mark(err, errs.ErrSaleAlreadyFinalized)
	case errors.Is(err, sale.ErrEmptySale):
		return errs.Mark(err, errs.ErrEmptySale)
	case errors.Is(err, sale.ErrInvalidQuantity):
		return errs.Mark(err, errs.ErrInvalidQuantity)
	case errors.Is(err, sale.ErrLineNotFound):
		return errs.Mark(err, errs.ErrItemNotFound)
	default:
		return err
	}
}

func mapLedgerErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindInsufficientStock):
		return errs.Mark(err, errs.ErrInsufficientStock)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrItemNotFound)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

func saleViewFromDomain(s *sale.Sale) *queries.SaleView {
	bd := s.Breakdown()
	lines := make([]queries.SaleLineView, len(s.Lines()))
	for i, line := range s.Lines() {
		lines[i] = queries.SaleLineView{
			ItemID:    line.ItemID,
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		}
	}
	return &queries.SaleView{
		ID:             s.ID(),
		Lines:          lines,
		CouponID:       s.CouponID(),
		Subtotal:       bd.Subtotal,
		DiscountAmount: bd.DiscountAmount,
		TaxAmount:      bd.TaxAmount,
		Total:          bd.Total,
		EmployeeID:     s.EmployeeID(),
		Finalized:      s.Finalized(),
		CreatedAt:      s.CreatedAt(),
		FinalizedAt:    s.FinalizedAt(),
	}
}
