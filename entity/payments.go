package entity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	migrate "github.com/dentalops/dispatch-migrate"
	"github.com/dentalops/dispatch-migrate/idmap"
	"github.com/dentalops/dispatch-migrate/source"
)

// Payments migrates dispatch_payment rows into the payments table,
// converting decimal amounts to integer cents.
type Payments struct{}

func (Payments) Entity() migrate.Entity { return migrate.EntityPayments }

func (Payments) Dependencies() []migrate.Entity {
	return []migrate.Entity{migrate.EntityOrders}
}

func (m Payments) Run(ctx context.Context, d *Deps) (migrate.Report, error) {
	t, err := Table(m.Entity())
	if err != nil {
		return migrate.Report{}, err
	}
	existing, err := d.Lookup.LegacyIDSet(ctx, t.Table, t.LegacyColumn)
	if err != nil {
		return migrate.Report{}, err
	}

	l := newLoop(d, m.Entity(), t.Table)
	log := d.Log.WithField("entity", m.Entity())

	return l.run(ctx, func(ctx context.Context, after migrate.LegacyID, b *batch) error {
		rows, err := d.Source.Payments(ctx, after, d.BatchSize)
		if err != nil {
			return err
		}
		for _, r := range rows {
			id := migrate.LegacyID(r.ID)
			b.seen(id)
			if _, ok := existing[id]; ok || d.restricted(id) {
				b.skip()
				continue
			}
			row, err := paymentRow(r, d.Maps)
			if err != nil {
				b.fail()
				log.WithError(err).WithField("legacy_id", r.ID).Warn("record failed")
				continue
			}
			b.add(row)
		}
		return nil
	})
}

// paymentRow maps a legacy payment to a target row.
func paymentRow(r source.LegacyPayment, maps *idmap.Set) (map[string]any, error) {
	orderID, err := maps.UUID(migrate.EntityOrders, migrate.LegacyID(r.OrderID))
	if err != nil {
		return nil, fmt.Errorf("payment %d: %w", r.ID, err)
	}
	status, err := PaymentStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("payment %d: %w", r.ID, err)
	}
	cents, err := amountToCents(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("payment %d: %w", r.ID, err)
	}

	return map[string]any{
		"id":                uuid.NewString(),
		"order_id":          orderID,
		"amount_cents":      cents,
		"method":            nullString(r.Method),
		"status":            status,
		"paid_at":           nullTime(r.PaidAt),
		"legacy_payment_id": r.ID,
		"created_at":        r.Created,
	}, nil
}
