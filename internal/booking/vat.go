package booking

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kontor-dev/kontor/internal/accounts"
	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/ledger"
	"github.com/kontor-dev/kontor/internal/model"
)

var hundred = decimal.NewFromInt(100)

// VatAmount returns the VAT contained in a gross amount at percentage,
// rounded half-to-even to cents. It has the sign of gross.
func VatAmount(gross decimal.Decimal, percentage int) decimal.Decimal {
	net := gross.Mul(hundred).Div(hundred.Add(decimal.NewFromInt(int64(percentage))))
	return gross.Sub(net).RoundBank(2)
}

// VatSummary counts what AutoBookVat did.
type VatSummary struct {
	Booked  int // entries that got a VAT booking
	Skipped int // entries that already had one
	Zero    int // entries with a zero value
}

// AutoBookVat books the VAT share of every journal entry: inflows to vatIn,
// outflows to vatOut, both as positive amounts. Entries that already have a
// booking on either VAT account are skipped, so running it again books nothing.
// All bookings are written in one transaction.
func (a *Allocator) AutoBookVat(ctx context.Context, percentage int, vatIn, vatOut string) (VatSummary, error) {
	if percentage < 0 {
		return VatSummary{}, fmt.Errorf("VAT percentage %d is negative: %w", percentage, apperrors.ErrValidation)
	}

	var summary VatSummary
	err := a.store.InTx(ctx, func(tx *ledger.Store) error {
		summary = VatSummary{}

		accts := accounts.NewService(tx, a.logger)
		inAcct, err := accts.Resolve(ctx, vatIn)
		if err != nil {
			return fmt.Errorf("VAT in account: %w", err)
		}
		outAcct, err := accts.Resolve(ctx, vatOut)
		if err != nil {
			return fmt.Errorf("VAT out account: %w", err)
		}

		vatBookings, err := tx.ListBookings(ctx, ledger.BookingQuery{AccountIDs: []int64{inAcct.ID, outAcct.ID}})
		if err != nil {
			return err
		}
		done := make(map[int64]bool, len(vatBookings))
		for _, b := range vatBookings {
			done[b.JournalEntryID] = true
		}

		entries, err := tx.ListJournalEntries(ctx)
		if err != nil {
			return err
		}

		for _, e := range entries {
			if done[e.ID] {
				a.logger.Debug("VAT already booked", "journal_entry_id", e.ID)
				summary.Skipped++
				continue
			}

			var acct model.Account
			var value decimal.Decimal
			switch e.Value.Sign() {
			case 1:
				acct, value = inAcct, VatAmount(e.Value, percentage)
			case -1:
				acct, value = outAcct, VatAmount(e.Value, percentage).Neg()
			default:
				summary.Zero++
				continue
			}

			if _, err := tx.CreateBooking(ctx, model.Booking{
				AccountID:      acct.ID,
				JournalEntryID: e.ID,
				Value:          value,
				Comment:        fmt.Sprintf("VAT %d%%", percentage),
			}); err != nil {
				return err
			}
			a.logger.Debug("VAT booked", "journal_entry_id", e.ID, "account", acct.Name, "value", value.StringFixed(2))
			summary.Booked++
		}
		return nil
	})
	if err != nil {
		return VatSummary{}, err
	}

	a.logger.Info("VAT booked", "percentage", percentage, "booked", summary.Booked, "skipped", summary.Skipped)
	return summary, nil
}
