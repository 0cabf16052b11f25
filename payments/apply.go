package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/sevadaan/donation-backend-go/models"
)

// Result reports what a confirmation attempt did. Applied is false when the
// payment had already been recorded; ResultID then carries the existing
// record's id so duplicate deliveries still get a useful answer.
type Result struct {
	Applied  bool
	ResultID string
}

// Applier turns verified payment events into durable state, exactly once.
// It is stateless; all coordination lives in the Store's transactions.
type Applier struct {
	store    Store
	currency string
}

func NewApplier(store Store, currency string) *Applier {
	return &Applier{store: store, currency: currency}
}

func (a *Applier) Apply(ctx context.Context, ev Event) (Result, error) {
	switch e := ev.(type) {
	case DonationEvent:
		return a.applyDonation(ctx, e)
	case BookingEvent:
		return a.applyBooking(ctx, e)
	default:
		return Result{}, ErrUnknownPurpose
	}
}

func (a *Applier) applyDonation(ctx context.Context, e DonationEvent) (Result, error) {
	// Fast path for retried deliveries. The transactional re-check below is
	// what actually holds under concurrency.
	if existing, err := a.store.FindDonationByPaymentID(ctx, e.Payment); err == nil {
		return Result{Applied: false, ResultID: existing.ID.Hex()}, nil
	} else if err != ErrNotFound {
		return Result{}, fmt.Errorf("donation lookup: %w", err)
	}

	donation := &models.Donation{
		ID:         primitive.NewObjectID(),
		CampaignID: e.CampaignID,
		Amount:     float64(e.AmountMinor) / 100,
		Currency:   a.currency,
		PaymentID:  e.Payment,
		OrderID:    e.Order,
		DonorName:  e.DonorName,
		DonorEmail: e.DonorEmail,
		ReceiptNo:  uuid.NewString(),
		CreatedAt:  time.Now(),
	}

	err := a.store.RecordDonation(ctx, donation)
	if err == ErrNotFound {
		return Result{}, ErrNotFound
	}
	if err == ErrDuplicate {
		// Concurrent delivery won the race. Echo its record back.
		existing, lookupErr := a.store.FindDonationByPaymentID(ctx, e.Payment)
		if lookupErr != nil {
			return Result{}, fmt.Errorf("duplicate donation lookup: %w", lookupErr)
		}
		log.WithField("payment_id", e.Payment).Info("duplicate donation delivery ignored")
		return Result{Applied: false, ResultID: existing.ID.Hex()}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("record donation: %w", err)
	}

	log.WithFields(log.Fields{
		"payment_id":  e.Payment,
		"campaign_id": e.CampaignID.Hex(),
		"amount":      donation.Amount,
	}).Info("donation recorded")

	return Result{Applied: true, ResultID: donation.ID.Hex()}, nil
}

func (a *Applier) applyBooking(ctx context.Context, e BookingEvent) (Result, error) {
	booking, applied, err := a.store.ConfirmBooking(ctx, e.BookingID, e.Payment, e.Order)
	if err == ErrNotFound {
		return Result{}, ErrNotFound
	}
	if err != nil {
		return Result{}, fmt.Errorf("confirm booking: %w", err)
	}

	if applied {
		log.WithFields(log.Fields{
			"payment_id": e.Payment,
			"booking_id": booking.ID.Hex(),
			"seats":      booking.Seats,
		}).Info("booking confirmed")
	}

	return Result{Applied: applied, ResultID: booking.ID.Hex()}, nil
}
