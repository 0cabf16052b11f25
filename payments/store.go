package payments

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/sevadaan/donation-backend-go/models"
)

// Store is the durable-state boundary of the confirmation flow. The two
// mutating calls are each a single atomic unit of work: the fact record and
// the aggregate it justifies commit together or not at all.
type Store interface {
	FindDonationByPaymentID(ctx context.Context, paymentID string) (*models.Donation, error)
	FindOrderByOrderID(ctx context.Context, orderID string) (*models.PaymentOrder, error)

	// RecordDonation inserts the donation, increments the campaign's
	// total_raised by the donation amount and marks the originating order
	// paid, all in one transaction. Returns ErrDuplicate if a donation with
	// the same payment_id already exists (including the concurrent case lost
	// to the unique index).
	RecordDonation(ctx context.Context, d *models.Donation) error

	// ConfirmBooking flips the booking to CONFIRMED and increments the parent
	// event's seats_sold by booking.Seats in one transaction. A booking that
	// is already confirmed is returned with applied=false and no writes.
	ConfirmBooking(ctx context.Context, bookingID primitive.ObjectID, paymentID, orderID string) (booking *models.Booking, applied bool, err error)
}
