package payments

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/sevadaan/donation-backend-go/models"
)

// memStore mirrors the MongoStore contract in memory: each mutating call is
// atomic under the mutex, and duplicates are rejected the way the unique
// index would reject them.
type memStore struct {
	mu        sync.Mutex
	donations map[string]*models.Donation // by payment_id
	campaigns map[primitive.ObjectID]*models.Campaign
	bookings  map[primitive.ObjectID]*models.Booking
	events    map[primitive.ObjectID]*models.Event
	orders    map[string]*models.PaymentOrder

	failRecord  bool // simulate txn abort before commit
	failConfirm bool
}

func newMemStore() *memStore {
	return &memStore{
		donations: map[string]*models.Donation{},
		campaigns: map[primitive.ObjectID]*models.Campaign{},
		bookings:  map[primitive.ObjectID]*models.Booking{},
		events:    map[primitive.ObjectID]*models.Event{},
		orders:    map[string]*models.PaymentOrder{},
	}
}

func (s *memStore) FindDonationByPaymentID(ctx context.Context, paymentID string) (*models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.donations[paymentID]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (s *memStore) FindOrderByOrderID(ctx context.Context, orderID string) (*models.PaymentOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[orderID]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (s *memStore) RecordDonation(ctx context.Context, d *models.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failRecord {
		// Abort with nothing applied, as an interrupted transaction would.
		return context.DeadlineExceeded
	}
	if _, ok := s.donations[d.PaymentID]; ok {
		return ErrDuplicate
	}
	campaign, ok := s.campaigns[d.CampaignID]
	if !ok {
		return ErrNotFound
	}

	copied := *d
	s.donations[d.PaymentID] = &copied
	campaign.TotalRaised += d.Amount
	if o, ok := s.orders[d.OrderID]; ok {
		o.Status = "PAID"
	}
	return nil
}

func (s *memStore) ConfirmBooking(ctx context.Context, bookingID primitive.ObjectID, paymentID, orderID string) (*models.Booking, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failConfirm {
		return nil, false, context.DeadlineExceeded
	}

	booking, ok := s.bookings[bookingID]
	if !ok {
		return nil, false, ErrNotFound
	}
	if booking.Status == "CONFIRMED" {
		copied := *booking
		return &copied, false, nil
	}

	booking.Status = "CONFIRMED"
	booking.IsPaid = true
	booking.PaymentID = paymentID
	if ev, ok := s.events[booking.EventID]; ok {
		ev.SeatsSold += booking.Seats
	}
	if o, ok := s.orders[orderID]; ok {
		o.Status = "PAID"
	}

	copied := *booking
	return &copied, true, nil
}
