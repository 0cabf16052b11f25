package payments

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "github.com/sevadaan/donation-backend-go/models"
)

// MongoStore implements Store on the document database. Atomicity comes from
// Mongo multi-document transactions; the unique index on donations.payment_id
// is the last line of defence against concurrent duplicates.
type MongoStore struct {
	client *mongo.Client
	dbName string
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{client: client, dbName: dbName}
}

func (s *MongoStore) db() *mongo.Database {
	return s.client.Database(s.dbName)
}

// EnsureIndexes must run once at startup before any confirmation traffic.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db().Collection("donations").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "payment_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = s.db().Collection("orders").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "order_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoStore) FindDonationByPaymentID(ctx context.Context, paymentID string) (*models.Donation, error) {
	var d models.Donation
	err := s.db().Collection("donations").FindOne(ctx, bson.M{"payment_id": paymentID}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *MongoStore) FindOrderByOrderID(ctx context.Context, orderID string) (*models.PaymentOrder, error) {
	var o models.PaymentOrder
	err := s.db().Collection("orders").FindOne(ctx, bson.M{"order_id": orderID}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *MongoStore) RecordDonation(ctx context.Context, d *models.Donation) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		donations := s.db().Collection("donations")

		// Re-check inside the transaction; the pre-check outside raced.
		err := donations.FindOne(sc, bson.M{"payment_id": d.PaymentID}).Err()
		if err == nil {
			return nil, ErrDuplicate
		}
		if err != mongo.ErrNoDocuments {
			return nil, err
		}

		if _, err := donations.InsertOne(sc, d); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, ErrDuplicate
			}
			return nil, err
		}

		res, err := s.db().Collection("campaigns").UpdateOne(sc,
			bson.M{"_id": d.CampaignID},
			bson.M{
				"$inc": bson.M{"total_raised": d.Amount},
				"$set": bson.M{"updated_at": time.Now()},
			})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, ErrNotFound
		}

		_, err = s.db().Collection("orders").UpdateOne(sc,
			bson.M{"order_id": d.OrderID},
			bson.M{"$set": bson.M{"status": "PAID", "updated_at": time.Now()}})
		return nil, err
	})
	return err
}

func (s *MongoStore) ConfirmBooking(ctx context.Context, bookingID primitive.ObjectID, paymentID, orderID string) (*models.Booking, bool, error) {
	session, err := s.client.StartSession()
	if err != nil {
		return nil, false, err
	}
	defer session.EndSession(ctx)

	var booking models.Booking
	applied := false

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		bookings := s.db().Collection("bookings")

		err := bookings.FindOne(sc, bson.M{"_id": bookingID}).Decode(&booking)
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}

		if booking.Status == "CONFIRMED" {
			// Re-delivery; seats were counted on the first pass.
			return nil, nil
		}

		now := time.Now()
		if _, err := bookings.UpdateOne(sc,
			bson.M{"_id": bookingID, "status": "PENDING"},
			bson.M{"$set": bson.M{
				"status":     "CONFIRMED",
				"is_paid":    true,
				"payment_id": paymentID,
				"updated_at": now,
			}}); err != nil {
			return nil, err
		}

		if _, err := s.db().Collection("events").UpdateOne(sc,
			bson.M{"_id": booking.EventID},
			bson.M{
				"$inc": bson.M{"seats_sold": booking.Seats},
				"$set": bson.M{"updated_at": now},
			}); err != nil {
			return nil, err
		}

		if _, err := s.db().Collection("orders").UpdateOne(sc,
			bson.M{"order_id": orderID},
			bson.M{"$set": bson.M{"status": "PAID", "updated_at": now}}); err != nil {
			return nil, err
		}

		booking.Status = "CONFIRMED"
		booking.IsPaid = true
		booking.PaymentID = paymentID
		applied = true
		return nil, nil
	})
	if err != nil {
		return nil, false, err
	}
	return &booking, applied, nil
}
