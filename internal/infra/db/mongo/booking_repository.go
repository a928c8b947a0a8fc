package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "hoteldesk/internal/domain/booking"
	"hoteldesk/internal/domain/shared/daterange"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

// BookingRepository persists reservations and hall events with optimistic
// concurrency on the aggregate version.
type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	col := db.Collection("bookings")
	idx := mongo.IndexModel{Keys: bson.D{{Key: "resource_ids", Value: 1}, {Key: "status", Value: 1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &BookingRepository{col: col}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) ForResource(ctx context.Context, resourceID string) ([]*domainbooking.Booking, error) {
	cursor, err := r.col.Find(ctx, bson.M{"resource_ids": resourceID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *BookingRepository) List(ctx context.Context) ([]*domainbooking.Booking, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

type bookingDocument struct {
	ID          string   `bson:"_id"`
	Kind        string   `bson:"kind"`
	ResourceIDs []string `bson:"resource_ids"`
	GuestName   string   `bson:"guest_name"`
	CheckIn     int64    `bson:"check_in"`
	CheckOut    int64    `bson:"check_out"`
	Status      string   `bson:"status"`
	TotalAmount float64  `bson:"total_amount"`
	CreatedAt   int64    `bson:"created_at"`
	UpdatedAt   int64    `bson:"updated_at"`
	Version     int64    `bson:"version"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:          string(b.ID),
		Kind:        string(b.Kind),
		ResourceIDs: b.ResourceIDs,
		GuestName:   b.GuestName,
		CheckIn:     b.Range.CheckIn.UnixMilli(),
		CheckOut:    b.Range.CheckOut.UnixMilli(),
		Status:      string(b.Status),
		TotalAmount: b.TotalAmount,
		CreatedAt:   b.CreatedAt.UnixMilli(),
		UpdatedAt:   b.UpdatedAt.UnixMilli(),
		Version:     b.Version,
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	return &domainbooking.Booking{
		ID:          domainbooking.BookingID(d.ID),
		Kind:        domainbooking.Kind(d.Kind),
		ResourceIDs: d.ResourceIDs,
		GuestName:   d.GuestName,
		Range: daterange.DateRange{
			CheckIn:  time.UnixMilli(d.CheckIn).UTC(),
			CheckOut: time.UnixMilli(d.CheckOut).UTC(),
		},
		Status:      domainbooking.Status(d.Status),
		TotalAmount: d.TotalAmount,
		CreatedAt:   time.UnixMilli(d.CreatedAt).UTC(),
		UpdatedAt:   time.UnixMilli(d.UpdatedAt).UTC(),
		Version:     d.Version,
	}
}
