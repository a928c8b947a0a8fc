package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainaudit "hoteldesk/internal/domain/audit"
)

// AuditLog appends audit entries to a capped-style collection ordered by
// creation time.
type AuditLog struct {
	col *mongo.Collection
}

func NewAuditLog(db *mongo.Database) *AuditLog {
	return &AuditLog{col: db.Collection("audit_log")}
}

func (l *AuditLog) Append(ctx context.Context, entry domainaudit.Entry) error {
	doc := bson.M{
		"_id":        entry.ID,
		"actor":      entry.Actor,
		"action":     entry.Action,
		"details":    entry.Details,
		"created_at": entry.CreatedAt.UTC(),
	}
	_, err := l.col.InsertOne(ctx, doc)
	return err
}

func (l *AuditLog) List(ctx context.Context) ([]domainaudit.Entry, error) {
	cursor, err := l.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []domainaudit.Entry
	for cursor.Next(ctx) {
		var doc struct {
			ID        string            `bson:"_id"`
			Actor     string            `bson:"actor"`
			Action    string            `bson:"action"`
			Details   map[string]string `bson:"details"`
			CreatedAt time.Time         `bson:"created_at"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, domainaudit.Entry{
			ID:        doc.ID,
			Actor:     doc.Actor,
			Action:    doc.Action,
			Details:   doc.Details,
			CreatedAt: doc.CreatedAt,
		})
	}
	return out, cursor.Err()
}
