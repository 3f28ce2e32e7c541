package store

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes is idempotent and runs at startup. Every collection is
// attempted and the failures are reported together.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	var problems []string

	ensure := func(c *mongo.Collection, models ...mongo.IndexModel) {
		if _, err := c.Indexes().CreateMany(ctx, models); err != nil {
			problems = append(problems, c.Name()+": "+err.Error())
		}
	}

	ensure(s.cUsers, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	ensure(s.cClasses,
		mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("idx_status")},
		mongo.IndexModel{Keys: bson.D{{Key: "instructorEmail", Value: 1}}, Options: options.Index().SetName("idx_instructor_email")},
		mongo.IndexModel{Keys: bson.D{{Key: "availableSeats", Value: -1}}, Options: options.Index().SetName("idx_available_seats")},
	)
	ensure(s.cSelected,
		mongo.IndexModel{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetName("idx_user")},
		mongo.IndexModel{Keys: bson.D{{Key: "classId", Value: 1}, {Key: "user", Value: 1}}, Options: options.Index().SetName("idx_class_user")},
	)
	ensure(s.cPayments, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "date", Value: -1}},
		Options: options.Index().SetName("idx_user_date"),
	})

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
