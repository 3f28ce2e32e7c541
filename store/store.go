package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"summercamp-backend/entity"
)

const (
	UsersCollection           = "users"
	InstructorsCollection     = "instructors"
	ClassesCollection         = "classes"
	SelectedClassesCollection = "selectedClasses"
	PaymentsCollection        = "payments"
)

// ClassQuery narrows a class listing. The zero value lists every class in
// natural order.
type ClassQuery struct {
	Status          entity.ClassStatus
	InstructorEmail string
	BySeatsDesc     bool
}

type Store struct {
	cUsers       *mongo.Collection
	cInstructors *mongo.Collection
	cClasses     *mongo.Collection
	cSelected    *mongo.Collection
	cPayments    *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		cUsers:       db.Collection(UsersCollection),
		cInstructors: db.Collection(InstructorsCollection),
		cClasses:     db.Collection(ClassesCollection),
		cSelected:    db.Collection(SelectedClassesCollection),
		cPayments:    db.Collection(PaymentsCollection),
	}
}

func updated(res *mongo.UpdateResult) *entity.WriteResult {
	return entity.Updated(res.MatchedCount, res.ModifiedCount, res.UpsertedCount, res.UpsertedID)
}

func findAll[T any](ctx context.Context, c *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.Background())

	out := []*T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*T{}
	}

	return out, nil
}

func findOne[T any](ctx context.Context, c *mongo.Collection, filter interface{}) (*T, error) {
	v := new(T)
	err := c.FindOne(ctx, filter).Decode(v)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return v, nil
}

func (s *Store) UpsertUser(ctx context.Context, email string, u *entity.User) (*entity.WriteResult, error) {
	doc := *u
	doc.ID = primitive.NilObjectID
	doc.Email = email

	res, err := s.cUsers.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": &doc}, options.Update().SetUpsert(true))
	if err != nil {
		return nil, err
	}

	return updated(res), nil
}

func (s *Store) Users(ctx context.Context) ([]*entity.User, error) {
	return findAll[entity.User](ctx, s.cUsers, bson.M{})
}

// UserByEmail returns nil without an error when no user has that email.
func (s *Store) UserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return findOne[entity.User](ctx, s.cUsers, bson.M{"email": email})
}

func (s *Store) Instructors(ctx context.Context) ([]*entity.Instructor, error) {
	return findAll[entity.Instructor](ctx, s.cInstructors, bson.M{})
}

func (s *Store) Classes(ctx context.Context, q ClassQuery) ([]*entity.Class, error) {
	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.InstructorEmail != "" {
		filter["instructorEmail"] = q.InstructorEmail
	}

	opts := options.Find()
	if q.BySeatsDesc {
		opts.SetSort(bson.D{{Key: "availableSeats", Value: -1}})
	}

	return findAll[entity.Class](ctx, s.cClasses, filter, opts)
}

func (s *Store) ClassByID(ctx context.Context, id primitive.ObjectID) (*entity.Class, error) {
	return findOne[entity.Class](ctx, s.cClasses, bson.M{"_id": id})
}

func (s *Store) InsertClass(ctx context.Context, c *entity.Class) (*entity.WriteResult, error) {
	res, err := s.cClasses.InsertOne(ctx, c)
	if err != nil {
		return nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}

	return entity.Inserted(res.InsertedID), nil
}

func (s *Store) UpdateClass(ctx context.Context, id primitive.ObjectID, u *entity.ClassUpdate) (*entity.WriteResult, error) {
	res, err := s.cClasses.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": u}, options.Update().SetUpsert(true))
	if err != nil {
		return nil, err
	}

	return updated(res), nil
}

func (s *Store) UpsertSelectedClass(ctx context.Context, id string, sc *entity.SelectedClass) (*entity.WriteResult, error) {
	doc := *sc
	doc.ID = ""

	res, err := s.cSelected.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": &doc}, options.Update().SetUpsert(true))
	if err != nil {
		return nil, err
	}

	return updated(res), nil
}

func (s *Store) SelectedClasses(ctx context.Context, email string) ([]*entity.SelectedClass, error) {
	return findAll[entity.SelectedClass](ctx, s.cSelected, bson.M{"user": email})
}

func (s *Store) DeleteSelectedClass(ctx context.Context, id string) (*entity.WriteResult, error) {
	res, err := s.cSelected.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}

	return entity.Deleted(res.DeletedCount), nil
}

// DeleteSettledSelection removes one pending booking of user for classID.
// An empty user matches any booking of the class.
func (s *Store) DeleteSettledSelection(ctx context.Context, classID, user string) (*entity.WriteResult, error) {
	filter := bson.M{"classId": classID}
	if user != "" {
		filter["user"] = user
	}

	res, err := s.cSelected.DeleteOne(ctx, filter)
	if err != nil {
		return nil, err
	}

	return entity.Deleted(res.DeletedCount), nil
}

func (s *Store) InsertPayment(ctx context.Context, p *entity.Payment) (*entity.WriteResult, error) {
	res, err := s.cPayments.InsertOne(ctx, p)
	if err != nil {
		return nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}

	return entity.Inserted(res.InsertedID), nil
}

func (s *Store) PaymentsByUser(ctx context.Context, email string) ([]*entity.Payment, error) {
	return findAll[entity.Payment](ctx, s.cPayments, bson.M{"user": email}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
}
