package store_test

import (
	"context"
	"os"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"summercamp-backend/entity"
	"summercamp-backend/store"
)

// These specs need a live server: MONGO_TEST_URI=mongodb://localhost:27017
var _ = Describe("Store", func() {
	var (
		client *mongo.Client
		db     *mongo.Database
		s      *store.Store
		ctx    = context.Background()
	)

	BeforeEach(func() {
		uri := os.Getenv("MONGO_TEST_URI")
		if uri == "" {
			Skip("MONGO_TEST_URI not set")
		}

		var err error
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		Expect(err).To(BeNil())
		db = client.Database("summerChampTest")
		Expect(db.Drop(ctx)).To(Succeed())

		s = store.New(db)
		Expect(s.EnsureIndexes(ctx)).To(Succeed())
	})

	AfterEach(func() {
		if client != nil {
			Expect(db.Drop(ctx)).To(Succeed())
			Expect(client.Disconnect(ctx)).To(Succeed())
			client = nil
		}
	})

	Describe("Users", func() {
		Specify("upsert by email is idempotent", func() {
			u := &entity.User{Name: "Alice", Role: entity.RoleAdmin}

			res, err := s.UpsertUser(ctx, "alice@example.com", u)
			Expect(err).To(BeNil())
			Expect(*res.UpsertedCount).To(Equal(int64(1)))

			res, err = s.UpsertUser(ctx, "alice@example.com", u)
			Expect(err).To(BeNil())
			Expect(*res.MatchedCount).To(Equal(int64(1)))
			Expect(*res.UpsertedCount).To(Equal(int64(0)))

			n, err := db.Collection(store.UsersCollection).CountDocuments(ctx, bson.M{})
			Expect(err).To(BeNil())
			Expect(n).To(Equal(int64(1)))

			got, err := s.UserByEmail(ctx, "alice@example.com")
			Expect(err).To(BeNil())
			Expect(got.Name).To(Equal("Alice"))
			Expect(got.Role).To(Equal(entity.RoleAdmin))
		})
		Specify("unknown email is nil without error", func() {
			got, err := s.UserByEmail(ctx, "nobody@example.com")
			Expect(err).To(BeNil())
			Expect(got).To(BeNil())
		})
	})

	Describe("Classes", func() {
		BeforeEach(func() {
			for _, c := range []*entity.Class{
				{Title: "Swim", AvailableSeats: 3, Status: entity.StatusApproved, InstructorEmail: "i@x.com"},
				{Title: "Chess", AvailableSeats: 10, Status: entity.StatusPending, InstructorEmail: "i@x.com"},
				{Title: "Tennis", AvailableSeats: 7, Status: entity.StatusApproved, InstructorEmail: "j@x.com"},
			} {
				_, err := s.InsertClass(ctx, c)
				Expect(err).To(BeNil())
				Expect(c.ID.IsZero()).To(BeFalse())
			}
		})

		Specify("approved only", func() {
			cs, err := s.Classes(ctx, store.ClassQuery{Status: entity.StatusApproved})
			Expect(err).To(BeNil())
			Expect(cs).To(HaveLen(2))
			for _, c := range cs {
				Expect(c.Status).To(Equal(entity.StatusApproved))
			}
		})
		Specify("sorted by available seats", func() {
			cs, err := s.Classes(ctx, store.ClassQuery{BySeatsDesc: true})
			Expect(err).To(BeNil())
			Expect(cs).To(HaveLen(3))
			Expect(cs[0].AvailableSeats).To(Equal(10))
			Expect(cs[1].AvailableSeats).To(Equal(7))
			Expect(cs[2].AvailableSeats).To(Equal(3))
		})
		Specify("by instructor", func() {
			cs, err := s.Classes(ctx, store.ClassQuery{InstructorEmail: "j@x.com"})
			Expect(err).To(BeNil())
			Expect(cs).To(HaveLen(1))
			Expect(cs[0].Title).To(Equal("Tennis"))
		})
		Specify("partial update keeps the other fields", func() {
			cs, err := s.Classes(ctx, store.ClassQuery{InstructorEmail: "j@x.com"})
			Expect(err).To(BeNil())

			_, err = s.UpdateClass(ctx, cs[0].ID, &entity.ClassUpdate{Status: entity.StatusDenied, Feedback: "too late"})
			Expect(err).To(BeNil())

			c, err := s.ClassByID(ctx, cs[0].ID)
			Expect(err).To(BeNil())
			Expect(c.Status).To(Equal(entity.StatusDenied))
			Expect(c.Feedback).To(Equal("too late"))
			Expect(c.Title).To(Equal("Tennis"))
			Expect(c.AvailableSeats).To(Equal(7))
		})
		Specify("unknown id is nil", func() {
			c, err := s.ClassByID(ctx, primitive.NewObjectID())
			Expect(err).To(BeNil())
			Expect(c).To(BeNil())
		})
	})

	Describe("Payments", func() {
		Specify("commit removes the pending selection once", func() {
			_, err := s.UpsertSelectedClass(ctx, "b1", &entity.SelectedClass{ClassID: "c1", User: "a@x.com"})
			Expect(err).To(BeNil())

			p := &entity.Payment{ClassID: "c1", User: "a@x.com", Amount: 50, Date: time.Now()}
			ins, err := s.InsertPayment(ctx, p)
			Expect(err).To(BeNil())
			Expect(ins.InsertedID).To(Equal(p.ID))

			del, err := s.DeleteSettledSelection(ctx, "c1", "a@x.com")
			Expect(err).To(BeNil())
			Expect(*del.DeletedCount).To(Equal(int64(1)))

			del, err = s.DeleteSettledSelection(ctx, "c1", "a@x.com")
			Expect(err).To(BeNil())
			Expect(*del.DeletedCount).To(Equal(int64(0)))

			ps, err := s.PaymentsByUser(ctx, "a@x.com")
			Expect(err).To(BeNil())
			Expect(ps).To(HaveLen(1))
			Expect(ps[0].Amount).To(Equal(50.0))
		})
		Specify("selections are listed per user and deleted by id", func() {
			_, err := s.UpsertSelectedClass(ctx, "b1", &entity.SelectedClass{ClassID: "c1", User: "a@x.com"})
			Expect(err).To(BeNil())
			_, err = s.UpsertSelectedClass(ctx, "b2", &entity.SelectedClass{ClassID: "c2", User: "b@x.com"})
			Expect(err).To(BeNil())

			sel, err := s.SelectedClasses(ctx, "a@x.com")
			Expect(err).To(BeNil())
			Expect(sel).To(HaveLen(1))
			Expect(sel[0].ID).To(Equal("b1"))

			del, err := s.DeleteSelectedClass(ctx, "b1")
			Expect(err).To(BeNil())
			Expect(*del.DeletedCount).To(Equal(int64(1)))

			sel, err = s.SelectedClasses(ctx, "a@x.com")
			Expect(err).To(BeNil())
			Expect(sel).To(BeEmpty())
		})
	})
})
