package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SelectedClass is a pending booking. Its ID is chosen by the client.
type SelectedClass struct {
	ID             string  `bson:"_id,omitempty" json:"_id"`
	ClassID        string  `bson:"classId" json:"classId"`
	User           string  `bson:"user" json:"user"`
	Title          string  `bson:"title,omitempty" json:"title,omitempty"`
	Image          string  `bson:"image,omitempty" json:"image,omitempty"`
	InstructorName string  `bson:"instructorName,omitempty" json:"instructorName,omitempty"`
	Price          float64 `bson:"price,omitempty" json:"price,omitempty"`
	AvailableSeats int     `bson:"availableSeats,omitempty" json:"availableSeats,omitempty"`
}

type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User          string             `bson:"user" json:"user"`
	ClassID       string             `bson:"classId" json:"classId"`
	Amount        float64            `bson:"amount" json:"amount"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Title         string             `bson:"title,omitempty" json:"title,omitempty"`
	Date          time.Time          `bson:"date" json:"date"`
}

// PaymentCommit is the response to a committed payment: the insert of the
// payment record and the removal of the pending booking it settles.
type PaymentCommit struct {
	InsertResult *WriteResult `json:"insertResult"`
	DeleteResult *WriteResult `json:"deleteResult"`
}
