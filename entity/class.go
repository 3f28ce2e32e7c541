package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

type ClassStatus string

const (
	StatusPending  ClassStatus = "pending"
	StatusApproved ClassStatus = "approved"
	StatusDenied   ClassStatus = "denied"
)

func (s ClassStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied:
		return true
	}
	return false
}

type Class struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title            string             `bson:"title" json:"title"`
	Image            string             `bson:"image,omitempty" json:"image,omitempty"`
	InstructorName   string             `bson:"instructorName,omitempty" json:"instructorName,omitempty"`
	InstructorEmail  string             `bson:"instructorEmail" json:"instructorEmail"`
	AvailableSeats   int                `bson:"availableSeats" json:"availableSeats"`
	Price            float64            `bson:"price" json:"price"`
	EnrolledStudents int                `bson:"enrolledStudents" json:"enrolledStudents"`
	Status           ClassStatus        `bson:"status" json:"status"`
	Feedback         string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

// ClassUpdate carries the fields of a partial class update. Nil and empty
// fields are left untouched in the stored document.
type ClassUpdate struct {
	Title          string      `bson:"title,omitempty" json:"title,omitempty"`
	Image          string      `bson:"image,omitempty" json:"image,omitempty"`
	AvailableSeats *int        `bson:"availableSeats,omitempty" json:"availableSeats,omitempty"`
	Price          *float64    `bson:"price,omitempty" json:"price,omitempty"`
	Status         ClassStatus `bson:"status,omitempty" json:"status,omitempty"`
	Feedback       string      `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

func (u *ClassUpdate) IsEmpty() bool {
	return u.Title == "" && u.Image == "" && u.AvailableSeats == nil &&
		u.Price == nil && u.Status == "" && u.Feedback == ""
}
