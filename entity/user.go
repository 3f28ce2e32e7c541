package entity

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
	"go.uber.org/zap"
	"summercamp-backend/log"
)

type Role int

const (
	RoleNone Role = iota
	RoleAdmin
	RoleInstructor
)

func ParseRole(s string) (Role, error) {
	switch s {
	case "":
		return RoleNone, nil
	case "admin":
		return RoleAdmin, nil
	case "instructor":
		return RoleInstructor, nil
	}
	return RoleNone, fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleInstructor:
		return "instructor"
	default:
		return ""
	}
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Roles are stored as their string names so existing documents stay readable.
func (r Role) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bsontype.String, bsoncore.AppendString(nil, r.String()), nil
}

// UnmarshalBSONValue reads a stored role. Values outside the enum decode to
// RoleNone so one bad document cannot break a whole listing.
func (r *Role) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*r = RoleNone
	if t == bsontype.Null || t == bsontype.Undefined {
		return nil
	}
	if t != bsontype.String {
		log.Logger.Warn("stored role is not a string", zap.Stringer("type", t))
		return nil
	}
	s, _, ok := bsoncore.ReadString(data)
	if !ok {
		return fmt.Errorf("malformed role value")
	}
	v, err := ParseRole(s)
	if err != nil {
		log.Logger.Warn("unknown stored role", zap.String("role", s))
		return nil
	}
	*r = v
	return nil
}

func (r Role) IsZero() bool {
	return r == RoleNone
}

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email    string             `bson:"email" json:"email"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role     Role               `bson:"role,omitempty" json:"role"`
}

// RoleOf treats a missing user as having no role.
func RoleOf(u *User) Role {
	if u == nil {
		return RoleNone
	}
	return u.Role
}

type Instructor struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	PhotoURL        string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	NumberOfClasses int                `bson:"numberOfClasses" json:"numberOfClasses"`
	Classes         []string           `bson:"classes,omitempty" json:"classes,omitempty"`
}
