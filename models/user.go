// models/user.go
package models

import "time"

const (
	UserTypeCoach   = "coach"
	UserTypeAthlete = "athlete"
)

// User is a coach or athlete profile. Identity itself lives with the auth provider.
type User struct {
	ID           string    `bson:"id" json:"id" firestore:"-"`
	Email        string    `bson:"email" json:"email" firestore:"email"`
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-" firestore:"passwordHash,omitempty"` // local auth mode only
	FirstName    string    `bson:"firstName" json:"firstName" firestore:"firstName"`
	LastName     string    `bson:"lastName" json:"lastName" firestore:"lastName"`
	UserType     string    `bson:"userType" json:"userType" firestore:"userType"`
	Age          int       `bson:"age,omitempty" json:"age,omitempty" firestore:"age,omitempty"`
	Gender       string    `bson:"gender,omitempty" json:"gender,omitempty" firestore:"gender,omitempty"`
	Sport        string    `bson:"sport,omitempty" json:"sport,omitempty" firestore:"sport,omitempty"`
	Experience   string    `bson:"experience,omitempty" json:"experience,omitempty" firestore:"experience,omitempty"`
	Goals        string    `bson:"goals,omitempty" json:"goals,omitempty" firestore:"goals,omitempty"`
	FCMToken     string    `bson:"fcmToken,omitempty" json:"-" firestore:"fcmToken,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt" firestore:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt" firestore:"updatedAt"`
}

// FullName is the display name denormalised onto bookings.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserRegistrationRequest is the signup payload.
type UserRegistrationRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"min=6"`
	UserType   string `json:"userType" validate:"required,oneof=coach athlete"`
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Age        int    `json:"age" validate:"gte=13,lte=100"`
	Gender     string `json:"gender"`
	Sport      string `json:"sport" validate:"required"`
	Experience string `json:"experience" validate:"required"`
	Goals      string `json:"goals"`
}

// UserMinimal is the public coach card shown to athletes.
type UserMinimal struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	UserType   string `json:"userType"`
	Sport      string `json:"sport,omitempty"`
	Experience string `json:"experience,omitempty"`
}

// Minimal strips the private profile fields.
func (u *User) Minimal() UserMinimal {
	return UserMinimal{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		UserType:   u.UserType,
		Sport:      u.Sport,
		Experience: u.Experience,
	}
}
