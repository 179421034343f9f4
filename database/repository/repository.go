package repository

import (
	"fmt"

	"athletetech/config"
	"athletetech/database"
	bookingRepo "athletetech/database/repository/booking"
	userRepo "athletetech/database/repository/user"
)

// Re-export the BookingRepository interface and constructors.
type BookingRepository = bookingRepo.BookingRepository

var (
	NewMongoBookingRepo     = bookingRepo.NewMongoBookingRepo
	NewFirestoreBookingRepo = bookingRepo.NewFirestoreBookingRepo
	NewMemoryBookingRepo    = bookingRepo.NewMemoryBookingRepo
)

// Re-export the UserRepository interface and constructors.
type UserRepository = userRepo.UserRepository

var (
	NewMongoUserRepo     = userRepo.NewMongoUserRepo
	NewFirestoreUserRepo = userRepo.NewFirestoreUserRepo
	NewMemoryUserRepo    = userRepo.NewMemoryUserRepo
)

// Repositories groups the stores selected by STORE_BACKEND.
type Repositories struct {
	Bookings BookingRepository
	Users    UserRepository
}

// New builds the repositories for the configured backend. The matching
// database client must already be initialized.
func New() (*Repositories, error) {
	switch config.AppConfig.StoreBackend {
	case config.StoreMongo:
		db := database.MongoDatabase()
		return &Repositories{
			Bookings: NewMongoBookingRepo(db),
			Users:    NewMongoUserRepo(db),
		}, nil
	case config.StoreFirestore:
		return &Repositories{
			Bookings: NewFirestoreBookingRepo(database.FirestoreClient),
			Users:    NewFirestoreUserRepo(database.FirestoreClient),
		}, nil
	case config.StoreMemory:
		return &Repositories{
			Bookings: NewMemoryBookingRepo(),
			Users:    NewMemoryUserRepo(),
		}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", config.AppConfig.StoreBackend)
}
