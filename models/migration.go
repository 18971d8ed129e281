package models

import (
	"log"

	"github.com/airbooker/bookings_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&User{},
		&Agent{},
		&Booking{}, &BookingPayment{},
		&Credit{}, &CreditHistory{},
		&Setting{},
	)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Migration completed")
}
