package models

import (
	"log"

	"github.com/returnukhti/resi_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&User{},
		&Resi{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
