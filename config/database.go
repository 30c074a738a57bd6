package config

import (
	"fmt"
	"log"
	"os"

	"github.com/fidelity-club/fidelity-be/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase() {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	// TranslateError surfaces unique violations as gorm.ErrDuplicatedKey,
	// which the redemption engine relies on for duplicate detection.
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Error al conectar a la base de datos:", err)
	}

	DB = database

	// Auto migrate the schema
	err = DB.AutoMigrate(
		&models.User{},
		&models.Coupon{},
		&models.Purchase{},
		&models.Redemption{},
	)
	if err != nil {
		log.Fatal("Error al migrar la base de datos:", err)
	}

	log.Println("Base de datos conectada y migrada exitosamente")
}
