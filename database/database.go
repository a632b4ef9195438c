package database

import (
	"academia/config"
	"academia/models"
	kpModels "academia/models/knowledgepath"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	// Build the PostgreSQL connection string
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		config.AppConfig.DBHost,
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBName,
		config.AppConfig.DBPort,
	)

	// Open database connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)   // Maximum open connections
	sqlDB.SetMaxIdleConns(5)    // Maximum idle connections
	sqlDB.SetConnMaxLifetime(0) // No timeout

	// Run database migrations
	RunMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Permission{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Event{},
		&models.EventRegistration{},
		&models.Content{},
		&models.Topic{},
		&models.ContentTopic{},
		&models.Vote{},
		&models.Comment{},
		&models.Notification{},
		&models.DirectMessage{},
		&kpModels.KnowledgePath{},
		&kpModels.Node{},
		&kpModels.UserNodeCompletion{},
		&kpModels.Quiz{},
		&kpModels.Question{},
		&kpModels.Option{},
		&kpModels.QuizAttempt{},
		&kpModels.QuizAnswer{},
		&kpModels.CertificateRequest{},
		&kpModels.CertificateTemplate{},
		&kpModels.Certificate{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}
