package main

import (
	"academia/config"
	"academia/database"
	"academia/models"
	"log"
)

// Seeds the badge catalogue. Safe to re-run: existing badges are updated in
// place so point values can be tuned without duplicating rows.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	badges := []models.Badge{
		{
			Code:        models.BadgeFounder,
			Name:        "Founder",
			Description: "Early supporter of the platform",
			PointsValue: 100,
		},
		{
			Code:        models.BadgeEventGoer,
			Name:        "Event Goer",
			Description: "Registered for a first event",
			PointsValue: 10,
		},
		{
			Code:        models.BadgePathPioneer,
			Name:        "Path Pioneer",
			Description: "Completed a first knowledge path",
			PointsValue: 50,
		},
		{
			Code:        models.BadgeContentCreator,
			Name:        "Content Creator",
			Description: "Published a first piece of content",
			PointsValue: 25,
		},
	}

	created := 0
	updated := 0

	for _, badge := range badges {
		var existing models.Badge
		if err := db.Where("code = ?", badge.Code).First(&existing).Error; err != nil {
			if err := db.Create(&badge).Error; err != nil {
				log.Fatalf("Failed to create badge %s: %v", badge.Code, err)
			}
			created++
			continue
		}

		existing.Name = badge.Name
		existing.Description = badge.Description
		existing.PointsValue = badge.PointsValue
		if err := db.Save(&existing).Error; err != nil {
			log.Fatalf("Failed to update badge %s: %v", badge.Code, err)
		}
		updated++
	}

	log.Printf("Badge seeding complete: %d created, %d updated", created, updated)
}
