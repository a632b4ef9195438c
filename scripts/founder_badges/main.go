package main

import (
	"academia/config"
	"academia/controllers/gamification"
	"academia/database"
	"academia/models"
	"flag"
	"log"

	"gorm.io/gorm"
)

// Grants or removes the founder badge for a user, identified by email.
// Removal runs in a transaction so the badge row and the user's point
// total never drift apart.
func main() {
	grantEmail := flag.String("grant", "", "email of the user to grant the founder badge to")
	removeEmail := flag.String("remove", "", "email of the user to remove the founder badge from")
	flag.Parse()

	if (*grantEmail == "") == (*removeEmail == "") {
		log.Fatal("Provide exactly one of -grant or -remove with a user email")
	}

	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	if *grantEmail != "" {
		user := findUser(db, *grantEmail)
		_, awarded := gamification.AwardBadge(db, user.ID, models.BadgeFounder, map[string]interface{}{
			"granted_by": "founder_badges script",
		})
		if !awarded {
			log.Printf("User %s already has the founder badge", user.Email)
			return
		}
		log.Printf("Founder badge granted to %s", user.Email)
		return
	}

	user := findUser(db, *removeEmail)

	var badge models.Badge
	if err := db.Where("code = ?", models.BadgeFounder).First(&badge).Error; err != nil {
		log.Fatalf("Founder badge not found, run the seed_badges script first: %v", err)
	}

	var userBadge models.UserBadge
	if err := db.Where("user_id = ? AND badge_id = ?", user.ID, badge.ID).First(&userBadge).Error; err != nil {
		log.Printf("User %s does not have the founder badge", user.Email)
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&userBadge).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", user.ID).
			UpdateColumn("total_points", gorm.Expr("total_points - ?", userBadge.PointsEarned)).Error
	})
	if err != nil {
		log.Fatalf("Failed to remove founder badge: %v", err)
	}

	log.Printf("Founder badge removed from %s (%d points deducted)", user.Email, userBadge.PointsEarned)
}

func findUser(db *gorm.DB, email string) models.User {
	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		log.Fatalf("User %s not found: %v", email, err)
	}
	return user
}
