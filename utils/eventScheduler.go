package utils

import (
	"academia/database"
	"academia/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeEventReminderScheduler sets up the event reminder scheduler
func InitializeEventReminderScheduler() {
	log.Println("[EVENT-SCHEDULER] Initializing event reminder scheduler...")

	c := cron.New()

	// Run daily at 9 AM to remind participants of upcoming events
	c.AddFunc("0 9 * * *", func() {
		log.Println("[EVENT-SCHEDULER] Running daily event reminder check...")
		ProcessUpcomingEventReminders()
	})

	c.Start()
	log.Println("[EVENT-SCHEDULER] Event reminder scheduler started - runs daily at 9 AM")
}

// ProcessUpcomingEventReminders sends reminder emails for events starting within 2 days
func ProcessUpcomingEventReminders() {
	db := database.Database.Db
	now := time.Now()
	twoDaysFromNow := now.AddDate(0, 0, 2)

	// Find published events starting soon that haven't had reminders sent
	var upcomingEvents []models.Event
	if err := db.
		Where("is_published = ? AND is_deleted = ? AND reminder_sent = ?", true, false, false).
		Where("date_start BETWEEN ? AND ?", now, twoDaysFromNow).
		Find(&upcomingEvents).Error; err != nil {
		log.Printf("[EVENT-SCHEDULER] Error fetching upcoming events: %v", err)
		return
	}

	log.Printf("[EVENT-SCHEDULER] Found %d events starting soon", len(upcomingEvents))

	for _, event := range upcomingEvents {
		var registrations []models.EventRegistration
		if err := db.Where("event_id = ? AND is_deleted = ?", event.ID, false).
			Find(&registrations).Error; err != nil {
			log.Printf("[EVENT-SCHEDULER] Error fetching registrations for event %d: %v", event.ID, err)
			continue
		}

		for _, reg := range registrations {
			var user models.User
			if err := db.Where("id = ?", reg.UserID).First(&user).Error; err != nil {
				log.Printf("[EVENT-SCHEDULER] Error fetching user %d: %v", reg.UserID, err)
				continue
			}

			SendEventReminderEmail(user.Email, user.Name, event.Title, event.DateStart)
		}

		// Mark reminder as sent so the next run skips this event
		if err := db.Model(&models.Event{}).Where("id = ?", event.ID).
			Update("reminder_sent", true).Error; err != nil {
			log.Printf("[EVENT-SCHEDULER] Error marking reminder sent for event %d: %v", event.ID, err)
		}
	}
}
