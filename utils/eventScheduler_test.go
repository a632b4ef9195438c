package utils

import (
	"academia/config"
	"academia/database"
	"academia/models"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSchedulerTest(t *testing.T) *gorm.DB {
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	return db
}

func TestProcessUpcomingEventReminders(t *testing.T) {
	db := setupSchedulerTest(t)

	owner := models.User{Name: "Ada", Email: "ada@example.com", Role: "USER", Password: "x"}
	assert.NoError(t, db.Create(&owner).Error)

	soon := models.Event{
		OwnerID:     owner.ID,
		Title:       "Starting Soon",
		EventType:   models.EventTypeVirtual,
		DateStart:   time.Now().Add(24 * time.Hour),
		IsPublished: true,
	}
	farOff := models.Event{
		OwnerID:     owner.ID,
		Title:       "Far Off",
		EventType:   models.EventTypeVirtual,
		DateStart:   time.Now().AddDate(0, 1, 0),
		IsPublished: true,
	}
	unpublished := models.Event{
		OwnerID:   owner.ID,
		Title:     "Draft",
		EventType: models.EventTypeVirtual,
		DateStart: time.Now().Add(24 * time.Hour),
	}
	assert.NoError(t, db.Create(&soon).Error)
	assert.NoError(t, db.Create(&farOff).Error)
	assert.NoError(t, db.Create(&unpublished).Error)

	ProcessUpcomingEventReminders()

	var refreshedSoon models.Event
	assert.NoError(t, db.First(&refreshedSoon, soon.ID).Error)
	assert.True(t, refreshedSoon.ReminderSent)

	var refreshedFarOff models.Event
	assert.NoError(t, db.First(&refreshedFarOff, farOff.ID).Error)
	assert.False(t, refreshedFarOff.ReminderSent)

	var refreshedDraft models.Event
	assert.NoError(t, db.First(&refreshedDraft, unpublished.ID).Error)
	assert.False(t, refreshedDraft.ReminderSent)

	// A second run finds nothing new to remind
	ProcessUpcomingEventReminders()
	var afterSecondRun models.Event
	assert.NoError(t, db.First(&afterSecondRun, soon.ID).Error)
	assert.True(t, afterSecondRun.ReminderSent)
}

func TestGenerateCertificateNumber(t *testing.T) {
	first := GenerateCertificateNumber()
	second := GenerateCertificateNumber()

	assert.True(t, strings.HasPrefix(first, "AB-CERT-"))
	assert.Equal(t, first, strings.ToUpper(first))
	assert.NotEqual(t, first, second)
}
