package main

import (
	"academia/config"
	"academia/controllers/auth"
	"academia/database"
	"academia/models"
	kpModels "academia/models/knowledgepath"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// Populates the database with demo users and a sample knowledge path so a
// fresh environment has something to explore. Skips users that already exist.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	demoUsers := []struct {
		Name  string
		Email string
		Role  string
	}{
		{"Ada Instructor", "ada@example.com", "ADMIN"},
		{"Grace Learner", "grace@example.com", "USER"},
		{"Linus Learner", "linus@example.com", "USER"},
	}

	users := make(map[string]models.User)

	for _, demo := range demoUsers {
		var existing models.User
		if err := db.Where("email = ?", demo.Email).First(&existing).Error; err == nil {
			users[demo.Email] = existing
			log.Printf("User %s already exists, skipping", demo.Email)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), config.AppConfig.SaltRound)
		if err != nil {
			log.Fatalf("Failed to hash demo password: %v", err)
		}

		user := models.User{
			Name:     demo.Name,
			Email:    demo.Email,
			Role:     demo.Role,
			Password: string(hashed),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", demo.Email, err)
		}
		if err := authController.SeedPermissions(db, user.Role, user.ID); err != nil {
			log.Fatalf("Failed to seed permissions for %s: %v", demo.Email, err)
		}
		users[demo.Email] = user
		log.Printf("Created user %s", demo.Email)
	}

	topics := []models.Topic{
		{Title: "Blockchain", Description: "Distributed ledgers and consensus"},
		{Title: "Cryptography", Description: "Hashes, signatures and keys"},
		{Title: "Smart Contracts", Description: "On-chain programs and their pitfalls"},
	}
	for _, topic := range topics {
		var existing models.Topic
		if err := db.Where("title = ?", topic.Title).First(&existing).Error; err == nil {
			log.Printf("Topic %q already exists, skipping", topic.Title)
			continue
		}
		if err := db.Create(&topic).Error; err != nil {
			log.Fatalf("Failed to create topic %q: %v", topic.Title, err)
		}
		log.Printf("Created topic %q", topic.Title)
	}

	author := users["ada@example.com"]

	var existingPath kpModels.KnowledgePath
	if err := db.Where("author_id = ? AND title = ?", author.ID, "Blockchain Fundamentals").
		First(&existingPath).Error; err == nil {
		log.Println("Sample knowledge path already exists, nothing to do")
		return
	}

	path := kpModels.KnowledgePath{
		AuthorID:    author.ID,
		Title:       "Blockchain Fundamentals",
		Description: "An introduction to distributed ledgers, consensus and smart contracts.",
		IsPublished: true,
	}
	if err := db.Create(&path).Error; err != nil {
		log.Fatalf("Failed to create knowledge path: %v", err)
	}

	nodes := []kpModels.Node{
		{
			KnowledgePathID: path.ID,
			Title:           "What is a blockchain?",
			Description:     "Blocks, hashes and why tampering is detectable.",
			MediaType:       "TEXT",
			Order:           1,
		},
		{
			KnowledgePathID: path.ID,
			Title:           "Consensus mechanisms",
			Description:     "Proof of work and proof of stake compared.",
			MediaType:       "VIDEO",
			URL:             "https://example.com/videos/consensus",
			Order:           2,
		},
		{
			KnowledgePathID: path.ID,
			Title:           "Smart contracts",
			Description:     "Code as an agreement, and where it goes wrong.",
			MediaType:       "TEXT",
			Order:           3,
		},
	}

	for i := range nodes {
		if err := db.Create(&nodes[i]).Error; err != nil {
			log.Fatalf("Failed to create node %q: %v", nodes[i].Title, err)
		}
	}

	quiz := kpModels.Quiz{
		NodeID:            nodes[0].ID,
		Title:             "Blockchain basics check",
		Description:       "A short check on the first lesson.",
		MaxAttemptsPerDay: 3,
	}
	if err := db.Create(&quiz).Error; err != nil {
		log.Fatalf("Failed to create quiz: %v", err)
	}

	question := kpModels.Question{
		QuizID:       quiz.ID,
		Text:         "What links a block to its predecessor?",
		QuestionType: kpModels.QuestionSingle,
		OrderIndex:   1,
	}
	if err := db.Create(&question).Error; err != nil {
		log.Fatalf("Failed to create question: %v", err)
	}

	options := []kpModels.Option{
		{QuestionID: question.ID, Text: "The previous block's hash", IsCorrect: true, OrderIndex: 1},
		{QuestionID: question.ID, Text: "A shared password", OrderIndex: 2},
		{QuestionID: question.ID, Text: "The miner's signature", OrderIndex: 3},
	}
	for i := range options {
		if err := db.Create(&options[i]).Error; err != nil {
			log.Fatalf("Failed to create option: %v", err)
		}
	}

	log.Printf("Sample data created: path %q with %d nodes and 1 quiz", path.Title, len(nodes))
}
