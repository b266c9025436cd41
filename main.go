package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	db, err := openDB(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// `./examhub migrate` applies the versioned schema and exits; the server
	// itself never creates or alters tables.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := migrateDB(db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		log.Println("migrations applied")
		return
	}

	if err := os.MkdirAll(cfg.CVUploadDir, 0o755); err != nil {
		log.Fatalf("creating cv upload dir %s: %v", cfg.CVUploadDir, err)
	}

	app := &App{
		cfg:  cfg,
		db:   db,
		mail: newSMTPMailer(cfg),
		ai:   newOpenAIClient(cfg.OpenAIKey),
	}

	r := gin.Default()
	r.LoadHTMLGlob("templates/*.html")
	r.Static("/static", "./static")
	app.setupRoutes(r)

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
