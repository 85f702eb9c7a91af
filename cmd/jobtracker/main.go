package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/TechBuddyz/Job-Application-Tracker/internal/api"
	ncli "github.com/TechBuddyz/Job-Application-Tracker/internal/notion"
	"github.com/TechBuddyz/Job-Application-Tracker/internal/store"
	"github.com/TechBuddyz/Job-Application-Tracker/internal/tabular"
)

func mask(s string) string {
	if len(s) <= 10 {
		return "****"
	}
	return s[:4] + "…" + s[len(s)-4:]
}

// normalizeNotionID removes dashes if present.
func normalizeNotionID(id string) string {
	id = strings.TrimSpace(id)
	return strings.ReplaceAll(id, "-", "")
}

func main() {
	_ = godotenv.Load()

	dbPath := os.Getenv("JOBTRACKER_DB")
	port := os.Getenv("PORT")
	notionToken := os.Getenv("NOTION_TOKEN")
	notionDBID := os.Getenv("NOTION_DB_ID")

	if port == "" {
		port = "8080"
	}
	if dbPath == "" {
		dbPath = "jobtracker.sqlite"
	}

	log.Println("=== JobTracker Startup ===")
	log.Println("SQLite file:", dbPath)
	log.Println("HTTP port:  ", port)
	if notionToken != "" {
		log.Println("Notion token (masked):", mask(notionToken))
	}
	log.Println("==========================")

	sheet, err := tabular.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	defer sheet.Close()

	st := store.New(sheet)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := st.Init(ctx); err != nil {
		log.Fatalf("init store: %v", err)
	}
	log.Println("Sheet ready at:", dbPath)

	// Notion mirror is optional; the tracker is fully usable without it.
	var mirror *ncli.Client
	if notionToken != "" && notionDBID != "" {
		mirror = ncli.New(notionToken, normalizeNotionID(notionDBID))
		if err := mirror.Ping(ctx); err != nil {
			log.Fatalf("Notion ping failed: %v", err)
		}
		log.Println("Notion mirror OK.")
	}

	s := api.New(st, mirror)
	addr := ":" + port
	log.Println("HTTP listening on", addr)
	if err := s.Listen(addr); err != nil {
		log.Fatal(err)
	}
}
