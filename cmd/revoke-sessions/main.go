// revoke-sessions is the operator's emergency brake: it revokes every live
// console session for a user (or purges expired rows) directly in the session
// registry, without going through the gateway.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"go-shakti-admin/internal/model"
	"go-shakti-admin/internal/repository"
	"go-shakti-admin/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	user := flag.String("user", "", "user code whose sessions should be revoked")
	purge := flag.Bool("purge", false, "delete expired session rows")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	dsn := os.Getenv("SESSION_DB_DSN")
	if dsn == "" {
		log.Fatal("SESSION_DB_DSN is required")
	}

	// 2. Open registry
	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("Failed to connect to session db: %v", err)
	}
	if err := db.AutoMigrate(&model.SessionRecord{}); err != nil {
		log.Fatalf("Failed to migrate session db: %v", err)
	}
	repo := repository.NewSessionRepo(db)

	now := time.Now()

	if *user != "" {
		if err := repo.RevokeAllForUser(*user, now); err != nil {
			log.Fatalf("Failed to revoke sessions for %s: %v", *user, err)
		}
		log.Printf("Revoked all live sessions for %s", *user)
	}

	if *purge {
		n, err := repo.PurgeExpired(now)
		if err != nil {
			log.Fatalf("Failed to purge expired sessions: %v", err)
		}
		log.Printf("Purged %d expired session rows", n)
	}

	if *user == "" && !*purge {
		log.Println("Nothing to do: pass -user <code> and/or -purge")
	}
}
