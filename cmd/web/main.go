package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Kaabero/Gambler-sub000/internal/auth"
	"github.com/Kaabero/Gambler-sub000/internal/db"
	"github.com/Kaabero/Gambler-sub000/internal/store"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func lifetimeFromEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			return time.Duration(hours) * time.Hour
		}
		log.Printf("Ignoring invalid %s=%q", key, v)
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	database := db.InitDB()
	defer database.Close()

	if err := db.RunMigrations(database, "file://migrations"); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = lifetimeFromEnv("SESSION_LIFETIME_HOURS", 24*time.Hour)
	sessionManager.Store = sqlite3store.New(database.DB)

	clock := clockwork.NewRealClock()
	authenticator := auth.NewAuthenticator(
		store.NewUserStore(database),
		store.NewTokenStore(database),
		clock,
		lifetimeFromEnv("TOKEN_LIFETIME_HOURS", 24*time.Hour),
	)

	router := newRouter(sessionManager, database, clock, authenticator)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server starting on http://localhost:" + port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}
