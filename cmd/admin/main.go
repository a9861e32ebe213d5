package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gosocial/backend/internal/config"
	"gosocial/backend/internal/storage"
)

func usage() {
	fmt.Println("Usage: admin <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  activate <username>     mark the account active")
	fmt.Println("  deactivate <username>   mark the account inactive")
	fmt.Println("  promote <username>      grant administrator rights")
	fmt.Println("  stats                   print user/room/message counts")
	os.Exit(1)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded")
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	store := storage.NewService(db, nil) // no Redis needed for the admin CLI

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "activate":
		setActive(store, arg(2), true)
	case "deactivate":
		setActive(store, arg(2), false)
	case "promote":
		promote(store, arg(2))
	case "stats":
		stats(store)
	default:
		usage()
	}
}

func arg(i int) string {
	if len(os.Args) <= i {
		usage()
	}
	return os.Args[i]
}

func setActive(store *storage.Service, username string, active bool) {
	user, err := store.FindUserByUsername(username)
	if err != nil {
		log.Fatalf("user %q not found: %v", username, err)
	}
	user.Active = active
	if err := store.SaveUser(user); err != nil {
		log.Fatalf("failed to update user %q: %v", username, err)
	}
	fmt.Printf("user %q active=%v\n", username, active)
}

func promote(store *storage.Service, username string) {
	user, err := store.FindUserByUsername(username)
	if err != nil {
		log.Fatalf("user %q not found: %v", username, err)
	}
	user.IsAdministrator = true
	if err := store.SaveUser(user); err != nil {
		log.Fatalf("failed to update user %q: %v", username, err)
	}
	fmt.Printf("user %q is now an administrator\n", username)
}

func stats(store *storage.Service) {
	users, rooms, messages, err := store.Stats()
	if err != nil {
		log.Fatalf("failed to collect stats: %v", err)
	}
	fmt.Printf("users: %d\nrooms: %d\nmessages: %d\n", users, rooms, messages)
}
