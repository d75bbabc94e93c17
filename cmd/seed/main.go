package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"studentportal/internal/cache"
	"studentportal/internal/config"
	"studentportal/internal/db"
	"studentportal/internal/repository"
	"studentportal/internal/service"
	"studentportal/internal/validation"
)

// adminSpec is one "email" or "email=Display Name" entry.
type adminSpec struct {
	Email string
	Name  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: seed [email[=Name] ...]\n\nAdmins may also be listed in SEED_ADMINS, comma separated.\n")
	}
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	admins := parseAdmins(append(flag.Args(), splitList(os.Getenv("SEED_ADMINS"))...))
	if len(admins) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := db.NewMongo(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close(context.Background())
	log.Println("Connected to database")

	if err := store.EnsureIndexes(ctx, cfg.UniqueEmails); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	// Shares the server's user cache so promoted users are evicted there too.
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	userRepo := repository.NewUserRepository(store.Database(), nil)
	users := service.NewUserService(userRepo, cacheClient, validation.New())

	created, existing, err := seedAdmins(ctx, users, admins)
	if err != nil {
		log.Fatalf("Failed to seed admins: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New admins created: %d", created)
	log.Printf("  - Existing users: %d", existing)
	log.Printf("  - Total admins processed: %d", len(admins))
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseAdmins(args []string) []adminSpec {
	out := make([]adminSpec, 0, len(args))
	for _, arg := range args {
		email, name, _ := strings.Cut(arg, "=")
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		out = append(out, adminSpec{Email: email, Name: strings.TrimSpace(name)})
	}
	return out
}

// seedAdmins provisions every admin, creating missing users and promoting the rest.
func seedAdmins(ctx context.Context, users service.UserService, admins []adminSpec) (created int, existing int, err error) {
	for _, a := range admins {
		user, isNew, err := users.ProvisionAdmin(ctx, a.Name, a.Email)
		if err != nil {
			return created, existing, fmt.Errorf("error provisioning admin %s: %w", a.Email, err)
		}
		if isNew {
			log.Printf("Created admin %s (%s)", user.Email, user.ID.Hex())
			created++
		} else {
			log.Printf("Admin %s already present (%s)", user.Email, user.ID.Hex())
			existing++
		}
	}
	return created, existing, nil
}
