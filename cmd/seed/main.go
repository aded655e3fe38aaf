package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/geoexplorer/geoexplorer-api/config"
	"github.com/geoexplorer/geoexplorer-api/internal/domain/entity"
	repo "github.com/geoexplorer/geoexplorer-api/internal/domain/repository"
	"github.com/geoexplorer/geoexplorer-api/internal/infrastructure/mongodb"
	"github.com/geoexplorer/geoexplorer-api/pkg/helpers"
)

// Seeds a demo account with a couple of favorites for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDB)

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	users := mongodb.NewUserRepository(db)

	email := "demo@geoexplorer.dev"
	password := "password123"

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	u := &entity.User{
		Name:     "Demo User",
		Email:    email,
		Phone:    "555-0100",
		Password: hash,
	}
	if err := users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			existing, gErr := users.GetByEmail(ctx, email)
			if gErr != nil {
				log.Fatalf("failed to load existing demo user: %v", gErr)
			}
			fmt.Printf("demo user already present: id=%s email=%s\n", existing.ID, existing.Email)
			return
		}
		log.Fatalf("failed to seed user: %v", err)
	}

	if err := users.UpdateFavorites(ctx, u.ID, []string{"FR", "JP"}, u.Version); err != nil {
		log.Fatalf("failed to seed favorites: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s favorites=[FR JP]\n", u.ID, email, password)
}
