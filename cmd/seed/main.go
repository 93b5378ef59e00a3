// Command main runs the development database seeder.
package main

import (
	"context"
	"flag"
	"os"

	"scribe/internal/config"
	"scribe/internal/database"
	"scribe/internal/middleware"
	"scribe/internal/security"
	"scribe/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	seedValue := flag.Int64("seed", 0, "Random seed (0 picks one)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	middleware.SetupLogger(cfg.Env)
	log := middleware.Logger

	if cfg.IsProduction() {
		log.Error("refusing to seed a production database")
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = database.Close(db) }()

	log.Info("seeding database", "users", *numUsers, "posts", *numPosts, "clean", *shouldClean)

	res, err := seed.NewSeeder(db, security.NewBcryptHasher(security.DefaultCost)).Run(context.Background(), seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
		IconURL:     cfg.DefaultIconURL,
		Seed:        *seedValue,
	})
	if err != nil {
		log.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	log.Info("seeding complete", "users", res.Users, "posts", res.Posts, "password", seed.DefaultPassword)
}
