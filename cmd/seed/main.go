package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/iliyamo/digital-notice-board/internal/config"
	"github.com/iliyamo/digital-notice-board/internal/database"
	"github.com/iliyamo/digital-notice-board/internal/model"
	"github.com/iliyamo/digital-notice-board/internal/repository"
)

// schema holds the DDL for a fresh deployment, one statement per
// element. The server assumes the tables exist; running this seeder
// once provisions them.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	registration_number VARCHAR(64) NULL UNIQUE,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(32) NOT NULL DEFAULT 'student',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS categories (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(64) NOT NULL UNIQUE
)`,
	`CREATE TABLE IF NOT EXISTS notices (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	description TEXT NOT NULL,
	category VARCHAR(64) NOT NULL,
	` + "`date`" + ` VARCHAR(10) NOT NULL,
	urgent TINYINT(1) NOT NULL DEFAULT 0,
	file VARCHAR(512) NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	INDEX idx_notices_category (category),
	INDEX idx_notices_date (` + "`date`" + `)
)`,
}

var defaultCategories = []string{"exam", "event", "holiday", "placement", "library", "general"}

func main() {
	userCount := pflag.Int("users", 6, "number of random demo accounts to create")
	noticeCount := pflag.Int("notices", 20, "number of random notices to publish")
	pflag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	gofakeit.Seed(time.Now().UnixNano())

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("seed: open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("seed: create schema: %v", err)
		}
	}
	log.Println("schema ready")

	users := repository.NewUserRepo(db)
	notices := repository.NewNoticeRepo(db)
	categories := repository.NewCategoryRepo(db)

	for _, name := range defaultCategories {
		if _, err := categories.Create(ctx, name); err != nil && !errors.Is(err, repository.ErrCategoryExists) {
			log.Fatalf("seed: create category %q: %v", name, err)
		}
	}
	log.Printf("%d categories ready", len(defaultCategories))

	seedUsers(ctx, users, cfg.BcryptCost, *userCount)
	seedNotices(ctx, notices, *noticeCount)
}

// seedUsers creates one fixed admin plus count random accounts with a
// role mix weighted towards students. All seeded accounts share the
// password "password123".
func seedUsers(ctx context.Context, repo *repository.UserRepo, cost, count int) {
	const password = "password123"

	admin := model.User{
		Name:  "Board Admin",
		Email: "admin@board.local",
		Role:  model.RoleAdmin,
	}
	if _, err := repo.Create(ctx, admin, password, cost); err != nil && !errors.Is(err, repository.ErrEmailExists) {
		log.Fatalf("seed: create admin: %v", err)
	}

	roles := []string{model.RoleStudent, model.RoleStudent, model.RoleStudent, model.RoleFaculty, model.RoleLibrarian}
	created := 0
	for i := 0; i < count; i++ {
		role := roles[i%len(roles)]
		u := model.User{
			Name:  gofakeit.Name(),
			Email: gofakeit.Email(),
			Role:  role,
		}
		if role == model.RoleStudent {
			u.RegistrationNumber = fmt.Sprintf("REG%d", gofakeit.Number(100000, 999999))
		}
		if _, err := repo.Create(ctx, u, password, cost); err != nil {
			if errors.Is(err, repository.ErrEmailExists) {
				continue
			}
			log.Fatalf("seed: create user: %v", err)
		}
		created++
	}
	log.Printf("admin@board.local plus %d demo accounts (password %q)", created, password)
}

// seedNotices publishes a batch of random notices, a few of them
// urgent, with dates spread over the last two weeks.
func seedNotices(ctx context.Context, repo *repository.NoticeRepo, count int) {
	for i := 0; i < count; i++ {
		date := time.Now().AddDate(0, 0, -gofakeit.Number(0, 14)).Format("2006-01-02")
		n := model.Notice{
			Title:       gofakeit.Sentence(5),
			Description: gofakeit.Paragraph(1, 3, 8, " "),
			Category:    defaultCategories[gofakeit.Number(0, len(defaultCategories)-1)],
			Date:        date,
			Urgent:      gofakeit.Number(0, 4) == 0,
		}
		if err := repo.Create(ctx, &n); err != nil {
			log.Fatalf("seed: create notice: %v", err)
		}
	}
	log.Printf("%d demo notices published", count)
}
