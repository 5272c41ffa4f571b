package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// Seeds an admin and two demo users with a handful of todos.
func main() {
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Todo{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	todoRepo := repository.NewTodoRepository(gormDB)

	users := []struct {
		fullName string
		email    string
		password string
		role     string
		todos    []string
	}{
		{"Site Admin", "admin@taskboard.local", "admin#123", model.RoleAdmin, nil},
		{"Ayu Pratiwi", "ayu@taskboard.local", "demo#123", model.RoleUser, []string{"Buy milk", "Renew passport", "Call the bank"}},
		{"Bima Santoso", "bima@taskboard.local", "demo#123", model.RoleUser, []string{"Fix the fence", "Plan the trip"}},
	}

	for _, u := range users {
		existing, err := userRepo.FindByEmail(ctx, u.email)
		if err == nil && existing != nil {
			log.Printf("skip %s, already seeded", u.email)
			continue
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			log.Fatalf("check %s: %v", u.email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		user := &model.User{
			FullName:     u.fullName,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("create %s: %v", u.email, err)
		}

		for i, item := range u.todos {
			todo := &model.Todo{
				Item:   item,
				IsDone: i == 0,
				UserID: user.ID,
			}
			if err := todoRepo.Create(ctx, todo); err != nil {
				log.Fatalf("create todo for %s: %v", u.email, err)
			}
		}
		log.Printf("seeded %s (%s) with %d todos", u.email, u.role, len(u.todos))
	}
}
