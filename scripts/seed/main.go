// Command seed inserts demo accounts for local development: one teacher
// and a handful of students, all sharing a known password. Subjects and
// classes come from the migrations; this only adds people.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/educore-id/educore-api/internal/models"
	"github.com/educore-id/educore-api/internal/repository"
	"github.com/educore-id/educore-api/pkg/config"
	"github.com/educore-id/educore-api/pkg/database"
)

func main() {
	var password string
	flag.StringVar(&password, "password", "password123", "password for every seeded account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Env == config.EnvProduction {
		log.Fatal("refusing to seed a production database")
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.Database); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := repository.NewAccountRepository(db)

	teacher := &models.Account{Email: "guru@educore.local", PasswordHash: string(hash), Role: models.RoleTeacher}
	err = repo.CreateTeacher(ctx, teacher, &models.TeacherProfile{FullName: "Guru Demo"})
	switch err {
	case nil:
		fmt.Printf("teacher %s created (%s)\n", teacher.Email, teacher.ID)
	case repository.ErrEmailTaken:
		fmt.Printf("teacher %s already exists, skipping\n", teacher.Email)
	default:
		log.Fatalf("failed to seed teacher: %v", err)
	}

	students := []struct {
		email string
		name  string
		grade string
	}{
		{"siswa1@educore.local", "Siswa Satu", "10"},
		{"siswa2@educore.local", "Siswa Dua", "10"},
		{"siswa3@educore.local", "Siswa Tiga", "11"},
	}
	for _, s := range students {
		account := &models.Account{Email: s.email, PasswordHash: string(hash), Role: models.RoleStudent}
		profile := &models.StudentProfile{
			FullName:      s.name,
			GradeLevel:    s.grade,
			GuardianName:  "Wali " + s.name,
			GuardianPhone: "081200000000",
		}
		err := repo.CreateStudent(ctx, account, profile)
		switch err {
		case nil:
			fmt.Printf("student %s created (%s)\n", s.email, account.ID)
		case repository.ErrEmailTaken:
			fmt.Printf("student %s already exists, skipping\n", s.email)
		default:
			log.Fatalf("failed to seed student %s: %v", s.email, err)
		}
	}
}
