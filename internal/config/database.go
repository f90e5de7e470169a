package config

import (
	"fmt"
	"log"
	"os"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rakhadian/hr-ai-platform/internal/models"
)

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := cfg.GetDatabaseDSN()

	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("✅ Database connected successfully")

	// Auto migrate
	if err := db.AutoMigrate(
		&models.User{},
		&models.Booking{},
		&models.PolicyDocument{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("✅ Database migration completed")

	if err := seedUsers(db, cfg.Auth.UsersFile); err != nil {
		return nil, fmt.Errorf("failed to seed users: %w", err)
	}

	return db, nil
}

// seedUsers populates the users table on first boot, either from the
// configured spreadsheet (Username | Password | Role) or from a built-in
// default pair when the file is absent.
func seedUsers(db *gorm.DB, usersFile string) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users, err := loadUsersFromSpreadsheet(usersFile)
	if err != nil {
		log.Printf("⚠️  Could not load %s (%v), seeding default users", usersFile, err)
		users = defaultUsers()
	}

	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			return fmt.Errorf("failed to create user %q: %w", users[i].Username, err)
		}
	}

	log.Printf("✅ Seeded %d user(s)", len(users))
	return nil
}

func loadUsersFromSpreadsheet(path string) ([]models.User, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	var users []models.User
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			// Skip the header and incomplete rows.
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(row[1]), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %q: %w", row[0], err)
		}
		users = append(users, models.User{
			Username:     row[0],
			PasswordHash: string(hash),
			Role:         row[2],
		})
	}

	if len(users) == 0 {
		return nil, fmt.Errorf("no user rows in %s", path)
	}
	return users, nil
}

func defaultUsers() []models.User {
	mk := func(username, password, role string) models.User {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return models.User{Username: username, PasswordHash: string(hash), Role: role}
	}
	return []models.User{
		mk("hr_manager", "hr_manager123", models.RoleHRManager),
		mk("employee", "employee123", models.RoleEmployee),
	}
}
