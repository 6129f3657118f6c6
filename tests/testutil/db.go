package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/brushline/contractor-api/internal/database"
	"github.com/brushline/contractor-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates a connection to the test PostgreSQL database.
// It uses environment variables or falls back to docker-compose defaults.
func SetupTestDB(t *testing.T) *gorm.DB {
	host := getEnvOrDefault("DATABASE_HOST", "localhost")
	port := getEnvOrDefault("DATABASE_PORT", "5432")
	user := getEnvOrDefault("DATABASE_USER", "contractor_user")
	password := getEnvOrDefault("DATABASE_PASSWORD", "contractor_password")
	dbname := getEnvOrDefault("DATABASE_NAME", "contractor")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		host, port, user, password, dbname)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "Failed to connect to test database. Ensure PostgreSQL is running.")

	require.NoError(t, database.AutoMigrate(db))

	return db
}

// CleanupTestData cleans up test data from all tables.
// This should be called after tests to ensure a clean state.
func CleanupTestData(t *testing.T, db *gorm.DB) {
	// Delete in order to respect foreign key constraints
	tables := []string{
		"activities",
		"sessions",
		"purchase_order_items",
		"purchase_orders",
		"payments",
		"invoices",
		"service_orders",
		"quotes",
		"projects",
		"clients",
		"staff",
		"subcontractors",
		"suppliers",
		"users",
		"number_sequences",
	}

	for _, table := range tables {
		err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error
		if err != nil {
			// Table might not exist, that's ok
			t.Logf("Note: Could not clean table %s: %v", table, err)
		}
	}
}

// CreateTestClient creates a test client and returns it
func CreateTestClient(t *testing.T, db *gorm.DB, name string) *domain.Client {
	client := &domain.Client{
		Name:           name,
		Email:          "test@example.com",
		Phone:          "5551234567",
		Address:        "123 Main St",
		Classification: domain.ClientClassificationResidential,
		Type:           domain.ClientTypeClient,
	}
	err := db.Omit(clause.Associations).Create(client).Error
	require.NoError(t, err)
	return client
}

// CreateTestProject creates a test project for the given client
func CreateTestProject(t *testing.T, db *gorm.DB, clientID uuid.UUID, title string) *domain.Project {
	project := &domain.Project{
		ClientID:    clientID,
		Title:       title,
		Description: "Interior repaint",
		Address:     "123 Main St",
		ServiceType: "interior",
		Status:      domain.ProjectStatusPending,
		Priority:    domain.ProjectPriorityMedium,
	}
	err := db.Omit(clause.Associations).Create(project).Error
	require.NoError(t, err)
	return project
}

// UniqueSuffix returns a unique string fragment for test data
func UniqueSuffix() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
