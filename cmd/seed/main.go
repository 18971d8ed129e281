// seed creates a demo dataset: an admin user, a handful of agents, sample
// bookings and a credit pool. Safe to rerun; existing records are left alone.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/airbooker/bookings_backend/config"
	"github.com/airbooker/bookings_backend/models"
	"github.com/airbooker/bookings_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	adminEmail    = "admin@airbooker.io"
	adminPassword = "Admin@123"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	models.MigrateTable()

	admin, err := seedAdmin(ctx, db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed admin user: %v\n", err)
		os.Exit(1)
	}
	ctx = utils.SetUserIdInContext(ctx, admin.ID)
	ctx = utils.SetUserNameInContext(ctx, admin.Name)
	ctx = utils.SetRoleInContext(ctx, admin.Role)

	if err := seedCredit(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed credit: %v\n", err)
		os.Exit(1)
	}

	agents, err := seedAgents(ctx, db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed agents: %v\n", err)
		os.Exit(1)
	}

	if err := seedBookings(ctx, db, agents); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed bookings: %v\n", err)
		os.Exit(1)
	}

	if _, err := models.GetOrCreateSetting(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed settings: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seed complete. Login with email=%q password=%q\n", adminEmail, adminPassword)
}

func seedAdmin(ctx context.Context, db *gorm.DB) (*models.User, error) {
	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", adminEmail).First(&existing).Error
	if err == nil {
		fmt.Println("Admin user already exists; skipping")
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	user, err := models.RegisterUser(ctx, &models.NewUser{
		Name:     "AirBooker Admin",
		Username: "airbookerAdmin",
		Email:    adminEmail,
		Password: adminPassword,
		Role:     "admin",
	})
	if err != nil {
		return nil, err
	}
	fmt.Printf("Created admin user: email=%q\n", adminEmail)
	return user, nil
}

func seedCredit(ctx context.Context) error {
	credit, err := models.GetOrCreateCredit(ctx)
	if err != nil {
		return err
	}
	if !credit.TotalAmount.IsZero() {
		fmt.Println("Credit already set up; skipping")
		return nil
	}
	_, err = models.SetCreditTotal(ctx, decimal.NewFromInt(50000), "Seeded credit limit")
	return err
}

func seedAgents(ctx context.Context, db *gorm.DB) ([]*models.Agent, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Agent{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		fmt.Println("Agents already exist; skipping")
		return models.GetAgents(ctx)
	}

	inputs := []models.NewAgent{
		{Name: "Skyline Travel", Email: "contact@skylinetravel.com", Phone: "2025550147", Address: "120 Main St, Seattle", CommissionRate: decimal.NewFromInt(10)},
		{Name: "Horizon Tours", Email: "hello@horizontours.com", Phone: "2025550173", Address: "48 Ocean Ave, Miami", CommissionRate: decimal.NewFromInt(12)},
		{Name: "Globetrotter Agency", Email: "info@globetrotter.com", Phone: "2025550190", Address: "7 Market Sq, Boston", CommissionRate: decimal.NewFromInt(8)},
	}

	var agents []*models.Agent
	for i := range inputs {
		agent, err := models.CreateAgent(ctx, &inputs[i])
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	fmt.Printf("Created %d agents\n", len(agents))
	return agents, nil
}

func seedBookings(ctx context.Context, db *gorm.DB, agents []*models.Agent) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Booking{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fmt.Println("Bookings already exist; skipping")
		return nil
	}
	if len(agents) == 0 {
		return fmt.Errorf("no agents available for bookings")
	}

	departure := time.Now().AddDate(0, 1, 0)
	inputs := []models.NewBooking{
		{
			Customer:         models.Customer{Name: "John Carter", Email: "john.carter@example.com", Phone: "2025550101"},
			AgentId:          agents[0].ID,
			DeparturePlace:   "Seattle",
			Destination:      "Tokyo",
			DepartureDate:    departure,
			TicketAmount:     decimal.NewFromInt(1200),
			CommissionAmount: decimal.NewFromInt(120),
			Status:           models.BookingStatusConfirmed,
		},
		{
			Customer:         models.Customer{Name: "Maria Lopez", Email: "maria.lopez@example.com", Phone: "2025550102"},
			AgentId:          agents[1%len(agents)].ID,
			DeparturePlace:   "Miami",
			Destination:      "Paris",
			DepartureDate:    departure.AddDate(0, 0, 7),
			TicketAmount:     decimal.NewFromInt(950),
			CommissionAmount: decimal.NewFromInt(95),
		},
		{
			Customer:         models.Customer{Name: "David Kim", Email: "david.kim@example.com", Phone: "2025550103"},
			AgentId:          agents[2%len(agents)].ID,
			DeparturePlace:   "Boston",
			Destination:      "London",
			DepartureDate:    departure.AddDate(0, 0, 14),
			TicketAmount:     decimal.NewFromInt(780),
			CommissionAmount: decimal.NewFromInt(62),
			Status:           models.BookingStatusConfirmed,
			PaymentStatus:    models.PaymentStatusPaid,
		},
	}

	for i := range inputs {
		if _, err := models.CreateBooking(ctx, &inputs[i]); err != nil {
			return err
		}
	}
	fmt.Printf("Created %d bookings\n", len(inputs))
	return nil
}
