package main

import (
	"context"
	"log"
	"time"

	"crmportal/internal/config"
	"crmportal/internal/database"
	"crmportal/internal/domain"
	"crmportal/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "password123"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// children first so foreign keys hold
	log.Println("Cleaning old data...")
	for _, table := range []string{"orders", "services", "customers", "portals", "employees", "administrators", "sessions", "accounts"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("clean %s: %v", table, err)
		}
	}

	ctx := context.Background()
	accounts := repository.NewAccountRepository(db)
	portals := repository.NewPortalRepository(db)
	services := repository.NewServiceRepository(db)
	orders := repository.NewOrderRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	account := func(email string) *domain.Account {
		return &domain.Account{Email: email, PasswordHash: string(hash)}
	}

	log.Println("Creating administrators...")
	admins := []*domain.Administrator{
		{Username: "admin1", Email: "admin1@example.com", Role: domain.AdminRoleAdmin},
		{Username: "admin2", Email: "admin2@example.com", Role: domain.AdminRoleModerator},
	}
	for _, a := range admins {
		if err := accounts.CreateWithRole(ctx, account(a.Email), a); err != nil {
			log.Fatalf("admin %s: %v", a.Email, err)
		}
	}

	log.Println("Creating portal...")
	portal := &domain.Portal{Name: "Main Portal", AdminID: admins[0].ID}
	if err := portals.Create(ctx, portal); err != nil {
		log.Fatal(err)
	}

	log.Println("Creating customers...")
	customers := []*domain.Customer{
		{
			FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", Phone: "123-456-7890",
			Address: "123 Main St", City: "New York", State: "NY", Country: "USA", ZipCode: "10001",
			PortalID: &portal.ID,
		},
		{
			FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com", Phone: "098-765-4321",
			Address: "456 Oak Ave", City: "Los Angeles", State: "CA", Country: "USA", ZipCode: "90001",
			PortalID: &portal.ID,
		},
	}
	for _, c := range customers {
		if err := accounts.CreateWithRole(ctx, account(c.Email), c); err != nil {
			log.Fatalf("customer %s: %v", c.Email, err)
		}
	}

	log.Println("Creating services...")
	catalog := []*domain.Service{
		{Name: "Web Development", Description: "Custom website development services", Price: decimal.RequireFromString("999.99")},
		{Name: "Mobile App Development", Description: "Native and cross-platform mobile app development", Price: decimal.RequireFromString("1499.99")},
		{Name: "SEO Optimization", Description: "Search engine optimization services", Price: decimal.RequireFromString("499.99")},
	}
	for _, s := range catalog {
		s.PortalID = &portal.ID
		s.IsActive = true
		if err := services.Create(ctx, s); err != nil {
			log.Fatalf("service %s: %v", s.Name, err)
		}
	}

	log.Println("Creating orders...")
	sample := []struct {
		date     string
		status   domain.OrderStatus
		customer *domain.Customer
		service  *domain.Service
	}{
		{"2023-01-15", domain.OrderDelivered, customers[0], catalog[0]},
		{"2023-02-20", domain.OrderShipped, customers[0], catalog[1]},
		{"2023-03-10", domain.OrderPending, customers[1], catalog[2]},
	}
	for _, s := range sample {
		date, err := time.Parse(time.DateOnly, s.date)
		if err != nil {
			log.Fatal(err)
		}
		total, err := domain.OrderTotal(s.service.Price, 1)
		if err != nil {
			log.Fatal(err)
		}
		o := &domain.Order{
			OrderDate:   date,
			Status:      s.status,
			TotalAmount: total,
			Quantity:    1,
			CustomerID:  s.customer.ID,
			ServiceID:   s.service.ID,
		}
		if err := orders.Create(ctx, o); err != nil {
			log.Fatalf("order %s: %v", s.date, err)
		}
	}

	log.Printf("seed completed: admins=%d customers=%d services=%d orders=%d password=%s",
		len(admins), len(customers), len(catalog), len(sample), seedPassword)
}
