// Command seed loads sample vendors, items and credentials into the
// configured storage backend. Collections that already hold data are
// left untouched, so re-running it is safe.
package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/freshconnect/api/internal/adapters/memory"
	"github.com/freshconnect/api/internal/adapters/postgres"
	"github.com/freshconnect/api/internal/adapters/storage"
	"github.com/freshconnect/api/internal/adapters/valkey"
	"github.com/freshconnect/api/internal/core/domain"
	"github.com/freshconnect/api/internal/core/ports"
	"github.com/freshconnect/api/internal/pkg/config"
	"github.com/freshconnect/api/internal/pkg/logging"
)

func main() {
	cfg, err := config.Load("freshconnect-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logging.Setup("freshconnect-seed", cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var kv ports.KeyValueStore
	switch cfg.Storage.Backend {
	case "postgres":
		db, err := postgres.New(ctx, cfg.Storage.Postgres.DSN())
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		kv = postgres.NewKVStore(db)
	case "valkey":
		store, err := valkey.NewKVStore(cfg.Valkey.Addr)
		if err != nil {
			log.Fatalf("valkey storage: %v", err)
		}
		defer store.Close()
		kv = store
	case "memory":
		// A memory backend only lives as long as this process; seeding
		// it standalone is pointless but harmless.
		kv = memory.NewKVStore()
	default:
		log.Fatalf("unknown storage backend: %s", cfg.Storage.Backend)
	}

	gateway := storage.NewGateway(kv)
	if err := gateway.InitializeData(ctx, sampleVendors(), sampleItems(), sampleCredentials()); err != nil {
		log.Fatalf("seed: %v", err)
	}

	vendors, _ := gateway.List(ctx)
	items, _ := gateway.Items().List(ctx)
	slog.Info("seed complete", "backend", cfg.Storage.Backend,
		"vendors", len(vendors), "items", len(items))
}

func sampleVendors() []domain.Vendor {
	return []domain.Vendor{
		{
			ID:       "vendor-1",
			Name:     "Fresh Farm Market",
			Location: domain.GeoPoint{Lat: 12.9716, Lon: 77.5946},
			Contact:  domain.Contact{Phone: "+91 98450 12345", Email: "hello@freshfarmmarket.in"},
			BusinessHours: domain.BusinessHours{
				Open:  "06:00",
				Close: "14:00",
				Days:  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
			},
			Specialties: []string{"Organic Vegetables", "Seasonal Fruits"},
			Rating:      4.5,
			Description: "Family-run stall selling produce grown on our own farm outside Bengaluru.",
			IsActive:    true,
		},
		{
			ID:       "vendor-2",
			Name:     "Mumbai Mandi Fresh",
			Location: domain.GeoPoint{Lat: 19.076, Lon: 72.8777},
			Contact:  domain.Contact{Phone: "+91 98200 54321", Email: "orders@mumbaimandi.in"},
			BusinessHours: domain.BusinessHours{
				Open:  "05:30",
				Close: "13:00",
				Days:  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
			},
			Specialties: []string{"Exotic Fruits", "Local Produce"},
			Rating:      4.2,
			Description: "Wholesale-priced fruit direct from the Vashi APMC market.",
			IsActive:    true,
		},
		{
			ID:       "vendor-3",
			Name:     "Delhi Organic Greens",
			Location: domain.GeoPoint{Lat: 28.6139, Lon: 77.209},
			Contact:  domain.Contact{Phone: "+91 98100 67890", Email: "contact@delhiorganic.in"},
			BusinessHours: domain.BusinessHours{
				Open:  "07:00",
				Close: "19:00",
				Days:  []string{"Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
			},
			Specialties: []string{"Organic Vegetables", "Leafy Greens"},
			Rating:      4.8,
			Description: "Certified organic vegetables from farms in the NCR belt.",
			IsActive:    true,
		},
		{
			ID:       "vendor-4",
			Name:     "Chennai Coastal Produce",
			Location: domain.GeoPoint{Lat: 13.0827, Lon: 80.2707},
			Contact:  domain.Contact{Phone: "+91 98400 24680", Email: "hi@coastalproduce.in"},
			BusinessHours: domain.BusinessHours{
				Open:  "06:00",
				Close: "12:00",
				Days:  []string{"Monday", "Wednesday", "Friday", "Saturday"},
			},
			Specialties: []string{"Seasonal Fruits", "Coconut Products"},
			Rating:      3.9,
			Description: "Seasonal fruit and coconut produce from coastal Tamil Nadu.",
			IsActive:    false,
		},
	}
}

func sampleItems() []domain.ProduceItem {
	now := time.Now()
	return []domain.ProduceItem{
		{ID: "item-1", Name: "Alphonso Mangoes", Category: domain.CategoryFruits, PricePerKg: 250, Quantity: 40, Description: "Ratnagiri Alphonso, tree-ripened.", VendorID: "vendor-2", LastUpdated: now, IsAvailable: true},
		{ID: "item-2", Name: "Organic Spinach", Category: domain.CategoryOrganic, PricePerKg: 45, Quantity: 15, Description: "Pesticide-free palak, picked this morning.", VendorID: "vendor-1", LastUpdated: now, IsAvailable: true},
		{ID: "item-3", Name: "Fresh Tomatoes", Category: domain.CategoryVegetables, PricePerKg: 35, Quantity: 60, Description: "Firm hybrid tomatoes.", VendorID: "vendor-1", LastUpdated: now, IsAvailable: true},
		{ID: "item-4", Name: "Kerala Bananas", Category: domain.CategoryLocal, PricePerKg: 55, Quantity: 0, Description: "Nendran bananas, great for chips.", VendorID: "vendor-2", LastUpdated: now, IsAvailable: false},
		{ID: "item-5", Name: "Baby Carrots", Category: domain.CategoryOrganic, PricePerKg: 80, Quantity: 20, Description: "Sweet Ooty carrots.", VendorID: "vendor-3", LastUpdated: now, IsAvailable: true},
		{ID: "item-6", Name: "Winter Strawberries", Category: domain.CategorySeasonal, PricePerKg: 300, Quantity: 8, Description: "Mahabaleshwar strawberries, limited stock.", VendorID: "vendor-3", LastUpdated: now, IsAvailable: true},
	}
}

func sampleCredentials() []domain.VendorCredential {
	return []domain.VendorCredential{
		{Username: "freshfarm", Password: "harvest2024", VendorID: "vendor-1"},
		{Username: "mumbaimandi", Password: "mandi@123", VendorID: "vendor-2"},
		{Username: "delhigreens", Password: "organic!55", VendorID: "vendor-3"},
		{Username: "coastal", Password: "chennai#9", VendorID: "vendor-4"},
	}
}
