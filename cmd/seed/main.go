package main

import (
	"context"
	"os"
	"strings"

	"github.com/nimasrn/marketplace/internal/config"
	"github.com/nimasrn/marketplace/internal/model"
	"github.com/nimasrn/marketplace/internal/repository"
	"github.com/nimasrn/marketplace/pkg/logger"
	"github.com/nimasrn/marketplace/pkg/pg"
	"github.com/shopspring/decimal"
)

var sampleCategories = []model.CategoryCreateRequest{
	{
		Name:        "Gaming Accounts",
		Slug:        "gaming-accounts",
		Description: "Premium gaming accounts for various platforms",
		Icon:        "gamepad",
		IsActive:    true,
	},
	{
		Name:        "Streaming Services",
		Slug:        "streaming-services",
		Description: "Netflix, Spotify, Disney+ and other streaming subscriptions",
		Icon:        "tv",
		IsActive:    true,
	},
	{
		Name:        "Gift Cards",
		Slug:        "gift-cards",
		Description: "Digital gift cards for popular retailers and services",
		Icon:        "gift",
		IsActive:    true,
	},
	{
		Name:        "Software Licenses",
		Slug:        "software-licenses",
		Description: "Software licenses and digital tools",
		Icon:        "key",
		IsActive:    true,
	},
}

var sampleUsers = []model.User{
	{
		ID:              "seller1",
		Email:           "seller1@example.com",
		FirstName:       "John",
		LastName:        "Doe",
		IsVerified:      true,
		WalletBalance:   decimal.RequireFromString("1250.00"),
		TotalSales:      decimal.RequireFromString("15000.00"),
		SellerRating:    decimal.RequireFromString("4.8"),
		CompletedOrders: 147,
	},
	{
		ID:              "seller2",
		Email:           "seller2@example.com",
		FirstName:       "Jane",
		LastName:        "Smith",
		IsVerified:      true,
		WalletBalance:   decimal.RequireFromString("850.00"),
		TotalSales:      decimal.RequireFromString("8900.00"),
		SellerRating:    decimal.RequireFromString("4.6"),
		CompletedOrders: 89,
	},
}

var sampleListings = []model.ListingCreateRequest{
	{
		SellerID:    "seller1",
		CategoryID:  2,
		Title:       "Netflix Premium Account - 4K UHD Access",
		Description: "Premium Netflix account with 4K streaming, multiple profiles, and global access. Account comes with email access for password changes. Guaranteed to work for 12 months or replacement provided.",
		Price:       decimal.RequireFromString("29.99"),
		ImageURL:    "https://images.unsplash.com/photo-1574375927938-d5a98e8ffe85?w=400",
		Platform:    "Netflix",
		AccountDetails: model.Attributes{
			"screens":  4,
			"quality":  "4K UHD",
			"region":   "Global",
			"warranty": "12 months",
		},
		IsInstantDelivery: true,
	},
	{
		SellerID:    "seller1",
		CategoryID:  2,
		Title:       "Spotify Premium Family Plan - 6 Accounts",
		Description: "Spotify Premium Family subscription for up to 6 users. Ad-free music, offline downloads, unlimited skips. Fresh account with full access.",
		Price:       decimal.RequireFromString("24.99"),
		ImageURL:    "https://images.unsplash.com/photo-1611339555312-e607c8352fd7?w=400",
		Platform:    "Spotify",
		AccountDetails: model.Attributes{
			"users":    6,
			"features": []string{"Ad-free", "Offline downloads", "Unlimited skips"},
			"duration": "1 month",
		},
		IsInstantDelivery: true,
	},
	{
		SellerID:    "seller2",
		CategoryID:  1,
		Title:       "Fortnite Account - Rare Skins & V-Bucks",
		Description: "Epic Fortnite account with rare skins including Black Knight, Skull Trooper, and more. 5000+ V-Bucks included. Level 250+ with many exclusive items.",
		Price:       decimal.RequireFromString("299.99"),
		ImageURL:    "https://images.unsplash.com/photo-1542751371-adc38448a05e?w=400",
		Platform:    "Fortnite",
		AccountDetails: model.Attributes{
			"skins":  []string{"Black Knight", "Skull Trooper", "Renegade Raider"},
			"vbucks": 5000,
			"level":  250,
			"season": "Chapter 4",
		},
	},
	{
		SellerID:    "seller2",
		CategoryID:  3,
		Title:       "Amazon Gift Card - $100 Value",
		Description: "Valid Amazon gift card worth $100. Can be used for any purchases on Amazon.com. Digital delivery within minutes of purchase.",
		Price:       decimal.RequireFromString("95.00"),
		ImageURL:    "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=400",
		Platform:    "Amazon",
		AccountDetails: model.Attributes{
			"value":  "$100",
			"region": "US",
			"expiry": "Never expires",
		},
		IsInstantDelivery: true,
	},
	{
		SellerID:    "seller1",
		CategoryID:  4,
		Title:       "Microsoft Office 365 Pro Plus License",
		Description: "Genuine Microsoft Office 365 Professional Plus license key. Includes Word, Excel, PowerPoint, Outlook, Teams, and more. 1TB OneDrive storage included.",
		Price:       decimal.RequireFromString("49.99"),
		ImageURL:    "https://images.unsplash.com/photo-1633114128814-2dd83d67dece?w=400",
		Platform:    "Microsoft",
		AccountDetails: model.Attributes{
			"apps":     []string{"Word", "Excel", "PowerPoint", "Outlook", "Teams"},
			"storage":  "1TB OneDrive",
			"devices":  "5 devices",
			"duration": "1 year",
		},
		IsInstantDelivery: true,
	},
	{
		SellerID:    "seller2",
		CategoryID:  2,
		Title:       "Disney+ Premium Account - 4K & Downloads",
		Description: "Disney+ premium subscription with 4K streaming, offline downloads, and access to entire Disney catalog including Marvel, Star Wars, and Pixar content.",
		Price:       decimal.RequireFromString("19.99"),
		ImageURL:    "https://images.unsplash.com/photo-1489599904948-f72a4b996c0d?w=400",
		Platform:    "Disney+",
		AccountDetails: model.Attributes{
			"quality":   "4K",
			"downloads": "Unlimited",
			"profiles":  7,
			"content":   []string{"Disney", "Marvel", "Star Wars", "Pixar", "National Geographic"},
		},
		IsInstantDelivery: true,
	},
}

func main() {
	err := config.Load(getEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	pgConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}
	db, err := pg.CreateReadWrite(pgConf, pgConf, false)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	ctx := context.Background()
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)

	logger.Info("seeding categories..")
	for _, c := range sampleCategories {
		if err := categoryRepo.CreateIfAbsent(ctx, c); err != nil {
			logger.Error("failed to seed category", "slug", c.Slug, "error", err)
			return
		}
	}

	logger.Info("seeding users..")
	for _, u := range sampleUsers {
		if err := userRepo.CreateIfAbsent(ctx, u); err != nil {
			logger.Error("failed to seed user", "id", u.ID, "error", err)
			return
		}
	}

	// Listings have no natural conflict key, so the sample set is inserted
	// only into an empty table.
	count, err := listingRepo.Count(ctx)
	if err != nil {
		logger.Error("failed to count listings", "error", err)
		return
	}
	if count > 0 {
		logger.Info("listings already present, skipping", "count", count)
		return
	}

	logger.Info("seeding listings..")
	for _, l := range sampleListings {
		if _, err := listingRepo.Create(ctx, l); err != nil {
			logger.Error("failed to seed listing", "title", l.Title, "error", err)
			return
		}
	}

	logger.Info("database seeded")
}

func getEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
