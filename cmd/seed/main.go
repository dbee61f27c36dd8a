package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"renthub/internal/database"
	"renthub/internal/domain"
)

// Development fixtures: two landlords with listings, three renters with a mix
// of confirmed, pending and canceled bookings, plus a few reviews.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "renthub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM search_queries")
	db.Exec("DELETE FROM listings")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	landlords := make([]domain.User, 0, 2)
	for i, email := range []string{"marat@renthub.kz", "aigerim@renthub.kz"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("landlord123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Name:         fmt.Sprintf("Landlord %d", i+1),
			Phone:        fmt.Sprintf("+7 701 555 01%02d", i+10),
			IsLandlord:   true,
		}
		db.Create(&u)
		landlords = append(landlords, u)
		log.Printf("Landlord created: %s / landlord123", email)
	}

	renters := make([]domain.User, 0, 3)
	for i, email := range []string{"asel@mail.kz", "bekzat@gmail.com", "dina@yandex.kz"} {
		hash, _ := bcrypt.GenerateFromPassword([]byte("renter123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Name:         fmt.Sprintf("Renter %d", i+1),
			Phone:        fmt.Sprintf("+7 777 123 45%02d", i+67),
		}
		db.Create(&u)
		renters = append(renters, u)
		log.Printf("Renter created: %s / renter123", email)
	}

	// ================== LISTINGS ==================
	log.Println("Creating listings...")

	availFrom := date(2026, 9, 1)
	availUntil := date(2027, 9, 1)

	listings := []domain.Listing{
		{
			OwnerID:        landlords[0].ID,
			Title:          "Cozy 2-room apartment near Abay Ave",
			Description:    "Renovated apartment with a park view, 10 min to the metro.",
			Location:       "Abay Ave 45",
			City:           "Almaty",
			Rooms:          2,
			PropertyType:   domain.PropertyApartment,
			Price:          250000,
			AvailableFrom:  &availFrom,
			AvailableUntil: &availUntil,
			IsActive:       true,
		},
		{
			OwnerID:      landlords[0].ID,
			Title:        "Studio in the city center",
			Description:  "Compact studio, ideal for one person.",
			Location:     "Dostyk Ave 12",
			City:         "Almaty",
			Rooms:        1,
			PropertyType: domain.PropertyStudio,
			Price:        140000,
			IsActive:     true,
		},
		{
			OwnerID:       landlords[1].ID,
			Title:         "Family house with garden",
			Description:   "Two floors, four rooms, quiet neighborhood.",
			Location:      "Saryarka 8",
			City:          "Astana",
			Rooms:         4,
			PropertyType:  domain.PropertyHouse,
			Price:         480000,
			AvailableFrom: &availFrom,
			IsActive:      true,
		},
		{
			OwnerID:      landlords[1].ID,
			Title:        "Apartment under renovation",
			Description:  "Not yet available, listed for reference.",
			Location:     "Turan Ave 55",
			City:         "Astana",
			Rooms:        3,
			PropertyType: domain.PropertyApartment,
			Price:        320000,
			IsActive:     false,
		},
	}
	for i := range listings {
		db.Create(&listings[i])
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")

	bookings := []domain.Booking{
		{
			ListingID:   listings[0].ID,
			RenterID:    renters[0].ID,
			StartDate:   date(2026, 10, 1),
			EndDate:     date(2026, 10, 15),
			IsConfirmed: true,
		},
		{
			// back-to-back with the previous stay, checkout day is free
			ListingID: listings[0].ID,
			RenterID:  renters[1].ID,
			StartDate: date(2026, 10, 15),
			EndDate:   date(2026, 10, 20),
		},
		{
			ListingID:  listings[0].ID,
			RenterID:   renters[2].ID,
			StartDate:  date(2026, 11, 1),
			EndDate:    date(2026, 11, 10),
			IsCanceled: true,
		},
		{
			ListingID:   listings[2].ID,
			RenterID:    renters[0].ID,
			StartDate:   date(2026, 12, 20),
			EndDate:     date(2027, 1, 5),
			IsConfirmed: true,
		},
	}
	for i := range bookings {
		db.Create(&bookings[i])
	}

	// ================== REVIEWS ==================
	log.Println("Creating reviews...")

	reviews := []domain.Review{
		{ListingID: listings[0].ID, UserID: renters[0].ID, Rating: 5, Comment: "Great host, spotless apartment."},
		{ListingID: listings[0].ID, UserID: renters[1].ID, Rating: 4, Comment: "Good location, a bit noisy at night."},
		{ListingID: listings[2].ID, UserID: renters[0].ID, Rating: 5, Comment: "The garden is lovely."},
	}
	for i := range reviews {
		db.Create(&reviews[i])
	}

	for _, id := range []int64{listings[0].ID, listings[2].ID} {
		db.Exec(`UPDATE listings SET avg_rating = (
			SELECT CAST(ROUND(AVG(rating)) AS INTEGER) FROM reviews WHERE listing_id = ?
		) WHERE id = ?`, id, id)
	}

	log.Println("Seed finished.")
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
