package seed

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"bluekey_backend/internal/model"
)

// SeedAdminUser creates the initial back-office login if none exists.
func SeedAdminUser(db *gorm.DB, adminEmail, adminPassword string) {
	if adminEmail == "" || adminPassword == "" {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing seed admin password: %v", err)
		return
	}

	admin := model.StaffUser{
		Email:     adminEmail,
		Password:  string(hashed),
		Role:      model.RoleAdmin,
		FirstName: "Admin",
		IsActive:  true,
	}

	result := db.FirstOrCreate(&admin, model.StaffUser{Email: adminEmail})
	if result.Error != nil {
		log.Printf("Error seeding admin user: %v", result.Error)
		return
	}

	log.Println("Admin user seeded successfully!")
}

func SeedNeighborhoods(db *gorm.DB) {
	neighborhoods := []model.Neighborhood{
		{
			Name:        "Riverside Heights",
			City:        "Portland",
			State:       "OR",
			Description: "Tree-lined streets minutes from the waterfront, with a mix of craftsman homes and new condos.",
			Highlights:  datatypes.JSON([]byte(`{"walk_score": 88, "median_price": 625000, "schools": ["Riverside Elementary", "Heights Middle"]}`)),
		},
		{
			Name:        "Old Town District",
			City:        "Portland",
			State:       "OR",
			Description: "Historic storefronts, galleries and loft conversions in the city's oldest quarter.",
			Highlights:  datatypes.JSON([]byte(`{"walk_score": 95, "median_price": 480000, "schools": ["Old Town Academy"]}`)),
		},
		{
			Name:        "Cedar Grove",
			City:        "Beaverton",
			State:       "OR",
			Description: "Quiet suburban pocket with larger lots, parks and a strong school district.",
			Highlights:  datatypes.JSON([]byte(`{"walk_score": 61, "median_price": 540000, "schools": ["Cedar Grove Elementary", "Westview High"]}`)),
		},
	}

	for _, n := range neighborhoods {
		result := db.FirstOrCreate(&n, model.Neighborhood{Name: n.Name})
		if result.Error != nil {
			log.Printf("Error creating neighborhood %s: %v", n.Name, result.Error)
		}
	}

	log.Println("Neighborhoods seeded successfully!")
}

func SeedTrainings(db *gorm.DB) {
	trainings := []model.Training{
		{
			Title:       "Listing Presentation Basics",
			Category:    "Sales",
			Description: "Walkthrough of the brokerage listing presentation deck and pricing conversation.",
			DurationMin: 45,
		},
		{
			Title:       "Lead Follow-Up Playbook",
			Category:    "CRM",
			Description: "How and when to follow up on website, callback and valuation leads.",
			DurationMin: 30,
		},
		{
			Title:       "Fair Housing Refresher",
			Category:    "Compliance",
			Description: "Annual fair housing compliance training.",
			DurationMin: 60,
		},
	}

	for _, t := range trainings {
		result := db.FirstOrCreate(&t, model.Training{Title: t.Title})
		if result.Error != nil {
			log.Printf("Error creating training %s: %v", t.Title, result.Error)
		}
	}

	log.Println("Trainings seeded successfully!")
}
