package main

import (
	"context"
	"log"

	"github.com/pageza/macrotrack/backend/config"
	"github.com/pageza/macrotrack/backend/internal/database"
	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/service"
)

const testPassword = "testpassword123"

func food(id nutrition.FoodID, desc string, kcal, protein, fat, carbs float64) nutrition.FoodRecord {
	return nutrition.FoodRecord{
		FdcID:           id,
		Description:     desc,
		ServingSize:     nutrition.Float(100),
		ServingSizeUnit: "g",
		FoodNutrients: []nutrition.Nutrient{
			{NutrientNumber: nutrition.CodeEnergy, Value: nutrition.Float(kcal)},
			{NutrientNumber: nutrition.CodeProtein, Value: nutrition.Float(protein)},
			{NutrientNumber: nutrition.CodeFat, Value: nutrition.Float(fat)},
			{NutrientNumber: nutrition.CodeCarbs, Value: nutrition.Float(carbs)},
		},
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	auth := service.NewAuthService(db, cfg.JWTSecret)
	profiles := service.NewProfileService(db)

	testUsers := []struct {
		email   string
		profile nutrition.Profile
		foods   []nutrition.FoodRecord
	}{
		{
			email:   "john.doe@example.com",
			profile: nutrition.Profile{Name: "John Doe", Sex: nutrition.SexMale, Age: 34, WeightLb: 185, Height: `5'11"`, ExerciseLevel: nutrition.ModerateActivity},
			foods: []nutrition.FoodRecord{
				food(171287, "Egg, whole, raw, fresh", 143, 12.6, 9.51, 0.72),
				food(173944, "Oats", 389, 16.9, 6.9, 66.3),
			},
		},
		{
			email:   "jane.smith@example.com",
			profile: nutrition.Profile{Name: "Jane Smith", Sex: nutrition.SexFemale, Age: 29, WeightLb: 140, Height: `5'5"`, ExerciseLevel: nutrition.LightActivity},
			foods: []nutrition.FoodRecord{
				food(1102644, "Apple, raw", 52, 0.26, 0.17, 13.8),
			},
		},
		{
			email:   "alice.cooper@example.com",
			profile: nutrition.Profile{Name: "Alice Cooper", Sex: nutrition.SexFemale, Age: 45, WeightLb: 160, Height: `5'7"`, ExerciseLevel: nutrition.Sedentary},
		},
	}

	log.Println("Creating test users...")

	for _, u := range testUsers {
		var existing models.User
		if err := db.Where("email = ?", u.email).First(&existing).Error; err == nil {
			log.Printf("User %s already exists, skipping...", u.email)
			continue
		}

		user, _, err := auth.Register(ctx, u.profile.Name, u.email, testPassword)
		if err != nil {
			log.Printf("Failed to create user %s: %v", u.email, err)
			continue
		}

		_, goals, err := profiles.SaveProfile(ctx, user.ID, u.profile)
		if err != nil {
			log.Printf("Failed to create profile for %s: %v", u.email, err)
			continue
		}

		for i, r := range u.foods {
			entry := models.NewFoodLogEntry(user.ID, i, r, service.GenerateEmbedding(r.Description))
			if err := db.Create(&entry).Error; err != nil {
				log.Printf("Failed to log %q for %s: %v", r.Description, u.email, err)
			}
		}

		log.Printf("Created user %s (goal %.0f kcal, %d logged foods)", u.email, goals.Goal, len(u.foods))
	}

	var total int64
	db.Model(&models.User{}).Count(&total)
	log.Printf("Total users: %d", total)
	log.Printf("Password for every seeded user: %s", testPassword)
}
