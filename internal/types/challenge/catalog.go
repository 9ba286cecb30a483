package challenge

// SeedCatalog returns the fixed challenge roster used when nothing has been
// persisted yet. Keep the IDs stable because clients store them.
func SeedCatalog() []Challenge {
	return []Challenge{
		{
			ID:          "challenge-1",
			Title:       "Zero Waste Week",
			Description: "Reduce your waste by avoiding single-use plastics for a week.",
			Points:      300,
			Difficulty:  DifficultyMedium,
			Duration:    7,
			Category:    CategoryConsumption,
		},
		{
			ID:          "challenge-2",
			Title:       "Public Transport Hero",
			Description: "Use public transportation instead of a car for all your trips.",
			Points:      250,
			Difficulty:  DifficultyEasy,
			Duration:    7,
			Category:    CategoryTransportation,
		},
		{
			ID:          "challenge-3",
			Title:       "Energy Saver",
			Description: "Reduce your electricity usage by 20% this week.",
			Points:      350,
			Difficulty:  DifficultyHard,
			Duration:    7,
			Category:    CategoryEnergy,
		},
		{
			ID:          "challenge-4",
			Title:       "Meatless Monday",
			Description: "Go vegetarian for a full day to reduce your carbon footprint.",
			Points:      200,
			Difficulty:  DifficultyEasy,
			Duration:    1,
			Category:    CategoryDiet,
		},
		{
			ID:          "challenge-5",
			Title:       "Bike to Work",
			Description: "Use a bicycle for your commute instead of a car for a week.",
			Points:      350,
			Difficulty:  DifficultyMedium,
			Duration:    7,
			Category:    CategoryTransportation,
		},
		{
			ID:          "challenge-6",
			Title:       "Local Food Challenge",
			Description: "Only consume locally produced food for a week to reduce transportation emissions.",
			Points:      400,
			Difficulty:  DifficultyHard,
			Duration:    7,
			Category:    CategoryDiet,
		},
		{
			ID:          "challenge-7",
			Title:       "Digital Detox",
			Description: "Reduce your screen time by 50% for a week to save energy.",
			Points:      250,
			Difficulty:  DifficultyMedium,
			Duration:    7,
			Category:    CategoryEnergy,
		},
		{
			ID:          "challenge-8",
			Title:       "Water Conservation",
			Description: "Reduce your water usage by taking shorter showers and being mindful of usage.",
			Points:      300,
			Difficulty:  DifficultyMedium,
			Duration:    7,
			Category:    CategoryGeneral,
		},
	}
}
