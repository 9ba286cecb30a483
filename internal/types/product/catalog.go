package product

// Catalog returns the marketplace inventory grouped by storefront section.
// Product IDs are stable; some products appear in more than one section.
func Catalog() map[string][]Product {
	waterBottle := Product{
		ID:          "prod-1",
		Name:        "Eco-Friendly Water Bottle",
		Description: "Reusable stainless steel water bottle with bamboo cap.",
		Points:      1200,
		Category:    "Home",
		IsNew:       true,
	}
	tshirt := Product{
		ID:          "prod-2",
		Name:        "Organic Cotton T-Shirt",
		Description: "100% organic cotton t-shirt with eco-friendly dyes.",
		Points:      1500,
		Category:    "Apparel",
	}
	powerBank := Product{
		ID:          "prod-3",
		Name:        "Solar Power Bank",
		Description: "Charge your devices with solar energy on the go.",
		Points:      2000,
		Category:    "Tech",
		IsNew:       true,
	}
	treeDonation := Product{
		ID:          "prod-6",
		Name:        "Plant a Tree Donation",
		Description: "We'll plant a tree in your name in areas affected by deforestation.",
		Points:      1000,
		Category:    "Donation",
	}

	all := []Product{
		waterBottle,
		tshirt,
		powerBank,
		{
			ID:          "prod-4",
			Name:        "Bamboo Cutlery Set",
			Description: "Portable bamboo cutlery set with carrying case.",
			Points:      800,
			Category:    "Home",
		},
		{
			ID:          "prod-5",
			Name:        "Recycled Notebook",
			Description: "Notebook made from 100% recycled paper with seed-infused cover.",
			Points:      500,
			Category:    "Office",
		},
		treeDonation,
		{
			ID:          "prod-7",
			Name:        "Eco-Friendly Backpack",
			Description: "Backpack made from recycled plastic bottles.",
			Points:      2500,
			Category:    "Apparel",
		},
		{
			ID:          "prod-8",
			Name:        "Reusable Produce Bags",
			Description: "Set of 5 mesh bags for plastic-free grocery shopping.",
			Points:      700,
			Category:    "Home",
		},
		{
			ID:          "prod-9",
			Name:        "Solar-Powered LED Lights",
			Description: "String of 20 LED lights powered by a small solar panel.",
			Points:      1200,
			Category:    "Home",
		},
	}

	digital := []Product{
		{
			ID:          "prod-10",
			Name:        "1-Month Streaming Subscription",
			Description: "One month of premium streaming service.",
			Points:      1500,
			Category:    "Digital",
		},
		{
			ID:          "prod-11",
			Name:        "E-Book Bundle",
			Description: "Collection of 3 e-books about sustainable living.",
			Points:      1000,
			Category:    "Digital",
		},
		{
			ID:          "prod-12",
			Name:        "Meditation App Subscription",
			Description: "3-month subscription to a premium meditation app.",
			Points:      1800,
			Category:    "Digital",
		},
	}

	donations := []Product{
		treeDonation,
		{
			ID:          "prod-13",
			Name:        "Ocean Cleanup Donation",
			Description: "Support efforts to clean plastic from our oceans.",
			Points:      1500,
			Category:    "Donation",
		},
		{
			ID:          "prod-14",
			Name:        "Renewable Energy Project",
			Description: "Support the development of renewable energy in developing countries.",
			Points:      2000,
			Category:    "Donation",
		},
	}

	return map[string][]Product{
		"featured":  {waterBottle, tshirt, powerBank},
		"all":       all,
		"digital":   digital,
		"donations": donations,
	}
}
