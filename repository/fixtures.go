package repository

import "bakeShop/entities"

// BakeryProducts is the static storefront catalog.
func BakeryProducts() []entities.Product {
	return []entities.Product{
		{
			Id: 1, Slug: "country-sourdough", Name: "Country Sourdough",
			Category: "bread", Price: 8.50, Image: "/images/country-sourdough.jpg",
			Description: "Naturally leavened loaf with a dark, blistered crust.",
			Available:   true,
			Variants: []entities.ProductVariant{
				{Name: "half loaf", PriceDelta: -3.50},
				{Name: "sliced", PriceDelta: 0.50},
			},
		},
		{
			Id: 2, Slug: "baguette", Name: "Baguette",
			Category: "bread", Price: 4.25, Image: "/images/baguette.jpg",
			Description: "Classic French stick, baked twice daily.",
			Available:   true,
		},
		{
			Id: 3, Slug: "butter-croissant", Name: "Butter Croissant",
			Category: "viennoiserie", Price: 4.50, Image: "/images/butter-croissant.jpg",
			Description: "Laminated with cultured butter, 27 layers.",
			Available:   true,
		},
		{
			Id: 4, Slug: "almond-croissant", Name: "Almond Croissant",
			Category: "viennoiserie", Price: 5.75, Image: "/images/almond-croissant.jpg",
			Description: "Twice-baked croissant filled with frangipane.",
			Available:   true,
		},
		{
			Id: 5, Slug: "pain-au-chocolat", Name: "Pain au Chocolat",
			Category: "viennoiserie", Price: 5.25, Image: "/images/pain-au-chocolat.jpg",
			Description: "Two batons of dark chocolate in laminated dough.",
			Available:   true,
		},
		{
			Id: 6, Slug: "cinnamon-roll", Name: "Cinnamon Roll",
			Category: "pastry", Price: 5.50, Image: "/images/cinnamon-roll.jpg",
			Description: "Cardamom-scented roll with cream cheese icing.",
			Available:   true,
			Variants: []entities.ProductVariant{
				{Name: "extra icing", PriceDelta: 0.75},
			},
		},
		{
			Id: 7, Slug: "carrot-cake", Name: "Carrot Cake",
			Category: "cake", Price: 45.00, Image: "/images/carrot-cake.jpg",
			Description: "Three layers, walnuts, cream cheese frosting. Serves 10.",
			Available:   true,
			Variants: []entities.ProductVariant{
				{Name: "6 inch", PriceDelta: -15.00},
				{Name: "10 inch", PriceDelta: 20.00},
			},
		},
		{
			Id: 8, Slug: "lemon-tart", Name: "Lemon Tart",
			Category: "cake", Price: 18.00, Image: "/images/lemon-tart.jpg",
			Description: "Shortcrust shell with torched meringue.",
			Available:   true,
		},
		{
			Id: 9, Slug: "chocolate-babka", Name: "Chocolate Babka",
			Category: "bread", Price: 14.00, Image: "/images/chocolate-babka.jpg",
			Description: "Brioche dough twisted with dark chocolate.",
			Available:   true,
		},
		{
			Id: 10, Slug: "seasonal-galette", Name: "Seasonal Fruit Galette",
			Category: "pastry", Price: 22.00, Image: "/images/seasonal-galette.jpg",
			Description: "Rustic free-form tart with whatever is ripe.",
			Available:   false,
		},
	}
}
