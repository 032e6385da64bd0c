package product

import "github.com/shopspring/decimal"

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func picsum(seed string) string {
	return "https://picsum.photos/seed/" + seed + "/600/600"
}

// SeedProducts is the demo catalog served until an admin edits it.
func SeedProducts() []Product {
	return []Product{
		{ID: "1", Name: "Aether Pods Pro", Description: "Next-generation wireless earbuds with active noise cancellation and spatial audio.", Price: price("249.99"), Category: "Electronics", Image: picsum("pods1"), Gallery: []string{picsum("pods1"), picsum("pods2")}, Rating: 4.8, Stock: 15},
		{ID: "2", Name: "Lumina Smart Watch", Description: "Track your health, receive notifications, and look stylish with this OLED smart watch.", Price: price("199.50"), Category: "Electronics", Image: picsum("watch1"), Gallery: []string{picsum("watch1")}, Rating: 4.5, Stock: 22},
		{ID: "3", Name: "Vanguard Backpack", Description: "Durable, waterproof, and spacious backpack for the modern urban explorer.", Price: price("89.00"), Category: "Fashion", Image: picsum("backpack1"), Gallery: []string{picsum("backpack1")}, Rating: 4.7, Stock: 45},
		{ID: "4", Name: "Terra Leather Wallet", Description: "Handcrafted genuine leather wallet with RFID protection.", Price: price("45.00"), Category: "Fashion", Image: picsum("wallet1"), Gallery: []string{picsum("wallet1")}, Rating: 4.9, Stock: 10},
		{ID: "5", Name: "Zenith Coffee Press", Description: "Brew the perfect cup of coffee with this double-walled stainless steel press.", Price: price("34.99"), Category: "Home", Image: picsum("coffee1"), Gallery: []string{picsum("coffee1")}, Rating: 4.6, Stock: 30},
		{ID: "6", Name: "Orbital Desk Lamp", Description: "Adjustable LED desk lamp with wireless charging base and touch controls.", Price: price("59.99"), Category: "Home", Image: picsum("lamp1"), Gallery: []string{picsum("lamp1")}, Rating: 4.4, Stock: 12},
		{ID: "7", Name: "Horizon Ultra Tablet", Description: "Experience stunning visuals on a 120Hz liquid retina display with ultra-fast processing.", Price: price("799.00"), Category: "Electronics", Image: picsum("tablet1"), Rating: 4.9, Stock: 8},
		{ID: "8", Name: "Apex Gaming Mouse", Description: "Ultra-lightweight gaming mouse with precision sensors and customizable RGB lighting.", Price: price("69.50"), Category: "Electronics", Image: picsum("mouse1"), Rating: 4.7, Stock: 50},
		{ID: "9", Name: "Urban Denim Jacket", Description: "Classic fit denim jacket with premium wash and modern styling details.", Price: price("120.00"), Category: "Fashion", Image: picsum("jacket1"), Rating: 4.6, Stock: 25},
		{ID: "10", Name: "Silk Comfort Scarf", Description: "100% pure silk scarf with hand-painted patterns for effortless elegance.", Price: price("55.00"), Category: "Fashion", Image: picsum("scarf1"), Rating: 4.8, Stock: 15},
		{ID: "11", Name: "Minimalist Wall Clock", Description: "Sleek, silent-sweep quartz wall clock for a modern office or living room.", Price: price("42.00"), Category: "Home", Image: picsum("clock1"), Rating: 4.5, Stock: 20},
		{ID: "12", Name: "Velvet Plush Cushion", Description: "Luxuriously soft velvet cushion with premium filling for ultimate comfort.", Price: price("28.00"), Category: "Home", Image: picsum("cushion1"), Rating: 4.7, Stock: 60},
	}
}
