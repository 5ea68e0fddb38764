package database

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/spaceship-store/internal/category"
	"github.com/wichananm65/spaceship-store/internal/product"
)

// seedTime matches the timestamp written by the seed migration.
var seedTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// SeedCategories mirrors migrations/000002_seed_catalog for the in-memory
// catalog.
func SeedCategories() []category.Category {
	return []category.Category{
		{ID: 1, Name: "Propulsion Systems", Description: "Advanced engines and thrusters for your spaceship", CreatedAt: seedTime},
		{ID: 2, Name: "Navigation & Control", Description: "State-of-the-art navigation and control systems", CreatedAt: seedTime},
		{ID: 3, Name: "Life Support", Description: "Critical life support systems and equipment", CreatedAt: seedTime},
		{ID: 4, Name: "Weapons & Defense", Description: "Shield generators and defensive systems", CreatedAt: seedTime},
		{ID: 5, Name: "Power Systems", Description: "Reactors and power generation equipment", CreatedAt: seedTime},
	}
}

func SeedProducts() []product.Product {
	p := func(id int, name, desc, price string, stock int, image string, categoryID int) product.Product {
		return product.Product{
			ID:          id,
			Name:        name,
			Description: desc,
			Price:       decimal.RequireFromString(price),
			Stock:       stock,
			ImageURL:    image,
			CategoryID:  categoryID,
			CreatedAt:   seedTime,
			IsActive:    true,
		}
	}
	return []product.Product{
		p(1, "Quantum Flux Drive MK-VII", "Revolutionary quantum propulsion system capable of faster-than-light travel. Includes built-in stabilizers and emergency fallback thrusters.", "2499999.99", 5, "quantum_flux_drive_mkvii.png", 1),
		p(2, "Plasma Ion Thruster Array", "High-efficiency ion thruster system for precise maneuvering in deep space. Features dual-core plasma containment.", "875000.00", 12, "plasma_ion_thruster_array.png", 1),
		p(3, "Neural Navigation Matrix", "AI-powered navigation system with quantum computing core. Calculates optimal routes through asteroid fields and nebulae.", "1250000.00", 8, "neural_navigation_matrix.png", 2),
		p(4, "Gravity Stabilizer Module", "Maintains artificial gravity in all ship sections. Essential for long-duration space missions and crew comfort.", "650000.00", 15, "gravity_stabilizer_module.png", 2),
		p(5, "Bio-Regenerative Air Processor", "Advanced life support system that recycles air and water with 99.9% efficiency. Supports up to 50 crew members.", "425000.00", 20, "bio-regenerative_air_processor.png", 3),
		p(6, "Cryo-Sleep Chamber Pod", "Single-occupant cryogenic sleep chamber for extended interstellar journeys. Includes medical monitoring and auto-revival systems.", "895000.00", 7, "cryo-sleep_chamber_pro.png", 3),
		p(7, "Photon Shield Generator X-200", "Military-grade energy shield system. Protects against laser weapons, particle beams, and micro-meteor impacts.", "1899999.99", 3, "photon_shield_generator_x200.png", 4),
		p(8, "Tactical Sensor Suite", "Long-range detection and tracking system. Identifies threats up to 10 million kilometers away.", "725000.00", 10, "tactical_sensor_suite.png", 4),
		p(9, "Antimatter Fusion Reactor", "Compact antimatter reactor providing 50 petawatts of continuous power. Includes failsafe containment protocols.", "3250000.00", 2, "antimatter_fusion_reactor.png", 5),
		p(10, "Solar Sail Energy Collector", "Auxiliary power system that harnesses stellar radiation. Perfect for extended missions away from stations.", "385000.00", 25, "solar_sail_energy_collector.png", 5),
	}
}

// CategoryNames indexes the seed categories by id.
func CategoryNames(categories []category.Category) map[int]string {
	out := make(map[int]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Name
	}
	return out
}
