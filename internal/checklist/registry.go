package checklist

import "github.com/mwhitby/unitcheck/internal/domain"

// Catalog returns the built-in category catalog in declaration order. The
// slice is freshly allocated on every call so callers can never mutate the
// canonical lists.
func Catalog() []domain.CategoryTemplate {
	templates := make([]domain.CategoryTemplate, len(catalog))
	for i, t := range catalog {
		t.Items = append([]string(nil), t.Items...)
		templates[i] = t
	}
	return templates
}

var catalog = []domain.CategoryTemplate{
	{
		ID:    "entry",
		Title: "Entry",
		Items: []string{
			"Front door/Hardware/Lock",
			"Flooring",
		},
	},
	{
		ID:    "living",
		Title: "Living/Dining Area(s)",
		Items: []string{
			"Walls/Paint",
			"Flooring",
			"Lighting/Fixtures/Ceiling Fan",
		},
	},
	{
		ID:    "kitchen",
		Title: "Kitchen",
		Items: []string{
			"Walls/Paint",
			"Flooring",
			"Lighting/Fixtures",
			"Countertops",
			"Cabinets",
			"Sink/Faucet",
			"Stove/Oven/Vent Hood",
			"Refrigerator Interior/Exterior",
			"Pantry",
			"Dishwasher",
			"Microwave",
			"Windows/Screens/Blinds",
		},
	},
	{
		ID:     "bedroom",
		Title:  "Bedroom",
		Repeat: domain.RepeatPerBedroom,
		Items: []string{
			"Door/Hardware",
			"Walls/Paint",
			"Flooring",
			"Lighting/Fixtures/Ceiling Fan",
			"Windows/Screens/Blinds",
			"Closet/Door/Shelving",
		},
	},
	{
		ID:     "bathroom",
		Title:  "Bathroom",
		Repeat: domain.RepeatPerBathroom,
		Items: []string{
			"Doors/Hardware",
			"Walls/Paint",
			"Flooring",
			"Lighting/Fixtures",
			"Countertop",
			"Sink(s)/Faucet(s)",
			"Cabinets/Shelving",
			"Mirror",
			"Toilet",
			"Tub/Shower",
		},
	},
	{
		ID:    "miscellaneous",
		Title: "Miscellaneous",
		Items: []string{
			"Washer/Dryer",
			"Laundry Door/Shelving",
			"Fireplace",
			"Patio/Balcony Door/Screens/Blinds",
			"Patio/Balcony Flooring/Lighting",
			"Storage Closet(s)/Door/Shelving",
			"Garage",
			"Stairwell(s)",
		},
	},
}
