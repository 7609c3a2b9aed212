package checklist

import (
	"fmt"
	"strconv"

	"github.com/mwhitby/unitcheck/internal/domain"
)

// Build expands the category catalog into a concrete checklist for one
// unit. Bedroom categories are emitted once per bedroom (none for a
// studio), bathroom categories once per bathroom with a minimum of one,
// and everything else exactly once, in catalog order.
func Build(templates []domain.CategoryTemplate, config domain.UnitConfiguration) (*domain.ChecklistInstance, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	instance := &domain.ChecklistInstance{}
	for _, tmpl := range templates {
		switch tmpl.Repeat {
		case domain.RepeatPerBedroom:
			appendRepeated(instance, tmpl, config.Bedrooms)
		case domain.RepeatPerBathroom:
			appendRepeated(instance, tmpl, max(config.Bathrooms, 1))
		default:
			instance.Categories = append(instance.Categories, domain.Category{
				ID:     tmpl.ID,
				BaseID: tmpl.ID,
				Title:  tmpl.Title,
				Items:  append([]string(nil), tmpl.Items...),
			})
		}
	}
	return instance, nil
}

func appendRepeated(instance *domain.ChecklistInstance, tmpl domain.CategoryTemplate, count int) {
	for i := 1; i <= count; i++ {
		instance.Categories = append(instance.Categories, domain.Category{
			ID:     tmpl.ID + strconv.Itoa(i),
			BaseID: tmpl.ID,
			Title:  fmt.Sprintf("%s %d", tmpl.Title, i),
			Items:  append([]string(nil), tmpl.Items...),
		})
	}
}
