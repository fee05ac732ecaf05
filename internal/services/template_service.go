package services

import "wishlyBack/internal/models"

// Starter templates for new lists. Static for now; the frontend uses the
// slug as the stable key.
var wishlistTemplates = []models.WishlistTemplate{
	{
		Slug:        "birthday",
		Title:       "День рождения",
		Description: "Подарки к дню рождения",
		ExampleItems: []string{
			"Книга",
			"Наушники",
			"Сертификат в любимый магазин",
		},
	},
	{
		Slug:        "new-year",
		Title:       "Новый год",
		Description: "Новогодние подарки",
		ExampleItems: []string{
			"Тёплый свитер",
			"Настольная игра",
			"Ёлочные игрушки",
		},
	},
	{
		Slug:        "wedding",
		Title:       "Свадьба",
		Description: "Подарки на свадьбу",
		ExampleItems: []string{
			"Набор посуды",
			"Постельное бельё",
			"Вклад в путешествие",
		},
	},
	{
		Slug:        "housewarming",
		Title:       "Новоселье",
		Description: "Подарки на новоселье",
		ExampleItems: []string{
			"Комнатное растение",
			"Светильник",
			"Кофемашина",
		},
	},
}

type TemplateService struct{}

func (s *TemplateService) ListTemplates() []models.WishlistTemplate {
	return wishlistTemplates
}
