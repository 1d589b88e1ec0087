package entity

import "github.com/shopspring/decimal"

// FoodItem alimento del catálogo nutricional. Los macros son por porción.
type FoodItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	CategoryID  int64           `json:"category_id"`
	UnitID      int64           `json:"unit_id"`
	ServingSize decimal.Decimal `json:"serving_size"`
	Calories    decimal.Decimal `json:"calories"`
	Protein     decimal.Decimal `json:"protein"`
	Carbs       decimal.Decimal `json:"carbs"`
	Fat         decimal.Decimal `json:"fat"`
	Actions     Actions         `json:"actions"`
}

// FoodCategory categoría de alimentos (jerarquía de un nivel).
type FoodCategory struct {
	Category
	Description string `json:"description,omitempty"`
}

// Unit unidad de medida para porciones.
type Unit struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation"`
	Type         string  `json:"type"` // mass, volume, count
	Actions      Actions `json:"actions"`
}
