// Package diet manages a patient's current meal plan and summarises it
// against the energy target.
package diet

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/idalopban/ComVida/internal/nutrient"
	"github.com/idalopban/ComVida/internal/repo"
)

type MealTime string

const (
	Breakfast      MealTime = "Desayuno"
	MorningSnack   MealTime = "Colación Mañana"
	Lunch          MealTime = "Almuerzo"
	AfternoonSnack MealTime = "Colación Tarde"
	Dinner         MealTime = "Cena"
	NightSnack     MealTime = "Colación Noche"
)

// MealTimes in the order they are served during the day.
var MealTimes = []MealTime{Breakfast, MorningSnack, Lunch, AfternoonSnack, Dinner, NightSnack}

func (m MealTime) Valid() bool {
	for _, t := range MealTimes {
		if t == m {
			return true
		}
	}
	return false
}

var (
	ErrInvalidGrams    = errors.New("grams must be positive")
	ErrInvalidMealTime = errors.New("unknown meal time")
	ErrItemNotFound    = errors.New("diet item not found")
)

// Item is a portion of one food. Nutrients are already scaled to Grams.
type Item struct {
	ID        string             `json:"id"`
	MealTime  MealTime           `json:"meal_time"`
	Code      string             `json:"code"`
	Name      string             `json:"name"`
	Grams     float64            `json:"grams"`
	Nutrients nutrient.Nutrients `json:"nutrients"`
}

func NewItem(f repo.Food, grams float64, meal MealTime) (Item, error) {
	if grams <= 0 {
		return Item{}, ErrInvalidGrams
	}
	if !meal.Valid() {
		return Item{}, fmt.Errorf("%w: %q", ErrInvalidMealTime, meal)
	}
	return Item{
		ID:        uuid.NewString(),
		MealTime:  meal,
		Code:      f.Code,
		Name:      f.Name,
		Grams:     grams,
		Nutrients: f.Nutrients.Scale(grams / 100),
	}, nil
}

// Remove returns the plan without the item. The input slice is not
// modified.
func Remove(plan []Item, id string) ([]Item, error) {
	out := make([]Item, 0, len(plan))
	found := false
	for _, it := range plan {
		if it.ID == id {
			found = true
			continue
		}
		out = append(out, it)
	}
	if !found {
		return plan, ErrItemNotFound
	}
	return out, nil
}

func Totals(plan []Item) nutrient.Nutrients {
	var t nutrient.Nutrients
	for _, it := range plan {
		t = t.Add(it.Nutrients)
	}
	return t
}

// ByMeal groups items per meal time, keeping only meal times in use, in
// serving order.
func ByMeal(plan []Item) []Meal {
	var meals []Meal
	for _, mt := range MealTimes {
		var items []Item
		for _, it := range plan {
			if it.MealTime == mt {
				items = append(items, it)
			}
		}
		if len(items) > 0 {
			meals = append(meals, Meal{MealTime: mt, Items: items, Totals: Totals(items)})
		}
	}
	return meals
}

type Meal struct {
	MealTime MealTime           `json:"meal_time"`
	Items    []Item             `json:"items"`
	Totals   nutrient.Nutrients `json:"totals"`
}
