package models

import (
	"fmt"
	"strings"
)

const (
	ColorRed = "red"

	// RedColorMultiplier applies to loyalty points earned with a red car.
	RedColorMultiplier = 100
)

type Car struct {
	ID       int       `json:"id"`
	Model    string    `json:"model"`
	Color    string    `json:"color"`
	Category *Category `json:"category"`
}

func (c *Car) Label() string {
	return fmt.Sprintf("%s (%d)", c.Model, c.ID)
}

func (c *Car) ColorMultiplier() int {
	if strings.EqualFold(c.Color, ColorRed) {
		return RedColorMultiplier
	}
	return 1
}

func (c *Car) InCategory(category *Category) bool {
	return c.Category != nil && category != nil && c.Category.ID == category.ID
}
