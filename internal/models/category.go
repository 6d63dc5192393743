package models

import "fmt"

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (c *Category) Label() string {
	return fmt.Sprintf("%s (%d)", c.Name, c.ID)
}
