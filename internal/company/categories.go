package company

import (
	"carrental/internal/models"
)

// Categories manages the car categories a company offers.
type Categories struct {
	categories []*models.Category
	company    *Company
}

func (cs *Categories) Get() []*models.Category {
	out := make([]*models.Category, len(cs.categories))
	copy(out, cs.categories)
	return out
}

func (cs *Categories) Add(name string) (*models.Category, error) {
	if cs.Contains(name) {
		return nil, rentalErrorf("A category with name %q exists already", name)
	}

	category := &models.Category{ID: cs.company.seq.Next(), Name: name}
	cs.company.logf("Adding %+v", *category)
	cs.categories = append(cs.categories, category)
	return category, nil
}

// Delete removes a category, its cars and every booking or rental that
// references either of them.
func (cs *Categories) Delete(id int) error {
	category, err := cs.FindByID(id)
	if err != nil {
		return err
	}

	for _, car := range cs.company.Cars.FindByCategoryID(category.ID) {
		if err := cs.company.Cars.Delete(car.ID); err != nil {
			return err
		}
	}

	for _, booking := range cs.company.Bookings.Get() {
		if booking.Category != nil && booking.Category.ID == category.ID {
			if err := cs.company.Bookings.Delete(booking.ID); err != nil {
				return err
			}
		}
	}

	cs.company.logf("Deleting %+v", *category)
	for i, c := range cs.categories {
		if c == category {
			cs.categories = append(cs.categories[:i], cs.categories[i+1:]...)
			break
		}
	}
	return nil
}

func (cs *Categories) Contains(name string) bool {
	for _, c := range cs.categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

func (cs *Categories) FindByID(id int) (*models.Category, error) {
	for _, c := range cs.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, rentalErrorf("Couldn't find car category with id %d", id)
}

func (cs *Categories) FindByName(name string) (*models.Category, error) {
	for _, c := range cs.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, rentalErrorf("Couldn't find car category with name %s", name)
}
