package company

import (
	"carrental/internal/events"
	"carrental/internal/models"
)

// Customers manages the customers of a company.
type Customers struct {
	events.Subject

	// Points is notified whenever a customer's point balance changes.
	Points events.Subject

	customers []*models.Customer
	company   *Company
}

// Get returns a copy of the customer list.
func (cs *Customers) Get() []*models.Customer {
	out := make([]*models.Customer, len(cs.customers))
	copy(out, cs.customers)
	return out
}

func (cs *Customers) Add(name string) (*models.Customer, error) {
	if cs.Contains(name) {
		return nil, rentalErrorf("A customer with name %q exists already", name)
	}

	customer := models.NewCustomer(cs.company.seq.Next(), name)
	cs.company.logf("Adding %+v", *customer)
	cs.customers = append(cs.customers, customer)
	cs.notify()
	return customer, nil
}

// Delete removes a customer together with their bookings and rentals.
func (cs *Customers) Delete(id int) error {
	customer, err := cs.FindByID(id)
	if err != nil {
		return err
	}

	for _, booking := range cs.company.Bookings.Get() {
		if booking.Customer == customer {
			if err := cs.company.Bookings.Delete(booking.ID); err != nil {
				return err
			}
		}
	}

	cs.company.logf("Deleting %+v", *customer)
	cs.customers = removeCustomer(cs.customers, customer)
	cs.notify()
	return nil
}

func (cs *Customers) Contains(name string) bool {
	for _, c := range cs.customers {
		if c.Name == name {
			return true
		}
	}
	return false
}

func (cs *Customers) FindByID(id int) (*models.Customer, error) {
	for _, c := range cs.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, rentalErrorf("Couldn't find customer with id %d", id)
}

// AddPoints credits points and re-evaluates the tier. A tier change is
// reported as a *StatusChangeError after the points have been applied.
func (cs *Customers) AddPoints(id, points int) error {
	if points < 0 {
		return rentalErrorf("Points cannot be negative")
	}
	customer, err := cs.FindByID(id)
	if err != nil {
		return err
	}

	customer.Points += points
	return cs.UpdateStatus(id)
}

// SubtractPoints debits points, never going below zero.
func (cs *Customers) SubtractPoints(id, points int) error {
	if points < 0 {
		return rentalErrorf("Points cannot be negative")
	}
	customer, err := cs.FindByID(id)
	if err != nil {
		return err
	}

	customer.Points -= points
	if customer.Points < 0 {
		customer.Points = 0
	}
	return cs.UpdateStatus(id)
}

func (cs *Customers) GetPoints(id int) (int, error) {
	customer, err := cs.FindByID(id)
	if err != nil {
		return 0, err
	}
	return customer.Points, nil
}

func (cs *Customers) GetStatus(id int) (models.CustomerStatus, error) {
	customer, err := cs.FindByID(id)
	if err != nil {
		return "", err
	}
	return customer.Status, nil
}

// UpdateStatus aligns the tier with the current point balance.
func (cs *Customers) UpdateStatus(id int) error {
	customer, err := cs.FindByID(id)
	if err != nil {
		return err
	}

	defer cs.Points.Notify(events.Event{Source: SourcePoints, Count: customer.Points})

	status := models.StatusForPoints(customer.Points)
	if customer.Status == status {
		return nil
	}
	customer.Status = status
	cs.company.logf("Customer %d reached the %s status", customer.ID, status)
	return &StatusChangeError{CustomerID: customer.ID, Status: status}
}

func (cs *Customers) notify() {
	cs.Notify(events.Event{Source: SourceCustomers, Count: len(cs.customers)})
}

func removeCustomer(list []*models.Customer, target *models.Customer) []*models.Customer {
	for i, c := range list {
		if c == target {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
