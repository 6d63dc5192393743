package company

import (
	"testing"

	"carrental/internal/events"
	"carrental/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomers_Add(t *testing.T) {
	c := newTestCompany(t)
	customer, err := c.Customers.Add("Özhan Oktan")
	require.NoError(t, err)
	assert.Equal(t, "Özhan Oktan", customer.Name)
	assert.Equal(t, 0, customer.Points)
	assert.Equal(t, models.StatusBasic, customer.Status)
}

func TestCustomers_AddDuplicateName(t *testing.T) {
	c := newTestCompany(t)
	_, err := c.Customers.Add("Keith Elam")
	require.NoError(t, err)
	_, err = c.Customers.Add("Keith Elam")
	require.True(t, IsRentalError(err))
	assert.Len(t, c.Customers.Get(), 1)
}

func TestCustomers_GetEmptyAndCopy(t *testing.T) {
	c := newTestCompany(t)
	assert.Empty(t, c.Customers.Get())

	list := c.Customers.Get()
	list = append(list, models.NewCustomer(1, "Random House"))
	assert.Len(t, list, 1)
	assert.Empty(t, c.Customers.Get())
}

func TestCustomers_Delete(t *testing.T) {
	c := newTestCompany(t)
	c1, err := c.Customers.Add("Gabi Gaspedal")
	require.NoError(t, err)
	c2, err := c.Customers.Add("Keith Elam")
	require.NoError(t, err)

	require.NoError(t, c.Customers.Delete(c1.ID))
	assert.Equal(t, []*models.Customer{c2}, c.Customers.Get())

	_, err = c.Customers.FindByID(c1.ID)
	assert.True(t, IsRentalError(err))
}

func TestCustomers_DeleteCascadesBookingsAndRentals(t *testing.T) {
	f := newFixture(t)
	booking := f.book(t, pickupDay, 3, f.car)
	rental, err := f.company.Rentals.Add(booking.ID)
	require.NoError(t, err)

	require.NoError(t, f.company.Customers.Delete(f.customer.ID))

	_, err = f.company.Bookings.FindByID(booking.ID)
	assert.True(t, IsRentalError(err))
	_, err = f.company.Rentals.FindByID(rental.ID)
	assert.True(t, IsRentalError(err))
	assert.Empty(t, f.company.Bookings.Get())
	assert.Empty(t, f.company.Rentals.Get())
}

func TestCustomers_Contains(t *testing.T) {
	c := newTestCompany(t)
	_, _ = c.Customers.Add("Gabi Gaspedal")
	_, _ = c.Customers.Add("Phillip")

	assert.True(t, c.Customers.Contains("Gabi Gaspedal"))
	assert.True(t, c.Customers.Contains("Phillip"))
	assert.False(t, c.Customers.Contains("Philip"))
}

func TestCustomers_FindByID(t *testing.T) {
	c := newTestCompany(t)
	jack, _ := c.Customers.Add("Jack Rabbit")
	jane, _ := c.Customers.Add("Jane Rabbit")

	found, err := c.Customers.FindByID(jack.ID)
	require.NoError(t, err)
	assert.Same(t, jack, found)
	found, err = c.Customers.FindByID(jane.ID)
	require.NoError(t, err)
	assert.Same(t, jane, found)

	_, err = c.Customers.FindByID(jane.ID + 100)
	assert.True(t, IsRentalError(err))
}

func TestCustomers_NegativePoints(t *testing.T) {
	c := newTestCompany(t)
	customer, _ := c.Customers.Add("Telsa")

	assert.True(t, IsRentalError(c.Customers.AddPoints(customer.ID, -1)))
	assert.True(t, IsRentalError(c.Customers.SubtractPoints(customer.ID, -1)))
	assert.Equal(t, 0, customer.Points)
}

func TestCustomers_StatusChangeOncePerCrossing(t *testing.T) {
	c := newTestCompany(t)
	customer, _ := c.Customers.Add("Telsa")

	steps := []struct {
		points int
		want   models.CustomerStatus
		change bool
	}{
		{points: 100, want: models.StatusBasic},
		{points: 1, want: models.StatusNewbie, change: true},
		{points: 99, want: models.StatusNewbie},
		{points: 1, want: models.StatusExpert, change: true},
		{points: 300, want: models.StatusProfessional, change: true},
		{points: 299, want: models.StatusProfessional},
		{points: 1, want: models.StatusSerialRenter, change: true},
		{points: 5000, want: models.StatusSerialRenter},
	}

	for _, step := range steps {
		err := c.Customers.AddPoints(customer.ID, step.points)
		sc, changed := AsStatusChange(err)
		require.Equal(t, step.change, changed, "after adding %d (total %d)", step.points, customer.Points)
		if changed {
			assert.Equal(t, step.want, sc.Status)
			assert.Equal(t, "You reached the "+string(step.want)+" status", sc.Error())
			assert.True(t, IsRentalError(err))
		} else {
			require.NoError(t, err)
		}
		assert.Equal(t, step.want, customer.Status)
	}
}

func TestCustomers_JumpOverSeveralTiersNotifiesOnce(t *testing.T) {
	c := newTestCompany(t)
	customer, _ := c.Customers.Add("Telsa")

	err := c.Customers.AddPoints(customer.ID, 1000)
	sc, ok := AsStatusChange(err)
	require.True(t, ok)
	assert.Equal(t, models.StatusSerialRenter, sc.Status)
	assert.Equal(t, customer.ID, sc.CustomerID)
}

func TestCustomers_SubtractPointsFloorsAtZero(t *testing.T) {
	c := newTestCompany(t)
	customer, _ := c.Customers.Add("Telsa")
	_ = c.Customers.AddPoints(customer.ID, 150)

	err := c.Customers.SubtractPoints(customer.ID, 500)
	sc, ok := AsStatusChange(err)
	require.True(t, ok)
	assert.Equal(t, models.StatusBasic, sc.Status)

	points, err := c.Customers.GetPoints(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, points)
}

func TestCustomers_NotifyObservers(t *testing.T) {
	c := newTestCompany(t)
	var counts, points []int
	c.Customers.Attach(events.ObserverFunc(func(e events.Event) { counts = append(counts, e.Count) }))
	c.Customers.Points.Attach(events.ObserverFunc(func(e events.Event) { points = append(points, e.Count) }))

	a, _ := c.Customers.Add("A")
	_, _ = c.Customers.Add("B")
	_ = c.Customers.AddPoints(a.ID, 20)
	require.NoError(t, c.Customers.Delete(a.ID))

	assert.Equal(t, []int{1, 2, 1}, counts)
	assert.Equal(t, []int{20}, points)
}
