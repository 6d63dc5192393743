package company

import (
	"testing"

	"carrental/internal/events"
	"carrental/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCars_AddRequiresCategory(t *testing.T) {
	c := newTestCompany(t)
	_, err := c.Cars.Add("D12", "blue", 7)
	assert.True(t, IsRentalError(err))
	assert.Empty(t, c.Cars.Get())
}

func TestCars_AddNormalisesColor(t *testing.T) {
	f := newFixture(t)
	car, err := f.company.Cars.Add("Golf", "  RED ", f.category.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ColorRed, car.Color)
	assert.Equal(t, models.RedColorMultiplier, car.ColorMultiplier())
	assert.Same(t, f.category, car.Category)
}

func TestCars_FindByCategoryID(t *testing.T) {
	f := newFixture(t)
	suv, _ := f.company.Categories.Add("SUV")
	second, _ := f.company.Cars.Add("Polo", "white", f.category.ID)
	_, _ = f.company.Cars.Add("Tiguan", "black", suv.ID)

	assert.Equal(t, []*models.Car{f.car, second}, f.company.Cars.FindByCategoryID(f.category.ID))
	assert.Empty(t, f.company.Cars.FindByCategoryID(-1))
}

func TestCars_DeleteCascadesBookingsAndRentals(t *testing.T) {
	f := newFixture(t)
	carBooking := f.book(t, pickupDay, 3, f.car)
	rental, err := f.company.Rentals.Add(carBooking.ID)
	require.NoError(t, err)
	later := f.book(t, pickupDay.AddDate(0, 0, 10), 1, f.car)

	require.NoError(t, f.company.Cars.Delete(f.car.ID))

	_, err = f.company.Rentals.FindByID(rental.ID)
	assert.True(t, IsRentalError(err))
	_, err = f.company.Bookings.FindByID(carBooking.ID)
	assert.True(t, IsRentalError(err))
	_, err = f.company.Bookings.FindByID(later.ID)
	assert.True(t, IsRentalError(err))
	assert.Empty(t, f.company.Cars.Get())
}

func TestCars_DeleteKeepsCategoryBookingOfRentedCar(t *testing.T) {
	f := newFixture(t)
	booking, err := f.company.Bookings.AddByCategory(f.customer.ID, pickupDay, pickupDay.AddDate(0, 0, 2), f.category.ID)
	require.NoError(t, err)
	rental, err := f.company.Rentals.Add(booking.ID)
	require.NoError(t, err)
	require.Same(t, f.car, rental.Car)

	require.NoError(t, f.company.Cars.Delete(f.car.ID))

	_, found := f.company.Rentals.FindByBookingID(booking.ID)
	assert.False(t, found)
	kept, err := f.company.Bookings.FindByID(booking.ID)
	require.NoError(t, err)
	assert.Same(t, booking, kept)
}

func TestCars_NotifyOnChange(t *testing.T) {
	f := newFixture(t)
	var counts []int
	f.company.Cars.Attach(events.ObserverFunc(func(e events.Event) {
		assert.Equal(t, SourceCars, e.Source)
		counts = append(counts, e.Count)
	}))

	car, _ := f.company.Cars.Add("Polo", "white", f.category.ID)
	require.NoError(t, f.company.Cars.Delete(car.ID))
	assert.Equal(t, []int{2, 1}, counts)
}
