package snapshot

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"carrental/internal/company"
	"carrental/internal/control"
	"carrental/pkg/cache"
	"carrental/pkg/storage"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func populatedCompany(t *testing.T) *company.Company {
	t.Helper()
	today := control.Date(2024, 3, 7)
	c := company.New("Šmertz", nil, control.NewCalendarAt(today), company.WithLogger(quietLogger()))

	compact, err := c.Categories.Add("Compact")
	require.NoError(t, err)
	car, err := c.Cars.Add("D12", "red", compact.ID)
	require.NoError(t, err)
	_, err = c.Cars.Add("Polo", "white", compact.ID)
	require.NoError(t, err)
	customer, err := c.Customers.Add("Random House")
	require.NoError(t, err)

	booking, err := c.Bookings.Add(customer.ID, today, today.AddDate(0, 0, 1), car.ID)
	require.NoError(t, err)
	_, err = c.Rentals.Add(booking.ID)
	require.NoError(t, err)

	_, err = c.Bookings.AddByCategory(customer.ID, today.AddDate(0, 0, 3), today.AddDate(0, 0, 5), compact.ID)
	require.NoError(t, err)
	return c
}

func TestMarshalRoundTrip(t *testing.T) {
	original := populatedCompany(t)

	data, err := Marshal(original)
	require.NoError(t, err)
	restored, err := Unmarshal(data, company.WithLogger(quietLogger()))
	require.NoError(t, err)

	assert.Equal(t, original.Name, restored.Name)
	assert.Equal(t, original.Sequence().Current(), restored.Sequence().Current())
	assert.True(t, original.Calendar().Today().Equal(restored.Calendar().Today()))
	assert.Equal(t, Capture(original), Capture(restored))

	rentals := restored.Rentals.Get()
	require.Len(t, rentals, 1)
	car, err := restored.Cars.FindByID(rentals[0].Car.ID)
	require.NoError(t, err)
	assert.Same(t, car, rentals[0].Car)
	assert.Same(t, car, rentals[0].Booking.Car)

	customer := restored.Customers.Get()[0]
	assert.Equal(t, 100, customer.Points)
	assert.Same(t, customer, rentals[0].Booking.Customer)

	byCategory := restored.Bookings.Get()[1]
	assert.True(t, byCategory.IsByCategory())
}

func TestRestoreContinuesSequence(t *testing.T) {
	original := populatedCompany(t)
	restored, err := Restore(Capture(original), company.WithLogger(quietLogger()))
	require.NoError(t, err)

	last := original.Sequence().Current()
	customer, err := restored.Customers.Add("Mega Corp")
	require.NoError(t, err)
	assert.Equal(t, last+1, customer.ID)
}

func TestRestoreKeepsCascades(t *testing.T) {
	restored, err := Restore(Capture(populatedCompany(t)), company.WithLogger(quietLogger()))
	require.NoError(t, err)

	category := restored.Categories.Get()[0]
	require.NoError(t, restored.Categories.Delete(category.ID))
	assert.Empty(t, restored.Cars.Get())
	assert.Empty(t, restored.Bookings.Get())
	assert.Empty(t, restored.Rentals.Get())
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Unmarshal([]byte("not a snapshot"))
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestRestoreMismatches(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{name: "version", mutate: func(s *Snapshot) { s.Version = Version + 1 }},
		{name: "dangling car category", mutate: func(s *Snapshot) { s.Cars[0].CategoryID = 999 }},
		{name: "dangling rental booking", mutate: func(s *Snapshot) { s.Rentals[0].BookingID = 999 }},
		{name: "booking with car and category", mutate: func(s *Snapshot) { s.Bookings[0].CategoryID = s.Categories[0].ID }},
		{name: "counter behind ids", mutate: func(s *Snapshot) { s.CurrentID = 1 }},
		{name: "duplicate id", mutate: func(s *Snapshot) { s.Customers = append(s.Customers, s.Customers[0]) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Capture(populatedCompany(t))
			tt.mutate(s)
			_, err := Restore(s, company.WithLogger(quietLogger()))
			assert.ErrorIs(t, err, ErrSchemaMismatch)
		})
	}
}

func TestBlobStore(t *testing.T) {
	ctx := context.Background()
	provider, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	store := NewBlobStore(provider, "persistence/state.data")

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, []byte{1, 2, 3}))
	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	in := []byte("abc")
	require.NoError(t, store.Save(ctx, in))
	in[0] = 'x'
	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)
}

func TestRedisStoreUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	store := NewRedisStore(cache.NewRedisCacheFromClient(client), "rental:snapshot")
	t.Cleanup(func() { _ = client.Close() })

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound), "an unreachable redis is not a missing snapshot")
	assert.Contains(t, err.Error(), "failed to load snapshot")
}
