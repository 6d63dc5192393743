package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"carrental/internal/company"
	"carrental/internal/control"
	"carrental/internal/events"
	"carrental/internal/models"
	"carrental/internal/snapshot"
	"carrental/internal/utils"
	"carrental/pkg/logger"
)

// ErrNoCompany is returned by every company operation before the first reset.
var ErrNoCompany = errors.New("no company has been created yet")

type RentalService interface {
	// Lifecycle
	Load(ctx context.Context) error
	Persist(ctx context.Context) error
	HasCompany() bool

	// Administration
	ResetCompany(ctx context.Context, name string) (*Overview, error)
	SetToday(ctx context.Context, today time.Time) (*Overview, error)
	Overview() (*Overview, error)

	ListCustomers() ([]CustomerView, error)
	CreateCustomer(ctx context.Context, name string) (*CustomerView, error)
	DeleteCustomer(ctx context.Context, id int) error

	ListCategories() ([]CategoryView, error)
	CreateCategory(ctx context.Context, name string) (*CategoryView, error)
	DeleteCategory(ctx context.Context, id int) error

	ListCars() ([]CarView, error)
	CreateCar(ctx context.Context, model, color string, categoryID int) (*CarView, error)
	DeleteCar(ctx context.Context, id int) error

	ListBookings() ([]BookingView, error)
	ListRentals() ([]RentalView, error)

	// Customer session
	Login(customerID int) (*LoginResult, error)
	Account(customerID int) (*AccountView, error)
	CreateBooking(ctx context.Context, customerID int, input BookingInput) (*BookingView, error)
	CancelBooking(ctx context.Context, customerID, bookingID int) error
	PickUp(ctx context.Context, customerID, bookingID int, upgrade bool) (*RentalView, error)
	ReturnCar(ctx context.Context, customerID, bookingID int) error
}

// BookingInput books CarID when set, otherwise any car of CategoryID.
type BookingInput struct {
	CarID       int
	CategoryID  int
	PeriodStart time.Time
	PeriodEnd   time.Time
}

type LoginResult struct {
	Customer CustomerView     `json:"customer"`
	Token    *utils.TokenPair `json:"token"`
}

type RentalServiceConfig struct {
	DefaultCompanyName string
	PersistTimeout     time.Duration
	JWTSecret          string
	TokenTTL           time.Duration
}

type rentalService struct {
	mu        sync.Mutex
	company   *company.Company
	store     snapshot.Store
	observers []events.Observer
	config    RentalServiceConfig
	logger    *logger.Logger
}

// NewRentalService serialises all access to the current company. Observers
// are attached to every collection of each company the service manages.
func NewRentalService(
	store snapshot.Store,
	config RentalServiceConfig,
	logger *logger.Logger,
	observers ...events.Observer,
) RentalService {
	if config.PersistTimeout <= 0 {
		config.PersistTimeout = 5 * time.Second
	}
	if config.TokenTTL <= 0 {
		config.TokenTTL = utils.JWTAccessTokenTTL
	}
	return &rentalService{
		store:     store,
		observers: observers,
		config:    config,
		logger:    logger,
	}
}

// Load restores the persisted company. A missing or incompatible snapshot
// leaves the service empty, or creates the configured default company.
func (s *rentalService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, snapshot.ErrNotFound):
		s.logger.Info("No snapshot found, starting without company")
	case err != nil:
		return fmt.Errorf("failed to load snapshot: %w", err)
	default:
		restored, err := snapshot.Unmarshal(data, company.WithLogger(s.logger.Entry()))
		if err == nil {
			s.replaceLocked(restored)
			s.logger.WithFields(map[string]interface{}{
				"company":    restored.Name,
				"current_id": restored.Sequence().Current(),
			}).Info("Snapshot restored")
			return nil
		}
		s.logger.WithError(err).Warn("Ignoring incompatible snapshot")
	}

	if s.config.DefaultCompanyName != "" {
		s.replaceLocked(s.newCompany(s.config.DefaultCompanyName))
		s.persistLocked(ctx)
	}
	return nil
}

func (s *rentalService) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.company == nil {
		return nil
	}
	return s.saveLocked(ctx)
}

func (s *rentalService) HasCompany() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.company != nil
}

func (s *rentalService) ResetCompany(ctx context.Context, name string) (*Overview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replaceLocked(s.newCompany(name))
	s.logger.LogRentalEvent("company", 0, "reset", map[string]interface{}{"name": name})
	s.persistLocked(ctx)
	return s.overviewLocked(), nil
}

func (s *rentalService) SetToday(ctx context.Context, today time.Time) (*Overview, error) {
	var overview *Overview
	err := s.mutate(ctx, func(c *company.Company) error {
		c.Calendar().SetToday(today)
		overview = s.overviewLocked()
		return nil
	})
	return overview, err
}

func (s *rentalService) Overview() (*Overview, error) {
	var overview *Overview
	err := s.read(func(c *company.Company) error {
		overview = s.overviewLocked()
		return nil
	})
	return overview, err
}

func (s *rentalService) ListCustomers() ([]CustomerView, error) {
	var views []CustomerView
	err := s.read(func(c *company.Company) error {
		customers := c.Customers.Get()
		views = make([]CustomerView, 0, len(customers))
		for _, customer := range customers {
			views = append(views, customerView(customer))
		}
		return nil
	})
	return views, err
}

func (s *rentalService) CreateCustomer(ctx context.Context, name string) (*CustomerView, error) {
	var view *CustomerView
	err := s.mutate(ctx, func(c *company.Company) error {
		customer, err := c.Customers.Add(name)
		if err != nil {
			return err
		}
		v := customerView(customer)
		view = &v
		return nil
	})
	return view, err
}

func (s *rentalService) DeleteCustomer(ctx context.Context, id int) error {
	return s.mutate(ctx, func(c *company.Company) error {
		return c.Customers.Delete(id)
	})
}

func (s *rentalService) ListCategories() ([]CategoryView, error) {
	var views []CategoryView
	err := s.read(func(c *company.Company) error {
		categories := c.Categories.Get()
		views = make([]CategoryView, 0, len(categories))
		for _, category := range categories {
			views = append(views, categoryView(c, category))
		}
		return nil
	})
	return views, err
}

func (s *rentalService) CreateCategory(ctx context.Context, name string) (*CategoryView, error) {
	var view *CategoryView
	err := s.mutate(ctx, func(c *company.Company) error {
		category, err := c.Categories.Add(name)
		if err != nil {
			return err
		}
		v := categoryView(c, category)
		view = &v
		return nil
	})
	return view, err
}

func (s *rentalService) DeleteCategory(ctx context.Context, id int) error {
	return s.mutate(ctx, func(c *company.Company) error {
		return c.Categories.Delete(id)
	})
}

func (s *rentalService) ListCars() ([]CarView, error) {
	var views []CarView
	err := s.read(func(c *company.Company) error {
		cars := c.Cars.Get()
		views = make([]CarView, 0, len(cars))
		for _, car := range cars {
			views = append(views, carView(car))
		}
		return nil
	})
	return views, err
}

func (s *rentalService) CreateCar(ctx context.Context, model, color string, categoryID int) (*CarView, error) {
	var view *CarView
	err := s.mutate(ctx, func(c *company.Company) error {
		car, err := c.Cars.Add(model, color, categoryID)
		if err != nil {
			return err
		}
		v := carView(car)
		view = &v
		return nil
	})
	return view, err
}

func (s *rentalService) DeleteCar(ctx context.Context, id int) error {
	return s.mutate(ctx, func(c *company.Company) error {
		return c.Cars.Delete(id)
	})
}

func (s *rentalService) ListBookings() ([]BookingView, error) {
	var views []BookingView
	err := s.read(func(c *company.Company) error {
		bookings := c.Bookings.Get()
		views = make([]BookingView, 0, len(bookings))
		for _, booking := range bookings {
			_, rented := c.Rentals.FindByBookingID(booking.ID)
			views = append(views, bookingView(booking, rented))
		}
		return nil
	})
	return views, err
}

func (s *rentalService) ListRentals() ([]RentalView, error) {
	var views []RentalView
	err := s.read(func(c *company.Company) error {
		rentals := c.Rentals.Get()
		views = make([]RentalView, 0, len(rentals))
		for _, rental := range rentals {
			views = append(views, rentalView(rental))
		}
		return nil
	})
	return views, err
}

// Login issues a session token for an existing customer.
func (s *rentalService) Login(customerID int) (*LoginResult, error) {
	var result *LoginResult
	err := s.read(func(c *company.Company) error {
		customer, err := c.Customers.FindByID(customerID)
		if err != nil {
			return err
		}
		token, err := utils.GenerateCustomerToken(customer.ID, s.config.JWTSecret, s.config.TokenTTL)
		if err != nil {
			return fmt.Errorf("failed to generate token: %w", err)
		}
		result = &LoginResult{Customer: customerView(customer), Token: token}
		return nil
	})
	if err == nil {
		s.logger.WithCustomerID(customerID).Info("Customer logged in")
	}
	return result, err
}

func (s *rentalService) Account(customerID int) (*AccountView, error) {
	var view *AccountView
	err := s.read(func(c *company.Company) error {
		customer, err := c.Customers.FindByID(customerID)
		if err != nil {
			return err
		}
		view = &AccountView{
			Customer: customerView(customer),
			Bookings: []BookingView{},
			Rentals:  []RentalView{},
		}
		for _, booking := range c.Bookings.FindByCustomerID(customerID) {
			_, rented := c.Rentals.FindByBookingID(booking.ID)
			view.Bookings = append(view.Bookings, bookingView(booking, rented))
		}
		for _, rental := range c.Rentals.FindByCustomerID(customerID) {
			view.Rentals = append(view.Rentals, rentalView(rental))
		}
		return nil
	})
	return view, err
}

func (s *rentalService) CreateBooking(ctx context.Context, customerID int, input BookingInput) (*BookingView, error) {
	var view *BookingView
	err := s.mutate(ctx, func(c *company.Company) error {
		var (
			booking *models.Booking
			err     error
		)
		if input.CarID != 0 {
			booking, err = c.Bookings.Add(customerID, input.PeriodStart, input.PeriodEnd, input.CarID)
		} else {
			booking, err = c.Bookings.AddByCategory(customerID, input.PeriodStart, input.PeriodEnd, input.CategoryID)
		}
		if err != nil {
			return err
		}
		v := bookingView(booking, false)
		view = &v
		return nil
	})
	return view, err
}

func (s *rentalService) CancelBooking(ctx context.Context, customerID, bookingID int) error {
	return s.mutate(ctx, func(c *company.Company) error {
		if _, err := ownBooking(c, customerID, bookingID); err != nil {
			return err
		}
		return c.Bookings.Delete(bookingID)
	})
}

// PickUp rents the car of a booking. A tier change caused by the earned
// points is returned as *company.StatusChangeError next to the rental.
func (s *rentalService) PickUp(ctx context.Context, customerID, bookingID int, upgrade bool) (*RentalView, error) {
	var view *RentalView
	err := s.mutate(ctx, func(c *company.Company) error {
		if _, err := ownBooking(c, customerID, bookingID); err != nil {
			return err
		}

		var (
			rental *models.Rental
			err    error
		)
		if upgrade {
			rental, err = c.Rentals.AddWithUpgrade(bookingID)
		} else {
			rental, err = c.Rentals.Add(bookingID)
		}
		if rental != nil {
			v := rentalView(rental)
			view = &v
			s.logger.WithCustomerID(customerID).LogRentalEvent("rental", rental.ID, "picked_up", map[string]interface{}{
				"booking_id": bookingID,
				"car_id":     rental.Car.ID,
				"upgrade":    upgrade,
			})
		}
		return err
	})
	return view, err
}

// ReturnCar ends the rental of a booking. The booking itself stays.
func (s *rentalService) ReturnCar(ctx context.Context, customerID, bookingID int) error {
	return s.mutate(ctx, func(c *company.Company) error {
		if _, err := ownBooking(c, customerID, bookingID); err != nil {
			return err
		}
		rental, ok := c.Rentals.FindByBookingID(bookingID)
		if !ok {
			return company.NewRentalError("Booking %d has no active rental", bookingID)
		}
		return c.Rentals.Delete(rental.ID)
	})
}

func (s *rentalService) read(fn func(c *company.Company) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.company == nil {
		return ErrNoCompany
	}
	return fn(s.company)
}

// mutate runs fn and saves the snapshot unless fn was rejected without
// touching the company.
func (s *rentalService) mutate(ctx context.Context, fn func(c *company.Company) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.company == nil {
		return ErrNoCompany
	}
	err := fn(s.company)
	if _, statusChanged := company.AsStatusChange(err); err == nil || statusChanged || !company.IsRentalError(err) {
		s.persistLocked(ctx)
	}
	return err
}

func (s *rentalService) persistLocked(ctx context.Context) {
	if err := s.saveLocked(ctx); err != nil {
		s.logger.WithError(err).Error("Failed to persist snapshot")
	}
}

func (s *rentalService) saveLocked(ctx context.Context) error {
	data, err := snapshot.Marshal(s.company)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	// The save outlives a cancelled request so accepted changes are kept.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.PersistTimeout)
	defer cancel()

	if err := s.store.Save(ctx, data); err != nil {
		return err
	}
	s.logger.WithField("bytes", len(data)).Debug("Snapshot saved")
	return nil
}

func (s *rentalService) newCompany(name string) *company.Company {
	return company.New(name, control.NewSequence(), control.NewCalendar(), company.WithLogger(s.logger.Entry()))
}

// replaceLocked moves the observers over to next and publishes its counters.
func (s *rentalService) replaceLocked(next *company.Company) {
	if s.company != nil {
		for _, subject := range s.company.Subjects() {
			for _, observer := range s.observers {
				subject.Detach(observer)
			}
		}
	}
	s.company = next

	counts := collectionCounts(next)
	for source, subject := range next.Subjects() {
		for _, observer := range s.observers {
			subject.Attach(observer)
		}
		if count, ok := counts[source]; ok {
			subject.Notify(events.Event{Source: source, Count: count})
		}
	}
}

func (s *rentalService) overviewLocked() *Overview {
	c := s.company
	return &Overview{
		CompanyName: c.Name,
		Today:       utils.FormatDate(c.Calendar().Today()),
		CurrentID:   c.Sequence().Current(),
		Customers:   len(c.Customers.Get()),
		Categories:  len(c.Categories.Get()),
		Cars:        len(c.Cars.Get()),
		Bookings:    len(c.Bookings.Get()),
		Rentals:     len(c.Rentals.Get()),
	}
}

func collectionCounts(c *company.Company) map[string]int {
	return map[string]int{
		company.SourceCustomers: len(c.Customers.Get()),
		company.SourceCars:      len(c.Cars.Get()),
		company.SourceBookings:  len(c.Bookings.Get()),
		company.SourceRentals:   len(c.Rentals.Get()),
	}
}

func categoryView(c *company.Company, category *models.Category) CategoryView {
	return CategoryView{
		ID:   category.ID,
		Name: category.Name,
		Cars: len(c.Cars.FindByCategoryID(category.ID)),
	}
}

// ownBooking hides bookings of other customers behind the not found error.
func ownBooking(c *company.Company, customerID, bookingID int) (*models.Booking, error) {
	booking, err := c.Bookings.FindByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Customer.ID != customerID {
		return nil, company.NewRentalError("Couldn't find booking with id %d", bookingID)
	}
	return booking, nil
}
