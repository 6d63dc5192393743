package models

type CustomerStatus string

const (
	StatusBasic        CustomerStatus = "Basic"
	StatusNewbie       CustomerStatus = "Newbie"
	StatusExpert       CustomerStatus = "Expert"
	StatusProfessional CustomerStatus = "Professional"
	StatusSerialRenter CustomerStatus = "Serial Renter"
)

type Customer struct {
	ID     int            `json:"id"`
	Name   string         `json:"name"`
	Points int            `json:"points"`
	Status CustomerStatus `json:"status"`
}

func NewCustomer(id int, name string) *Customer {
	return &Customer{
		ID:     id,
		Name:   name,
		Status: StatusBasic,
	}
}

// Label is the human readable form shown by the web front end.
func (c *Customer) Label() string {
	return c.Name
}

// StatusForPoints maps a point balance onto its loyalty tier.
func StatusForPoints(points int) CustomerStatus {
	switch {
	case points <= 100:
		return StatusBasic
	case points <= 200:
		return StatusNewbie
	case points <= 500:
		return StatusExpert
	case points <= 800:
		return StatusProfessional
	default:
		return StatusSerialRenter
	}
}

// Multiplier is the loyalty points multiplier of a tier.
func (s CustomerStatus) Multiplier() int {
	switch s {
	case StatusBasic, StatusNewbie:
		return 1
	case StatusExpert:
		return 2
	case StatusProfessional:
		return 3
	case StatusSerialRenter:
		return 5
	default:
		return 0
	}
}

func (s CustomerStatus) IsValid() bool {
	return s.Multiplier() > 0
}
