package fleet

import (
	"fmt"
	"log/slog"
	"strings"

	"fleetrent/internal/domain"
	"fleetrent/internal/logger"
)

// Manager owns the vehicle, customer and active-rental collections plus
// the append-only rental history. It enforces the uniqueness and
// availability invariants and is the single entry point for every
// state-mutating operation. All operations are synchronous and the
// manager is not safe for concurrent use.
type Manager struct {
	vehicles  []domain.Vehicle
	customers []domain.Customer
	rentals   []*domain.Rental
	history   []string

	log *slog.Logger
}

func NewManager() *Manager {
	return &Manager{log: logger.WithComponent("fleet")}
}

// --- Vehicle management ---

// AddVehicle takes ownership of v. The registration must be unique
// across all vehicles.
func (m *Manager) AddVehicle(v domain.Vehicle) error {
	if v == nil {
		return domain.ValidationError{Field: "vehicle", Msg: "cannot be nil"}
	}
	if m.findVehicle(v.Registration()) != nil {
		return domain.ConflictError{Resource: "vehicle", Msg: "registration number already exists"}
	}
	m.vehicles = append(m.vehicles, v)
	m.log.Debug("vehicle added", "registration", v.Registration(), "kind", v.Kind())
	return nil
}

// RemoveVehicle deletes the vehicle with the given registration. A
// vehicle with an active rental cannot be removed.
func (m *Manager) RemoveVehicle(registration string) error {
	if m.isRented(registration) {
		return domain.ConflictError{Resource: "vehicle", Msg: "currently rented"}
	}
	for i, v := range m.vehicles {
		if v.Registration() == registration {
			m.vehicles = append(m.vehicles[:i], m.vehicles[i+1:]...)
			m.log.Debug("vehicle removed", "registration", registration)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "vehicle"}
}

// Vehicle returns the vehicle with the given registration.
func (m *Manager) Vehicle(registration string) (domain.Vehicle, error) {
	if v := m.findVehicle(registration); v != nil {
		return v, nil
	}
	return nil, domain.NotFoundError{Resource: "vehicle"}
}

// Vehicles returns all vehicles in insertion order.
func (m *Manager) Vehicles() []domain.Vehicle {
	out := make([]domain.Vehicle, len(m.vehicles))
	copy(out, m.vehicles)
	return out
}

// VehiclesOfKind returns the vehicles matching any of the given kinds,
// in insertion order.
func (m *Manager) VehiclesOfKind(kinds ...domain.Kind) []domain.Vehicle {
	var out []domain.Vehicle
	for _, v := range m.vehicles {
		for _, k := range kinds {
			if v.Kind() == k {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// FindByBrand returns the vehicles with an exactly matching brand.
func (m *Manager) FindByBrand(brand string) []domain.Vehicle {
	var out []domain.Vehicle
	for _, v := range m.vehicles {
		if v.Brand() == brand {
			out = append(out, v)
		}
	}
	return out
}

// FindByMaxPrice returns the vehicles with base daily cost at most
// maxPrice.
func (m *Manager) FindByMaxPrice(maxPrice float64) []domain.Vehicle {
	var out []domain.Vehicle
	for _, v := range m.vehicles {
		if v.BaseCost() <= maxPrice {
			out = append(out, v)
		}
	}
	return out
}

// FindAvailable returns the vehicles with no active rental.
func (m *Manager) FindAvailable() []domain.Vehicle {
	var out []domain.Vehicle
	for _, v := range m.vehicles {
		if !m.isRented(v.Registration()) {
			out = append(out, v)
		}
	}
	return out
}

// --- Customer management ---

// AddCustomer takes ownership of c. The ID must be unique across all
// customers.
func (m *Manager) AddCustomer(c domain.Customer) error {
	if c == nil {
		return domain.ValidationError{Field: "customer", Msg: "cannot be nil"}
	}
	if m.findCustomer(c.ID()) != nil {
		return domain.ConflictError{Resource: "customer", Msg: "id already exists"}
	}
	m.customers = append(m.customers, c)
	m.log.Debug("customer added", "id", c.ID(), "kind", c.Kind())
	return nil
}

// RemoveCustomer deletes the customer with the given ID. A customer
// with an active rental cannot be removed.
func (m *Manager) RemoveCustomer(id string) error {
	for _, r := range m.rentals {
		if r.CustomerID() == id {
			return domain.ConflictError{Resource: "customer", Msg: "has active rentals"}
		}
	}
	for i, c := range m.customers {
		if c.ID() == id {
			m.customers = append(m.customers[:i], m.customers[i+1:]...)
			m.log.Debug("customer removed", "id", id)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "customer"}
}

// Customer returns the customer with the given ID.
func (m *Manager) Customer(id string) (domain.Customer, error) {
	if c := m.findCustomer(id); c != nil {
		return c, nil
	}
	return nil, domain.NotFoundError{Resource: "customer"}
}

// Customers returns all customers in insertion order.
func (m *Manager) Customers() []domain.Customer {
	out := make([]domain.Customer, len(m.customers))
	copy(out, m.customers)
	return out
}

// CustomersOfKind returns the customers of the given kind in insertion
// order.
func (m *Manager) CustomersOfKind(kind domain.CustomerKind) []domain.Customer {
	var out []domain.Customer
	for _, c := range m.customers {
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}

// --- Rental lifecycle ---

// Rent creates an active rental for the vehicle and customer. The
// vehicle and customer must exist and the vehicle must not already be
// rented; the rental itself validates the date range.
func (m *Manager) Rent(registration, customerID, startDate, endDate string) (*domain.Rental, error) {
	if m.findVehicle(registration) == nil {
		return nil, domain.NotFoundError{Resource: "vehicle"}
	}
	if m.findCustomer(customerID) == nil {
		return nil, domain.NotFoundError{Resource: "customer"}
	}
	if m.isRented(registration) {
		return nil, domain.ConflictError{Resource: "vehicle", Msg: "already rented"}
	}

	r, err := domain.NewRental(registration, customerID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	m.rentals = append(m.rentals, r)
	m.log.Info("vehicle rented",
		"rental_id", r.ID(), "registration", registration, "customer_id", customerID,
		"start", startDate, "end", endDate)
	return r, nil
}

// Return ends the active rental for the vehicle: it updates the mileage
// (monotonic), computes the total cost, archives a history line and
// discards the rental. It returns the cost.
func (m *Manager) Return(registration string, newMileage float64) (float64, error) {
	idx := -1
	for i, r := range m.rentals {
		if r.VehicleReg() == registration {
			idx = i
			break
		}
	}
	if idx == -1 {
		return 0, domain.NotFoundError{Resource: "rental for this vehicle"}
	}
	r := m.rentals[idx]

	v := m.findVehicle(registration)
	if v == nil {
		return 0, domain.NotFoundError{Resource: "vehicle"}
	}
	if err := v.SetMileage(newMileage); err != nil {
		return 0, err
	}

	cost, err := v.ComputeRentCost(r.DurationDays())
	if err != nil {
		return 0, err
	}

	c := m.findCustomer(r.CustomerID())
	name, id := r.CustomerID(), r.CustomerID()
	if c != nil {
		name = c.Name()
	}
	m.history = append(m.history, fmt.Sprintf("%s %s (%s);%s (%s);%s;%s;%s",
		v.Brand(), v.Model(), v.Registration(),
		name, id,
		r.StartDate(), r.EndDate(), domain.FormatNumber(cost)))

	m.rentals = append(m.rentals[:idx], m.rentals[idx+1:]...)
	m.log.Info("vehicle returned",
		"rental_id", r.ID(), "registration", registration, "cost", cost, "mileage", newMileage)
	return cost, nil
}

// ActiveRentals returns the active rentals in insertion order.
func (m *Manager) ActiveRentals() []*domain.Rental {
	out := make([]*domain.Rental, len(m.rentals))
	copy(out, m.rentals)
	return out
}

// History returns the archived rental summary lines, oldest first.
func (m *Manager) History() []string {
	out := make([]string, len(m.history))
	copy(out, m.history)
	return out
}

// RentalCost computes the total cost of an active rental, or 0 when the
// vehicle reference cannot be resolved.
func (m *Manager) RentalCost(r *domain.Rental) float64 {
	v := m.findVehicle(r.VehicleReg())
	if v == nil {
		return 0
	}
	cost, err := v.ComputeRentCost(r.DurationDays())
	if err != nil {
		return 0
	}
	return cost
}

// RentalInfo formats an active rental with its resolved vehicle and
// customer details.
func (m *Manager) RentalInfo(r *domain.Rental) string {
	v := m.findVehicle(r.VehicleReg())
	c := m.findCustomer(r.CustomerID())
	if v == nil || c == nil {
		return "Rental: [Empty/Invalid]"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Rental Details [%s - %s]:\n", r.StartDate(), r.EndDate())
	fmt.Fprintf(&b, "  Duration: %d days\n", r.DurationDays())
	fmt.Fprintf(&b, "  Total Cost: %s zl\n", domain.FormatNumber(m.RentalCost(r)))
	b.WriteString("--- Vehicle Info ---\n")
	b.WriteString(v.Describe())
	b.WriteString("\n--- Customer Info ---\n")
	b.WriteString(c.Describe())
	return b.String()
}

func (m *Manager) findVehicle(registration string) domain.Vehicle {
	for _, v := range m.vehicles {
		if v.Registration() == registration {
			return v
		}
	}
	return nil
}

func (m *Manager) findCustomer(id string) domain.Customer {
	for _, c := range m.customers {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

func (m *Manager) isRented(registration string) bool {
	for _, r := range m.rentals {
		if r.VehicleReg() == registration {
			return true
		}
	}
	return false
}
