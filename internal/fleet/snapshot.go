package fleet

import "fleetrent/internal/domain"

// Snapshot is the full manager state handed to and received from the
// persistence layer. Rentals reference vehicles and customers by key
// only; history lines are opaque text.
type Snapshot struct {
	Vehicles  []domain.Vehicle
	Customers []domain.Customer
	Rentals   []*domain.Rental
	History   []string
}

// Snapshot captures the current state for saving.
func (m *Manager) Snapshot() *Snapshot {
	return &Snapshot{
		Vehicles:  m.Vehicles(),
		Customers: m.Customers(),
		Rentals:   m.ActiveRentals(),
		History:   m.History(),
	}
}

// Restore replaces all state with the snapshot contents. Vehicles and
// customers are adopted directly; rentals are replayed through Rent so
// the same invariants hold as at runtime, and entries that fail
// validation are skipped. History lines are adopted verbatim.
func (m *Manager) Restore(snap *Snapshot) {
	m.vehicles = nil
	m.customers = nil
	m.rentals = nil
	m.history = nil

	for _, v := range snap.Vehicles {
		if err := m.AddVehicle(v); err != nil {
			m.log.Warn("skipping vehicle on restore", "registration", v.Registration(), "error", err)
		}
	}
	for _, c := range snap.Customers {
		if err := m.AddCustomer(c); err != nil {
			m.log.Warn("skipping customer on restore", "id", c.ID(), "error", err)
		}
	}
	for _, r := range snap.Rentals {
		if _, err := m.Rent(r.VehicleReg(), r.CustomerID(), r.StartDate(), r.EndDate()); err != nil {
			m.log.Warn("skipping rental on restore",
				"registration", r.VehicleReg(), "customer_id", r.CustomerID(), "error", err)
		}
	}
	m.history = append(m.history, snap.History...)

	m.log.Info("state restored",
		"vehicles", len(m.vehicles), "customers", len(m.customers),
		"rentals", len(m.rentals), "history", len(m.history))
}
