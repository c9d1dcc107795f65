package fleet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetrent/internal/domain"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager()

	car, err := domain.NewCombustionCar("KR12345", "Toyota", "Corolla", 50000, 100, domain.LicenceB, 1800, 6.5, domain.FuelGasoline, 4)
	require.NoError(t, err)
	require.NoError(t, m.AddVehicle(car))

	ev, err := domain.NewElectricCar("EL99999", "Tesla", "Model 3", 20000, 150, domain.LicenceB, 75, 4)
	require.NoError(t, err)
	require.NoError(t, m.AddVehicle(ev))

	truck, err := domain.NewTruck("TR55555", "Volvo", "FH16", 300000, 350, domain.LicenceC, 16000, 32, domain.FuelDiesel, 24000)
	require.NoError(t, err)
	require.NoError(t, m.AddVehicle(truck))

	private, err := domain.NewPrivateCustomer("Jan Kowalski", "Krakow, Dluga 5", "ABC123456")
	require.NoError(t, err)
	require.NoError(t, m.AddCustomer(private))

	business, err := domain.NewBusinessCustomer("Trans-Pol Sp. z o.o.", "Warszawa, Prosta 1", "1234567890")
	require.NoError(t, err)
	require.NoError(t, m.AddCustomer(business))

	return m
}

func TestAddVehicle(t *testing.T) {
	m := testManager(t)

	t.Run("Duplicate registration conflicts", func(t *testing.T) {
		dup, err := domain.NewCombustionCar("KR12345", "Opel", "Astra", 0, 90, domain.LicenceB, 1600, 7, domain.FuelGasoline, 5)
		require.NoError(t, err)

		err = m.AddVehicle(dup)
		assert.True(t, domain.IsConflict(err))
		assert.Len(t, m.Vehicles(), 3)
	})

	t.Run("Nil rejected", func(t *testing.T) {
		assert.True(t, domain.IsValidation(m.AddVehicle(nil)))
	})
}

func TestRemoveVehicle(t *testing.T) {
	t.Run("Unknown registration", func(t *testing.T) {
		m := testManager(t)
		assert.True(t, domain.IsNotFound(m.RemoveVehicle("XX00000")))
	})

	t.Run("Rented vehicle is protected", func(t *testing.T) {
		m := testManager(t)
		_, err := m.Rent("KR12345", "ABC123456", "2024-01-01", "2024-01-05")
		require.NoError(t, err)

		err = m.RemoveVehicle("KR12345")
		assert.True(t, domain.IsConflict(err))
		_, err = m.Vehicle("KR12345")
		assert.NoError(t, err) // still there
	})

	t.Run("Available vehicle removed", func(t *testing.T) {
		m := testManager(t)
		require.NoError(t, m.RemoveVehicle("KR12345"))
		_, err := m.Vehicle("KR12345")
		assert.True(t, domain.IsNotFound(err))
		assert.Len(t, m.Vehicles(), 2)
	})
}

func TestCustomerManagement(t *testing.T) {
	m := testManager(t)

	t.Run("Duplicate ID conflicts", func(t *testing.T) {
		dup, err := domain.NewPrivateCustomer("Other Person", "Gdansk, Morska 2", "ABC123456")
		require.NoError(t, err)
		assert.True(t, domain.IsConflict(m.AddCustomer(dup)))
		assert.Len(t, m.Customers(), 2)
	})

	t.Run("Customer with active rental is protected", func(t *testing.T) {
		_, err := m.Rent("KR12345", "ABC123456", "2024-01-01", "2024-01-05")
		require.NoError(t, err)

		err = m.RemoveCustomer("ABC123456")
		assert.True(t, domain.IsConflict(err))
		_, err = m.Customer("ABC123456")
		assert.NoError(t, err)

		_, err = m.Return("KR12345", 50500)
		require.NoError(t, err)
		assert.NoError(t, m.RemoveCustomer("ABC123456"))
	})

	t.Run("Unknown customer", func(t *testing.T) {
		assert.True(t, domain.IsNotFound(m.RemoveCustomer("ZZ999")))
		_, err := m.Customer("ZZ999")
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestFinders(t *testing.T) {
	m := testManager(t)

	assert.Len(t, m.FindByBrand("Toyota"), 1)
	assert.Empty(t, m.FindByBrand("Fiat"))

	cheap := m.FindByMaxPrice(150)
	require.Len(t, cheap, 2)
	// Collection order is insertion order.
	assert.Equal(t, "KR12345", cheap[0].Registration())
	assert.Equal(t, "EL99999", cheap[1].Registration())

	cars := m.VehiclesOfKind(domain.KindCombustionCar, domain.KindElectricCar)
	assert.Len(t, cars, 2)
	assert.Len(t, m.VehiclesOfKind(domain.KindMotorcycle), 0)

	assert.Len(t, m.CustomersOfKind(domain.KindPrivateCustomer), 1)
	assert.Len(t, m.CustomersOfKind(domain.KindBusinessCustomer), 1)
}

func TestRent(t *testing.T) {
	m := testManager(t)

	t.Run("Success removes vehicle from availability", func(t *testing.T) {
		r, err := m.Rent("KR12345", "ABC123456", "2024-01-01", "2024-01-05")
		require.NoError(t, err)
		assert.NotEmpty(t, r.ID())

		regs := make([]string, 0)
		for _, v := range m.FindAvailable() {
			regs = append(regs, v.Registration())
		}
		assert.NotContains(t, regs, "KR12345")
		assert.Contains(t, regs, "EL99999")
	})

	t.Run("Already rented", func(t *testing.T) {
		_, err := m.Rent("KR12345", "1234567890", "2024-02-01", "2024-02-05")
		assert.True(t, domain.IsConflict(err))
		assert.Len(t, m.ActiveRentals(), 1)
	})

	t.Run("Unknown vehicle or customer", func(t *testing.T) {
		_, err := m.Rent("XX00000", "ABC123456", "2024-01-01", "2024-01-05")
		assert.True(t, domain.IsNotFound(err))

		_, err = m.Rent("EL99999", "nobody", "2024-01-01", "2024-01-05")
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("Invalid date range", func(t *testing.T) {
		_, err := m.Rent("EL99999", "ABC123456", "2024-01-05", "2024-01-05")
		assert.True(t, domain.IsValidation(err))
		assert.Len(t, m.ActiveRentals(), 1)
	})
}

func TestReturn(t *testing.T) {
	t.Run("No active rental", func(t *testing.T) {
		m := testManager(t)
		_, err := m.Return("KR12345", 51000)
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("Mileage must not decrease", func(t *testing.T) {
		m := testManager(t)
		_, err := m.Rent("KR12345", "ABC123456", "2024-01-01", "2024-01-05")
		require.NoError(t, err)

		_, err = m.Return("KR12345", 49000)
		assert.True(t, domain.IsValidation(err))
		// Rental survives the failed return.
		assert.Len(t, m.ActiveRentals(), 1)
		assert.Empty(t, m.History())
	})

	t.Run("Success archives exactly one history line", func(t *testing.T) {
		m := testManager(t)
		_, err := m.Rent("KR12345", "ABC123456", "2024-01-01", "2024-01-04")
		require.NoError(t, err)

		cost, err := m.Return("KR12345", 50750)
		require.NoError(t, err)
		assert.Equal(t, float64(300), cost) // 100 zl/day * 3 days

		assert.Empty(t, m.ActiveRentals())
		history := m.History()
		require.Len(t, history, 1)
		assert.Equal(t, "Toyota Corolla (KR12345);Jan Kowalski (ABC123456);2024-01-01;2024-01-04;300", history[0])

		v, err := m.Vehicle("KR12345")
		require.NoError(t, err)
		assert.Equal(t, float64(50750), v.Mileage())

		// Vehicle is available again.
		regs := make([]string, 0)
		for _, av := range m.FindAvailable() {
			regs = append(regs, av.Registration())
		}
		assert.Contains(t, regs, "KR12345")
	})

	t.Run("Truck cargo surcharge", func(t *testing.T) {
		m := testManager(t)
		_, err := m.Rent("TR55555", "1234567890", "2024-03-01", "2024-03-03")
		require.NoError(t, err)

		cost, err := m.Return("TR55555", 300400)
		require.NoError(t, err)
		assert.Equal(t, 350*2+24000*0.1*2, cost)
	})
}

func TestRentalInfo(t *testing.T) {
	m := testManager(t)
	r, err := m.Rent("KR12345", "ABC123456", "2024-01-01", "2024-01-04")
	require.NoError(t, err)

	info := m.RentalInfo(r)
	assert.True(t, strings.HasPrefix(info, "Rental Details [2024-01-01 - 2024-01-04]:"))
	assert.Contains(t, info, "  Duration: 3 days")
	assert.Contains(t, info, "  Total Cost: 300 zl")
	assert.Contains(t, info, "--- Vehicle Info ---")
	assert.Contains(t, info, "Car: Toyota Corolla [KR12345]")
	assert.Contains(t, info, "--- Customer Info ---")
	assert.Contains(t, info, "Private Customer [ABC123456]: Jan Kowalski")
}

func TestSnapshotRestore(t *testing.T) {
	m := testManager(t)
	_, err := m.Rent("KR12345", "ABC123456", "2024-01-01", "2024-01-05")
	require.NoError(t, err)
	_, err = m.Rent("EL99999", "1234567890", "2024-02-01", "2024-02-03")
	require.NoError(t, err)
	_, err = m.Return("EL99999", 20200)
	require.NoError(t, err)

	snap := m.Snapshot()

	fresh := NewManager()
	fresh.Restore(snap)

	assert.Len(t, fresh.Vehicles(), 3)
	assert.Len(t, fresh.Customers(), 2)
	assert.Len(t, fresh.ActiveRentals(), 1)
	assert.Equal(t, m.History(), fresh.History())

	t.Run("Rentals failing validation are skipped", func(t *testing.T) {
		bad, err := domain.NewRental("XX00000", "ABC123456", "2024-01-01", "2024-01-05")
		require.NoError(t, err) // the rental itself is well formed
		snap.Rentals = append(snap.Rentals, bad)

		again := NewManager()
		again.Restore(snap)
		assert.Len(t, again.ActiveRentals(), 1) // unknown vehicle dropped
	})
}
