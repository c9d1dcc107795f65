package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetrent/internal/config"
	"fleetrent/internal/fleet"
)

// stubStore records what the shell asked it to persist.
type stubStore struct {
	savedPath string
	saved     *fleet.Snapshot
	loadSnap  *fleet.Snapshot
}

func (s *stubStore) Save(path string, snap *fleet.Snapshot) error {
	s.savedPath = path
	s.saved = snap
	return nil
}

func (s *stubStore) Load(path string) (*fleet.Snapshot, error) {
	if s.loadSnap != nil {
		return s.loadSnap, nil
	}
	return &fleet.Snapshot{}, nil
}

func runSession(t *testing.T, script ...string) (string, *fleet.Manager, *stubStore) {
	t.Helper()
	manager := fleet.NewManager()
	store := &stubStore{}
	cfg := &config.Config{
		Data:   config.DataConfig{File: "data.txt"},
		Report: config.ReportConfig{OutputDir: t.TempDir()},
	}

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	sh := New(manager, store, cfg, in, &out)
	require.NoError(t, sh.Run())
	return out.String(), manager, store
}

func TestExhaustedInputEndsLoop(t *testing.T) {
	out, _, _ := runSession(t)
	assert.Contains(t, out, "=== VEHICLE RENTAL SYSTEM ===")
	assert.NotContains(t, out, "Exiting...")
}

func TestExit(t *testing.T) {
	out, _, store := runSession(t,
		"0", // Exit
		"n", // do not save
	)
	assert.Contains(t, out, "Exiting...")
	assert.Nil(t, store.saved)
}

func TestExitWithSave(t *testing.T) {
	out, _, store := runSession(t,
		"0",
		"y",
	)
	assert.Contains(t, out, "Saved.")
	assert.Contains(t, out, "Exiting...")
	require.NotNil(t, store.saved)
	assert.Equal(t, "data.txt", store.savedPath)
}

func TestFullRentalSession(t *testing.T) {
	out, manager, _ := runSession(t,
		// Add a combustion car.
		"1", "1",
		"Toyota", "Corolla", "KR12345",
		"100", "50000",
		"1800", "6.5", "p", "4",
		// Add a private customer.
		"4", "1",
		"Jan Kowalski", "Krakow, Dluga 5", "ABC123456",
		// Rent it.
		"7", "KR12345", "ABC123456", "2024-01-01", "2024-01-04",
		// Inspect active rentals.
		"9",
		// Return it, skip the invoice.
		"8", "KR12345", "50500", "n",
		// History.
		"10",
		"0", "n",
	)

	assert.Contains(t, out, "Vehicle added successfully.")
	assert.Contains(t, out, "Customer added successfully.")
	assert.Contains(t, out, "Vehicle rented successfully.")
	assert.Contains(t, out, "Rental Details [2024-01-01 - 2024-01-04]:")
	assert.Contains(t, out, "Vehicle returned. Total Cost: 300 zl")
	assert.Contains(t, out, "=== Rental History ===")
	assert.Contains(t, out, "Vehicle: Toyota Corolla (KR12345)")
	assert.Contains(t, out, "Cost: 300 zl")

	assert.Empty(t, manager.ActiveRentals())
	assert.Len(t, manager.History(), 1)
}

func TestInvoiceGenerated(t *testing.T) {
	out, _, _ := runSession(t,
		"1", "2",
		"Tesla", "Model 3", "EL99999",
		"150", "20000",
		"75", "4",
		"4", "1",
		"Jan Kowalski", "Krakow, Dluga 5", "ABC123456",
		"7", "EL99999", "ABC123456", "2024-02-01", "2024-02-03",
		"8", "EL99999", "20400", "y",
		"0", "n",
	)
	assert.Contains(t, out, "Vehicle returned. Total Cost: 300 zl")
	assert.Contains(t, out, "Invoice written to ")
	assert.Contains(t, out, "INVOICE_")
}

func TestBadInputRetries(t *testing.T) {
	out, manager, _ := runSession(t,
		"banana", // not a menu number
		"4", "2",
		"Trans-Pol Sp. z o.o.", "Warszawa, Prosta 1",
		"123",        // NIP too short
		"1234567890", // valid NIP
		"0", "n",
	)
	assert.Contains(t, out, "Invalid input. Please enter a valid integer number.")
	assert.Contains(t, out, "Invalid NIP. It must consist of exactly 10 digits.")
	assert.Contains(t, out, "Customer added successfully.")
	assert.Len(t, manager.Customers(), 1)
}

func TestInvalidDateRetries(t *testing.T) {
	out, _, _ := runSession(t,
		"1", "4",
		"Honda", "CB500", "MT11111",
		"60", "12000",
		"500", "4.2",
		"4", "1",
		"Jan Kowalski", "Krakow, Dluga 5", "ABC123456",
		"7", "MT11111", "ABC123456",
		"2024-02-30", // not a real date
		"2024-02-28",
		"2024-03-01",
		"0", "n",
	)
	assert.Contains(t, out, "Invalid date format or value. Please use YYYY-MM-DD.")
	assert.Contains(t, out, "Vehicle rented successfully.")
}

func TestOperationFailureReported(t *testing.T) {
	out, _, _ := runSession(t,
		"2", "XX00000", // remove unknown vehicle
		"0", "n",
	)
	assert.Contains(t, out, "Operation failed:")
}

func TestShowVehiclesSubmenus(t *testing.T) {
	out, _, _ := runSession(t,
		"1", "1",
		"Toyota", "Corolla", "KR12345",
		"100", "50000",
		"1800", "6.5", "p", "4",
		"3", "2", "2", // cars -> combustion
		"3", "2", "3", // cars -> electric (none)
		"3", "3", // motorcycles (none)
		"0", "n",
	)
	assert.Contains(t, out, "Car: Toyota Corolla [KR12345]")
	assert.Contains(t, out, "No electric cars found.")
	assert.Contains(t, out, "No motorcycles found.")
}

func TestSearch(t *testing.T) {
	out, _, _ := runSession(t,
		"1", "1",
		"Toyota", "Corolla", "KR12345",
		"100", "50000",
		"1800", "6.5", "p", "4",
		"11", "1", "KR12345", // by registration
		"11", "2", "Fiat", // brand with no match
		"11", "4", "50", // max price below all
		"11", "5", // available
		"0", "n",
	)
	assert.Contains(t, out, "Car: Toyota Corolla [KR12345]")
	assert.Contains(t, out, "No vehicles found for brand: Fiat")
	assert.Contains(t, out, "No vehicles found within this price range.")
}
