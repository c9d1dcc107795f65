// Package textfile implements the flat semicolon-delimited save format:
// four sections in fixed order (vehicles, customers, active rentals,
// history), each a count line followed by one record per line.
package textfile

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"fleetrent/internal/domain"
	"fleetrent/internal/fleet"
	"fleetrent/internal/logger"
)

// Store reads and writes manager snapshots as plain text.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// Save writes the snapshot to path, replacing any previous content.
func (s *Store) Save(path string, snap *fleet.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return domain.StorageError{Msg: "could not open file for saving", Err: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	fmt.Fprintf(w, "%d\n", len(snap.Vehicles))
	for _, v := range snap.Vehicles {
		w.WriteString(encodeVehicle(v))
		w.WriteByte('\n')
	}

	fmt.Fprintf(w, "%d\n", len(snap.Customers))
	for _, c := range snap.Customers {
		w.WriteString(encodeCustomer(c))
		w.WriteByte('\n')
	}

	fmt.Fprintf(w, "%d\n", len(snap.Rentals))
	for _, r := range snap.Rentals {
		fmt.Fprintf(w, "%s;%s;%s;%s\n", r.VehicleReg(), r.CustomerID(), r.StartDate(), r.EndDate())
	}

	fmt.Fprintf(w, "%d\n", len(snap.History))
	for _, h := range snap.History {
		w.WriteString(h)
		w.WriteByte('\n')
	}

	if err := w.Flush(); err != nil {
		return domain.StorageError{Msg: "could not write save file", Err: err}
	}
	return nil
}

// Load reads the snapshot at path. A missing file yields an empty
// snapshot. Malformed vehicle and customer lines are skipped with a
// diagnostic; the rest of the file continues loading.
func (s *Store) Load(path string) (*fleet.Snapshot, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return &fleet.Snapshot{}, nil
	}
	if err != nil {
		return nil, domain.StorageError{Msg: "could not open file for loading", Err: err}
	}
	defer f.Close()

	log := logger.WithComponent("textfile")
	sc := bufio.NewScanner(f)
	snap := &fleet.Snapshot{}

	n, err := readCount(sc, "vehicles")
	if err != nil {
		return nil, err
	}
	for i := 0; i < n && sc.Scan(); i++ {
		line := sc.Text()
		v, err := decodeVehicle(line)
		if err != nil {
			log.Warn("skipping malformed vehicle line", "line", line, "error", err)
			continue
		}
		snap.Vehicles = append(snap.Vehicles, v)
	}

	n, err = readCount(sc, "customers")
	if err != nil {
		return nil, err
	}
	for i := 0; i < n && sc.Scan(); i++ {
		line := sc.Text()
		c, err := decodeCustomer(line)
		if err != nil {
			log.Warn("skipping malformed customer line", "line", line, "error", err)
			continue
		}
		snap.Customers = append(snap.Customers, c)
	}

	n, err = readCount(sc, "rentals")
	if err != nil {
		return nil, err
	}
	for i := 0; i < n && sc.Scan(); i++ {
		line := sc.Text()
		parts := strings.Split(line, ";")
		if len(parts) < 4 {
			log.Warn("skipping malformed rental line", "line", line)
			continue
		}
		r, err := domain.NewRental(parts[0], parts[1], parts[2], parts[3])
		if err != nil {
			log.Warn("skipping malformed rental line", "line", line, "error", err)
			continue
		}
		snap.Rentals = append(snap.Rentals, r)
	}

	n, err = readCount(sc, "history")
	if err != nil {
		return nil, err
	}
	for i := 0; i < n && sc.Scan(); i++ {
		snap.History = append(snap.History, sc.Text())
	}

	if err := sc.Err(); err != nil {
		return nil, domain.StorageError{Msg: "could not read save file", Err: err}
	}
	return snap, nil
}

func readCount(sc *bufio.Scanner, section string) (int, error) {
	if !sc.Scan() {
		// A truncated file simply ends the load; sections so far stand.
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil || n < 0 {
		return 0, domain.StorageError{Msg: fmt.Sprintf("corrupt %s count line", section)}
	}
	return n, nil
}

func encodeVehicle(v domain.Vehicle) string {
	num := domain.FormatNumber
	switch t := v.(type) {
	case *domain.CombustionCar:
		// Type;Brand;Model;Reg;Cost;Engine;FuelCons;FuelType;Licence;Mileage;Doors
		return fmt.Sprintf("%s;%s;%s;%s;%s;%d;%s;%d;%d;%s;%d",
			domain.KindCombustionCar, t.Brand(), t.Model(), t.Registration(), num(t.BaseCost()),
			t.EngineSize(), num(t.FuelConsumption()), int(t.FuelType()), int(t.Licence()),
			num(t.Mileage()), t.Doors())
	case *domain.ElectricCar:
		// Type;Brand;Model;Reg;Cost;Battery;Licence;Mileage;Doors
		return fmt.Sprintf("%s;%s;%s;%s;%s;%s;%d;%s;%d",
			domain.KindElectricCar, t.Brand(), t.Model(), t.Registration(), num(t.BaseCost()),
			num(t.BatteryCapacity()), int(t.Licence()), num(t.Mileage()), t.Doors())
	case *domain.Truck:
		// Type;Brand;Model;Reg;Cost;Engine;FuelCons;FuelType;Licence;Mileage;Capacity
		return fmt.Sprintf("%s;%s;%s;%s;%s;%d;%s;%d;%d;%s;%d",
			domain.KindTruck, t.Brand(), t.Model(), t.Registration(), num(t.BaseCost()),
			t.EngineSize(), num(t.FuelConsumption()), int(t.FuelType()), int(t.Licence()),
			num(t.Mileage()), t.CargoCapacity())
	case *domain.Motorcycle:
		// Type;Brand;Model;Reg;Cost;Engine;FuelCons;FuelType;Licence;Mileage
		return fmt.Sprintf("%s;%s;%s;%s;%s;%d;%s;%d;%d;%s",
			domain.KindMotorcycle, t.Brand(), t.Model(), t.Registration(), num(t.BaseCost()),
			t.EngineSize(), num(t.FuelConsumption()), int(t.FuelType()), int(t.Licence()),
			num(t.Mileage()))
	default:
		return ""
	}
}

func decodeVehicle(line string) (domain.Vehicle, error) {
	parts := strings.Split(line, ";")
	if len(parts) == 0 || parts[0] == "" {
		return nil, domain.ValidationError{Field: "vehicle line", Msg: "empty"}
	}

	switch domain.Kind(parts[0]) {
	case domain.KindCombustionCar:
		if len(parts) < 11 {
			return nil, domain.ValidationError{Field: "vehicle line", Msg: "too few fields"}
		}
		cost, err1 := strconv.ParseFloat(parts[4], 64)
		engine, err2 := strconv.Atoi(parts[5])
		cons, err3 := strconv.ParseFloat(parts[6], 64)
		fuelRaw, err4 := strconv.Atoi(parts[7])
		catRaw, err5 := strconv.Atoi(parts[8])
		mileage, err6 := strconv.ParseFloat(parts[9], 64)
		doors, err7 := strconv.Atoi(parts[10])
		if err := firstErr(err1, err2, err3, err4, err5, err6, err7); err != nil {
			return nil, domain.ValidationError{Field: "vehicle line", Msg: err.Error()}
		}
		fuel, err := domain.FuelTypeFromInt(fuelRaw)
		if err != nil {
			return nil, err
		}
		cat, err := domain.LicenceCategoryFromInt(catRaw)
		if err != nil {
			return nil, err
		}
		return domain.NewCombustionCar(parts[3], parts[1], parts[2], mileage, cost, cat, engine, cons, fuel, doors)

	case domain.KindElectricCar:
		if len(parts) < 9 {
			return nil, domain.ValidationError{Field: "vehicle line", Msg: "too few fields"}
		}
		cost, err1 := strconv.ParseFloat(parts[4], 64)
		battery, err2 := strconv.ParseFloat(parts[5], 64)
		catRaw, err3 := strconv.Atoi(parts[6])
		mileage, err4 := strconv.ParseFloat(parts[7], 64)
		doors, err5 := strconv.Atoi(parts[8])
		if err := firstErr(err1, err2, err3, err4, err5); err != nil {
			return nil, domain.ValidationError{Field: "vehicle line", Msg: err.Error()}
		}
		cat, err := domain.LicenceCategoryFromInt(catRaw)
		if err != nil {
			return nil, err
		}
		return domain.NewElectricCar(parts[3], parts[1], parts[2], mileage, cost, cat, battery, doors)

	case domain.KindTruck:
		if len(parts) < 11 {
			return nil, domain.ValidationError{Field: "vehicle line", Msg: "too few fields"}
		}
		cost, err1 := strconv.ParseFloat(parts[4], 64)
		engine, err2 := strconv.Atoi(parts[5])
		cons, err3 := strconv.ParseFloat(parts[6], 64)
		fuelRaw, err4 := strconv.Atoi(parts[7])
		catRaw, err5 := strconv.Atoi(parts[8])
		mileage, err6 := strconv.ParseFloat(parts[9], 64)
		capacity, err7 := strconv.Atoi(parts[10])
		if err := firstErr(err1, err2, err3, err4, err5, err6, err7); err != nil {
			return nil, domain.ValidationError{Field: "vehicle line", Msg: err.Error()}
		}
		fuel, err := domain.FuelTypeFromInt(fuelRaw)
		if err != nil {
			return nil, err
		}
		cat, err := domain.LicenceCategoryFromInt(catRaw)
		if err != nil {
			return nil, err
		}
		return domain.NewTruck(parts[3], parts[1], parts[2], mileage, cost, cat, engine, cons, fuel, capacity)

	case domain.KindMotorcycle:
		if len(parts) < 10 {
			return nil, domain.ValidationError{Field: "vehicle line", Msg: "too few fields"}
		}
		cost, err1 := strconv.ParseFloat(parts[4], 64)
		engine, err2 := strconv.Atoi(parts[5])
		cons, err3 := strconv.ParseFloat(parts[6], 64)
		fuelRaw, err4 := strconv.Atoi(parts[7])
		catRaw, err5 := strconv.Atoi(parts[8])
		mileage, err6 := strconv.ParseFloat(parts[9], 64)
		if err := firstErr(err1, err2, err3, err4, err5, err6); err != nil {
			return nil, domain.ValidationError{Field: "vehicle line", Msg: err.Error()}
		}
		fuel, err := domain.FuelTypeFromInt(fuelRaw)
		if err != nil {
			return nil, err
		}
		cat, err := domain.LicenceCategoryFromInt(catRaw)
		if err != nil {
			return nil, err
		}
		return domain.NewMotorcycle(parts[3], parts[1], parts[2], mileage, cost, cat, engine, cons, fuel)

	default:
		return nil, domain.ValidationError{Field: "vehicle line", Msg: fmt.Sprintf("unknown type %q", parts[0])}
	}
}

func encodeCustomer(c domain.Customer) string {
	switch t := c.(type) {
	case *domain.PrivateCustomer:
		// PrivateCustomer;Name;Address;IDCard
		return fmt.Sprintf("%s;%s;%s;%s", domain.KindPrivateCustomer, t.Name(), t.Address(), t.IDCardNumber())
	case *domain.BusinessCustomer:
		// BusinessCustomer;Name;Address;NIP
		return fmt.Sprintf("%s;%s;%s;%s", domain.KindBusinessCustomer, t.Name(), t.Address(), t.NIP())
	default:
		return ""
	}
}

func decodeCustomer(line string) (domain.Customer, error) {
	parts := strings.Split(line, ";")
	if len(parts) < 4 {
		return nil, domain.ValidationError{Field: "customer line", Msg: "too few fields"}
	}
	switch domain.CustomerKind(parts[0]) {
	case domain.KindPrivateCustomer:
		return domain.NewPrivateCustomer(parts[1], parts[2], parts[3])
	case domain.KindBusinessCustomer:
		return domain.NewBusinessCustomer(parts[1], parts[2], parts[3])
	default:
		return nil, domain.ValidationError{Field: "customer line", Msg: fmt.Sprintf("unknown type %q", parts[0])}
	}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
