// Package ui implements the interactive text menu. It owns all
// prompting and retry-on-bad-input loops and drives the manager through
// its public operations; every operation error is reported and the loop
// continues.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fleetrent/internal/config"
	"fleetrent/internal/domain"
	"fleetrent/internal/fleet"
	"fleetrent/internal/logger"
	"fleetrent/internal/report"
	"fleetrent/internal/repository"
)

const divider = "-----------------"

// Shell is the interactive menu loop. Reader and writer are injected so
// sessions can be scripted in tests.
type Shell struct {
	manager *fleet.Manager
	store   repository.SnapshotStore
	cfg     *config.Config
	in      *bufio.Scanner
	out     io.Writer
	log     *slog.Logger
}

func New(manager *fleet.Manager, store repository.SnapshotStore, cfg *config.Config, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		manager: manager,
		store:   store,
		cfg:     cfg,
		in:      bufio.NewScanner(in),
		out:     out,
		log:     logger.WithComponent("ui"),
	}
}

// Run executes the menu loop until the user exits or input ends.
func (s *Shell) Run() error {
	for {
		s.printMenu()
		choice, err := s.readInt("", 0)
		if err != nil {
			return nil // input exhausted
		}

		switch choice {
		case 1:
			err = s.addVehicle()
		case 2:
			err = s.removeVehicle()
		case 3:
			err = s.showVehicles()
		case 4:
			err = s.addCustomer()
		case 5:
			err = s.removeCustomer()
		case 6:
			err = s.showCustomers()
		case 7:
			err = s.rentVehicle()
		case 8:
			err = s.returnVehicle()
		case 9:
			s.showRentals()
		case 10:
			s.showHistory()
		case 11:
			err = s.search()
		case 12:
			s.save()
		case 13:
			s.exportFleetReport()
		case 0:
			yes, err := s.readYesNo("Do you want to save data before exiting? (y/n): ")
			if err == nil && yes {
				s.save()
			}
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid option.")
		}
		if err != nil {
			return nil
		}
	}
}

func (s *Shell) printMenu() {
	fmt.Fprint(s.out, "\n=== VEHICLE RENTAL SYSTEM ===\n"+
		"1. Add Vehicle\n"+
		"2. Remove Vehicle\n"+
		"3. Show Vehicles\n"+
		"4. Add Customer\n"+
		"5. Remove Customer\n"+
		"6. Show Customers\n"+
		"7. Rent Vehicle\n"+
		"8. Return Vehicle\n"+
		"9. Show Active Rentals\n"+
		"10. Show Rental History\n"+
		"11. Search\n"+
		"12. Save Data\n"+
		"13. Export Fleet Report (PDF)\n"+
		"0. Exit\n"+
		"Select option: ")
}

// --- Menu handlers ---

func (s *Shell) addVehicle() error {
	kind, err := s.readInt("Select Type:    1.CombustionCar    2.ElectricCar    3.Truck    4.Motorcycle: ", 1)
	if err != nil {
		return err
	}
	if kind < 1 || kind > 4 {
		fmt.Fprintln(s.out, "Invalid vehicle type selected.")
		return nil
	}

	brand, err := s.readString("Brand: ")
	if err != nil {
		return err
	}
	model, err := s.readString("Model: ")
	if err != nil {
		return err
	}
	reg, err := s.readString("Reg Number: ")
	if err != nil {
		return err
	}
	price, err := s.readFloat("Base Price (zl/day): ", 0)
	if err != nil {
		return err
	}
	mileage, err := s.readFloat("Initial Mileage (km): ", 0)
	if err != nil {
		return err
	}

	var v domain.Vehicle
	var buildErr error
	switch kind {
	case 1:
		engine, err := s.readInt("Engine Displacement (cm^3): ", 0)
		if err != nil {
			return err
		}
		consumption, err := s.readFloat("Fuel Consumption (L/100km): ", 0)
		if err != nil {
			return err
		}
		fuel, err := s.readFuelType()
		if err != nil {
			return err
		}
		doors, err := s.readDoors()
		if err != nil {
			return err
		}
		v, buildErr = domain.NewCombustionCar(reg, brand, model, mileage, price, domain.LicenceB,
			engine, consumption, fuel, doors)
	case 2:
		battery, err := s.readFloat("Battery Capacity (kWh): ", 0)
		if err != nil {
			return err
		}
		doors, err := s.readDoors()
		if err != nil {
			return err
		}
		v, buildErr = domain.NewElectricCar(reg, brand, model, mileage, price, domain.LicenceB, battery, doors)
	case 3:
		engine, err := s.readInt("Engine Displacement (cm^3): ", 0)
		if err != nil {
			return err
		}
		cargo, err := s.readFloat("Cargo Capacity (kg): ", 0)
		if err != nil {
			return err
		}
		consumption, err := s.readFloat("Fuel Consumption (L/100km): ", 0)
		if err != nil {
			return err
		}
		fuel, err := s.readFuelType()
		if err != nil {
			return err
		}
		v, buildErr = domain.NewTruck(reg, brand, model, mileage, price, domain.LicenceC,
			engine, consumption, fuel, int(cargo))
	case 4:
		engine, err := s.readInt("Engine Displacement (cm^3): ", 0)
		if err != nil {
			return err
		}
		consumption, err := s.readFloat("Fuel Consumption (L/100km): ", 0)
		if err != nil {
			return err
		}
		v, buildErr = domain.NewMotorcycle(reg, brand, model, mileage, price, domain.LicenceA,
			engine, consumption, domain.FuelGasoline)
	}

	if buildErr == nil {
		buildErr = s.manager.AddVehicle(v)
	}
	if buildErr != nil {
		fmt.Fprintf(s.out, "Error: %v\n", buildErr)
		return nil
	}
	fmt.Fprintln(s.out, "Vehicle added successfully.")
	return nil
}

func (s *Shell) removeVehicle() error {
	reg, err := s.readString("Reg Number: ")
	if err != nil {
		return err
	}
	if err := s.manager.RemoveVehicle(reg); err != nil {
		fmt.Fprintf(s.out, "Operation failed: %v\n", err)
		return nil
	}
	fmt.Fprintln(s.out, "Vehicle removed successfully.")
	return nil
}

func (s *Shell) showVehicles() error {
	fmt.Fprint(s.out, "\nChoose display option:\n1. All Vehicles\n2. Cars\n3. Motorcycles\n4. Trucks\n")
	choice, err := s.readInt("", 0)
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		fmt.Fprintln(s.out)
		s.printVehicles(s.manager.Vehicles(), "No vehicles in the system.")
	case 2:
		fmt.Fprint(s.out, "\nChoose Car Type:\n1. All Cars\n2. Combustion Cars\n3. Electric Cars\n")
		carChoice, err := s.readInt("", 0)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out)
		switch carChoice {
		case 1:
			s.printVehicles(s.manager.VehiclesOfKind(domain.KindCombustionCar, domain.KindElectricCar), "No cars found.")
		case 2:
			s.printVehicles(s.manager.VehiclesOfKind(domain.KindCombustionCar), "No combustion cars found.")
		case 3:
			s.printVehicles(s.manager.VehiclesOfKind(domain.KindElectricCar), "No electric cars found.")
		default:
			fmt.Fprintln(s.out, "Invalid car type.")
		}
	case 3:
		fmt.Fprintln(s.out)
		s.printVehicles(s.manager.VehiclesOfKind(domain.KindMotorcycle), "No motorcycles found.")
	case 4:
		fmt.Fprintln(s.out)
		s.printVehicles(s.manager.VehiclesOfKind(domain.KindTruck), "No trucks found.")
	default:
		fmt.Fprintln(s.out, "Invalid option.")
	}
	return nil
}

func (s *Shell) addCustomer() error {
	kind, err := s.readInt("Select Type:   1.Private    2.Business: ", 0)
	if err != nil {
		return err
	}
	if kind < 1 || kind > 2 {
		fmt.Fprintln(s.out, "Invalid customer type selected.")
		return nil
	}

	namePrompt := "Name and Surname: "
	if kind == 2 {
		namePrompt = "Company Name: "
	}
	name, err := s.readString(namePrompt)
	if err != nil {
		return err
	}
	address, err := s.readString("Address (City, street, house number): ")
	if err != nil {
		return err
	}

	var c domain.Customer
	var buildErr error
	if kind == 1 {
		idCard, err := s.readString("ID Card Number: ")
		if err != nil {
			return err
		}
		c, buildErr = domain.NewPrivateCustomer(name, address, idCard)
	} else {
		nip, err := s.readNIP("NIP: ")
		if err != nil {
			return err
		}
		c, buildErr = domain.NewBusinessCustomer(name, address, nip)
	}

	if buildErr == nil {
		buildErr = s.manager.AddCustomer(c)
	}
	if buildErr != nil {
		fmt.Fprintf(s.out, "Error: %v\n", buildErr)
		return nil
	}
	fmt.Fprintln(s.out, "Customer added successfully.")
	return nil
}

func (s *Shell) removeCustomer() error {
	id, err := s.readString("ID: ")
	if err != nil {
		return err
	}
	if err := s.manager.RemoveCustomer(id); err != nil {
		fmt.Fprintf(s.out, "Operation failed: %v\n", err)
		return nil
	}
	fmt.Fprintln(s.out, "Customer removed successfully.")
	return nil
}

func (s *Shell) showCustomers() error {
	fmt.Fprint(s.out, "\nChoose display option:\n1. All Customers\n2. Private Customers\n3. Business Customers\n")
	choice, err := s.readInt("", 0)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out)
	switch choice {
	case 1:
		s.printCustomers(s.manager.Customers(), "No customers in the system.")
	case 2:
		s.printCustomers(s.manager.CustomersOfKind(domain.KindPrivateCustomer), "No private customers found.")
	case 3:
		s.printCustomers(s.manager.CustomersOfKind(domain.KindBusinessCustomer), "No business customers found.")
	default:
		fmt.Fprintln(s.out, "Invalid option.")
	}
	return nil
}

func (s *Shell) rentVehicle() error {
	reg, err := s.readString("Vehicle Reg: ")
	if err != nil {
		return err
	}
	id, err := s.readString("Customer ID: ")
	if err != nil {
		return err
	}
	start, err := s.readDate("Start (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	end, err := s.readDate("End (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	if _, err := s.manager.Rent(reg, id, start, end); err != nil {
		fmt.Fprintf(s.out, "Operation failed: %v\n", err)
		return nil
	}
	fmt.Fprintln(s.out, "Vehicle rented successfully.")
	return nil
}

func (s *Shell) returnVehicle() error {
	reg, err := s.readString("Vehicle Reg: ")
	if err != nil {
		return err
	}
	newMileage, err := s.readFloat("New Mileage (km): ", 0)
	if err != nil {
		return err
	}

	// Capture invoice data before the rental is archived.
	invoice, haveInvoice := s.invoiceData(reg)

	cost, retErr := s.manager.Return(reg, newMileage)
	if retErr != nil {
		fmt.Fprintf(s.out, "Operation failed: %v\n", retErr)
		return nil
	}
	fmt.Fprintf(s.out, "Vehicle returned. Total Cost: %s zl\n", domain.FormatNumber(cost))

	if haveInvoice {
		invoice.TotalCost = cost
		yes, err := s.readYesNo("Generate PDF invoice? (y/n): ")
		if err != nil {
			return err
		}
		if yes {
			s.writeInvoice(invoice)
		}
	}
	return nil
}

func (s *Shell) showRentals() {
	fmt.Fprintln(s.out)
	rentals := s.manager.ActiveRentals()
	if len(rentals) == 0 {
		fmt.Fprintln(s.out, "No active rentals.")
		return
	}
	for _, r := range rentals {
		fmt.Fprintln(s.out, s.manager.RentalInfo(r))
		fmt.Fprintln(s.out, "=================")
	}
}

func (s *Shell) showHistory() {
	history := s.manager.History()
	if len(history) == 0 {
		fmt.Fprintln(s.out, "No rental history.")
		return
	}
	fmt.Fprintln(s.out, "=== Rental History ===")
	for _, entry := range history {
		parts := strings.Split(entry, ";")
		if len(parts) < 5 {
			continue
		}
		fmt.Fprintf(s.out, "Vehicle: %s\nCustomer: %s\nPeriod: %s - %s\nCost: %s zl\n%s\n",
			parts[0], parts[1], parts[2], parts[3], parts[4], divider)
	}
}

func (s *Shell) search() error {
	fmt.Fprint(s.out, "\n=== SEARCH ===\n"+
		"1. Vehicle by Registration\n"+
		"2. Vehicles by Brand\n"+
		"3. Customer by ID\n"+
		"4. Vehicles by Max Price\n"+
		"5. Available Vehicles\n")
	choice, err := s.readInt("Select option: ", 0)
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		reg, err := s.readString("Enter Registration: ")
		if err != nil {
			return err
		}
		v, err := s.manager.Vehicle(reg)
		if err != nil {
			fmt.Fprintln(s.out, "Vehicle not found.")
			return nil
		}
		fmt.Fprintf(s.out, "\n%s\n", v.Describe())
	case 2:
		brand, err := s.readString("Enter Brand: ")
		if err != nil {
			return err
		}
		results := s.manager.FindByBrand(brand)
		if len(results) == 0 {
			fmt.Fprintf(s.out, "No vehicles found for brand: %s\n", brand)
			return nil
		}
		fmt.Fprintln(s.out)
		s.printVehicles(results, "")
	case 3:
		id, err := s.readString("Enter Customer ID (NIP/ID Card): ")
		if err != nil {
			return err
		}
		c, err := s.manager.Customer(id)
		if err != nil {
			fmt.Fprintln(s.out, "Customer not found.")
			return nil
		}
		fmt.Fprintf(s.out, "%s\n", c.Describe())
	case 4:
		maxPrice, err := s.readFloat("Enter Max Price: ", 0)
		if err != nil {
			return err
		}
		results := s.manager.FindByMaxPrice(maxPrice)
		if len(results) == 0 {
			fmt.Fprintln(s.out, "No vehicles found within this price range.")
			return nil
		}
		fmt.Fprintln(s.out)
		s.printVehicles(results, "")
	case 5:
		results := s.manager.FindAvailable()
		if len(results) == 0 {
			fmt.Fprintln(s.out, "No available vehicles at the moment.")
			return nil
		}
		fmt.Fprintln(s.out)
		s.printVehicles(results, "")
	default:
		fmt.Fprintln(s.out, "Invalid option.")
	}
	return nil
}

func (s *Shell) save() {
	if err := s.store.Save(s.cfg.Data.File, s.manager.Snapshot()); err != nil {
		fmt.Fprintf(s.out, "Operation failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Saved.")
}

func (s *Shell) exportFleetReport() {
	vehicles := s.manager.Vehicles()
	rented := make(map[string]bool)
	for _, r := range s.manager.ActiveRentals() {
		rented[r.VehicleReg()] = true
	}
	data, filename, err := report.BuildFleetReportPDF(vehicles, rented)
	if err != nil {
		fmt.Fprintf(s.out, "Operation failed: %v\n", err)
		return
	}
	path := filepath.Join(s.cfg.Report.OutputDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(s.out, "Operation failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Fleet report written to %s\n", path)
}

// --- Formatting helpers ---

func (s *Shell) printVehicles(vehicles []domain.Vehicle, emptyMsg string) {
	if len(vehicles) == 0 {
		if emptyMsg != "" {
			fmt.Fprintln(s.out, emptyMsg)
		}
		return
	}
	for _, v := range vehicles {
		fmt.Fprintf(s.out, "%s\n%s\n", v.Describe(), divider)
	}
}

func (s *Shell) printCustomers(customers []domain.Customer, emptyMsg string) {
	if len(customers) == 0 {
		fmt.Fprintln(s.out, emptyMsg)
		return
	}
	for _, c := range customers {
		fmt.Fprintf(s.out, "%s\n%s\n", c.Describe(), divider)
	}
}

func (s *Shell) invoiceData(reg string) (report.InvoiceData, bool) {
	for _, r := range s.manager.ActiveRentals() {
		if r.VehicleReg() != reg {
			continue
		}
		v, err := s.manager.Vehicle(reg)
		if err != nil {
			return report.InvoiceData{}, false
		}
		name := r.CustomerID()
		if c, err := s.manager.Customer(r.CustomerID()); err == nil {
			name = c.Name()
		}
		return report.InvoiceData{
			RentalID:     r.ID(),
			VehicleLabel: fmt.Sprintf("%s %s (%s)", v.Brand(), v.Model(), v.Registration()),
			CustomerName: name,
			CustomerID:   r.CustomerID(),
			StartDate:    r.StartDate(),
			EndDate:      r.EndDate(),
			DurationDays: r.DurationDays(),
		}, true
	}
	return report.InvoiceData{}, false
}

func (s *Shell) writeInvoice(d report.InvoiceData) {
	data, filename, err := report.BuildInvoicePDF(d)
	if err != nil {
		fmt.Fprintf(s.out, "Operation failed: %v\n", err)
		return
	}
	path := filepath.Join(s.cfg.Report.OutputDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(s.out, "Operation failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Invoice written to %s\n", path)
}

// --- Input helpers ---

// readLine returns io.EOF once input is exhausted; callers unwind the
// menu loop on it.
func (s *Shell) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

func (s *Shell) readString(prompt string) (string, error) {
	for {
		fmt.Fprint(s.out, prompt)
		line, err := s.readLine()
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		fmt.Fprintln(s.out, "Input cannot be empty. Please try again.")
	}
}

func (s *Shell) readInt(prompt string, min int) (int, error) {
	for {
		fmt.Fprint(s.out, prompt)
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		value, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			fmt.Fprintln(s.out, "Invalid input. Please enter a valid integer number.")
			continue
		}
		if value < min {
			fmt.Fprintf(s.out, "Invalid input. Value must be at least %d.\n", min)
			continue
		}
		return value, nil
	}
}

func (s *Shell) readFloat(prompt string, min float64) (float64, error) {
	for {
		fmt.Fprint(s.out, prompt)
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		value, convErr := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if convErr != nil {
			fmt.Fprintln(s.out, "Invalid input. Please enter a valid decimal number.")
			continue
		}
		if value < min {
			fmt.Fprintf(s.out, "Invalid input. Value must be at least %s.\n", domain.FormatNumber(min))
			continue
		}
		return value, nil
	}
}

func (s *Shell) readYesNo(prompt string) (bool, error) {
	for {
		fmt.Fprint(s.out, prompt)
		line, err := s.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		fmt.Fprintln(s.out, "Invalid input. Please enter 'y' or 'n'.")
	}
}

func (s *Shell) readDate(prompt string) (string, error) {
	for {
		fmt.Fprint(s.out, prompt)
		line, err := s.readLine()
		if err != nil {
			return "", err
		}
		if domain.ValidDate(line) {
			return line, nil
		}
		fmt.Fprintln(s.out, "Invalid date format or value. Please use YYYY-MM-DD.")
	}
}

func (s *Shell) readNIP(prompt string) (string, error) {
	for {
		fmt.Fprint(s.out, prompt)
		line, err := s.readLine()
		if err != nil {
			return "", err
		}
		if domain.ValidNIP(line) {
			return line, nil
		}
		fmt.Fprintln(s.out, "Invalid NIP. It must consist of exactly 10 digits.")
	}
}

func (s *Shell) readFuelType() (domain.FuelType, error) {
	for {
		fmt.Fprint(s.out, "Fuel Type (d - Diesel, p - Petrol): ")
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "d":
			return domain.FuelDiesel, nil
		case "p":
			return domain.FuelGasoline, nil
		}
		fmt.Fprintln(s.out, "Invalid fuel type.")
	}
}

func (s *Shell) readDoors() (int, error) {
	for {
		doors, err := s.readInt("Number of Doors (2-5): ", 2)
		if err != nil {
			return 0, err
		}
		if doors >= 2 && doors <= 5 {
			return doors, nil
		}
		fmt.Fprintln(s.out, "Doors must be between 2 and 5.")
	}
}
