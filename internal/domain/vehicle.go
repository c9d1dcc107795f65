package domain

import (
	"fmt"
	"strconv"
)

// Kind identifies the concrete vehicle variant. The values double as the
// type tags of the persisted file format.
type Kind string

const (
	KindCombustionCar Kind = "CombustionCar"
	KindElectricCar   Kind = "ElectricCar"
	KindTruck         Kind = "Truck"
	KindMotorcycle    Kind = "Motorcycle"
)

// LicenceCategory is the driving-licence class required to operate a
// vehicle. The integer values are part of the persisted file format.
type LicenceCategory int

const (
	LicenceA LicenceCategory = iota
	LicenceB
	LicenceC
)

func (c LicenceCategory) String() string {
	switch c {
	case LicenceA:
		return "A"
	case LicenceB:
		return "B"
	case LicenceC:
		return "C"
	default:
		return "Unknown"
	}
}

// LicenceCategoryFromInt decodes the persisted integer form.
func LicenceCategoryFromInt(v int) (LicenceCategory, error) {
	if v < int(LicenceA) || v > int(LicenceC) {
		return 0, ValidationError{Field: "licence category", Msg: fmt.Sprintf("unknown value %d", v)}
	}
	return LicenceCategory(v), nil
}

// FuelType is the fuel used by a combustion vehicle. The integer values
// are part of the persisted file format.
type FuelType int

const (
	FuelGasoline FuelType = iota
	FuelDiesel
)

func (f FuelType) String() string {
	switch f {
	case FuelGasoline:
		return "Gasoline"
	case FuelDiesel:
		return "Diesel"
	default:
		return "Unknown"
	}
}

// FuelTypeFromInt decodes the persisted integer form.
func FuelTypeFromInt(v int) (FuelType, error) {
	if v < int(FuelGasoline) || v > int(FuelDiesel) {
		return 0, ValidationError{Field: "fuel type", Msg: fmt.Sprintf("unknown value %d", v)}
	}
	return FuelType(v), nil
}

const maxRegistrationLen = 9

// Vehicle is a rentable asset. The concrete variants are CombustionCar,
// ElectricCar, Truck and Motorcycle; each carries its own rent-cost
// formula and descriptive layout.
type Vehicle interface {
	Registration() string
	Brand() string
	Model() string
	Mileage() float64
	BaseCost() float64
	Licence() LicenceCategory
	SetMileage(newMileage float64) error
	SetBaseCost(newCost float64) error

	// ComputeRentCost returns the total cost for the given number of
	// rental days. Whether a non-positive day count fails or yields 0
	// differs per variant and is preserved deliberately.
	ComputeRentCost(days int) (float64, error)
	Describe() string
	Kind() Kind
}

// FormatNumber renders a numeric field the way the display and file
// layers expect it: shortest decimal form that round-trips.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// vehicleBase holds the attributes common to every vehicle variant.
type vehicleBase struct {
	registration string
	brand        string
	model        string
	mileage      float64
	baseCost     float64
	licence      LicenceCategory
}

func newVehicleBase(registration, brand, model string, mileage, baseCost float64, licence LicenceCategory) (vehicleBase, error) {
	switch {
	case registration == "":
		return vehicleBase{}, ValidationError{Field: "registration", Msg: "cannot be empty"}
	case len(registration) > maxRegistrationLen:
		return vehicleBase{}, ValidationError{Field: "registration", Msg: fmt.Sprintf("cannot exceed %d characters", maxRegistrationLen)}
	case brand == "":
		return vehicleBase{}, ValidationError{Field: "brand", Msg: "cannot be empty"}
	case model == "":
		return vehicleBase{}, ValidationError{Field: "model", Msg: "cannot be empty"}
	case mileage < 0:
		return vehicleBase{}, ValidationError{Field: "mileage", Msg: "cannot be negative"}
	case baseCost <= 0:
		return vehicleBase{}, ValidationError{Field: "base cost", Msg: "must be positive"}
	}
	if licence < LicenceA || licence > LicenceC {
		return vehicleBase{}, ValidationError{Field: "licence category", Msg: "unknown category"}
	}
	return vehicleBase{
		registration: registration,
		brand:        brand,
		model:        model,
		mileage:      mileage,
		baseCost:     baseCost,
		licence:      licence,
	}, nil
}

func (b *vehicleBase) Registration() string     { return b.registration }
func (b *vehicleBase) Brand() string            { return b.brand }
func (b *vehicleBase) Model() string            { return b.model }
func (b *vehicleBase) Mileage() float64         { return b.mileage }
func (b *vehicleBase) BaseCost() float64        { return b.baseCost }
func (b *vehicleBase) Licence() LicenceCategory { return b.licence }

// SetMileage updates the odometer reading. Mileage is monotonically
// non-decreasing.
func (b *vehicleBase) SetMileage(newMileage float64) error {
	if newMileage < 0 {
		return ValidationError{Field: "mileage", Msg: "cannot be negative"}
	}
	if newMileage < b.mileage {
		return ValidationError{Field: "mileage", Msg: "cannot be lower than current mileage"}
	}
	b.mileage = newMileage
	return nil
}

func (b *vehicleBase) SetBaseCost(newCost float64) error {
	if newCost <= 0 {
		return ValidationError{Field: "base cost", Msg: "must be positive"}
	}
	b.baseCost = newCost
	return nil
}

// combustionSpec holds the attributes shared by every variant with an
// internal combustion engine.
type combustionSpec struct {
	engineSize      int
	fuelConsumption float64
	fuelType        FuelType
}

func newCombustionSpec(engineSize int, fuelConsumption float64, fuelType FuelType) (combustionSpec, error) {
	if engineSize <= 0 {
		return combustionSpec{}, ValidationError{Field: "engine size", Msg: "must be positive"}
	}
	if fuelConsumption <= 0 {
		return combustionSpec{}, ValidationError{Field: "fuel consumption", Msg: "must be positive"}
	}
	if fuelType != FuelGasoline && fuelType != FuelDiesel {
		return combustionSpec{}, ValidationError{Field: "fuel type", Msg: "unknown fuel type"}
	}
	return combustionSpec{engineSize: engineSize, fuelConsumption: fuelConsumption, fuelType: fuelType}, nil
}

func (s *combustionSpec) EngineSize() int          { return s.engineSize }
func (s *combustionSpec) FuelConsumption() float64 { return s.fuelConsumption }
func (s *combustionSpec) FuelType() FuelType       { return s.fuelType }

func (s *combustionSpec) SetEngineSize(size int) error {
	if size <= 0 {
		return ValidationError{Field: "engine size", Msg: "must be positive"}
	}
	s.engineSize = size
	return nil
}

func (s *combustionSpec) SetFuelConsumption(consumption float64) error {
	if consumption <= 0 {
		return ValidationError{Field: "fuel consumption", Msg: "must be positive"}
	}
	s.fuelConsumption = consumption
	return nil
}

func (s *combustionSpec) SetFuelType(fuelType FuelType) error {
	if fuelType != FuelGasoline && fuelType != FuelDiesel {
		return ValidationError{Field: "fuel type", Msg: "unknown fuel type"}
	}
	s.fuelType = fuelType
	return nil
}

// CombustionCar is a standard combustion-engine passenger car.
type CombustionCar struct {
	vehicleBase
	combustionSpec
	doors int
}

func NewCombustionCar(registration, brand, model string, mileage, baseCost float64, licence LicenceCategory,
	engineSize int, fuelConsumption float64, fuelType FuelType, doors int) (*CombustionCar, error) {
	base, err := newVehicleBase(registration, brand, model, mileage, baseCost, licence)
	if err != nil {
		return nil, err
	}
	spec, err := newCombustionSpec(engineSize, fuelConsumption, fuelType)
	if err != nil {
		return nil, err
	}
	if doors <= 0 {
		return nil, ValidationError{Field: "doors", Msg: "must be positive"}
	}
	return &CombustionCar{vehicleBase: base, combustionSpec: spec, doors: doors}, nil
}

func (c *CombustionCar) Doors() int { return c.doors }

func (c *CombustionCar) SetDoors(doors int) error {
	if doors <= 0 {
		return ValidationError{Field: "doors", Msg: "must be positive"}
	}
	c.doors = doors
	return nil
}

// ComputeRentCost fails on a non-positive day count, unlike the electric
// car and truck variants which return 0.
func (c *CombustionCar) ComputeRentCost(days int) (float64, error) {
	if days <= 0 {
		return 0, ValidationError{Field: "rental duration", Msg: "must be positive"}
	}
	return c.baseCost * float64(days), nil
}

func (c *CombustionCar) Describe() string {
	return fmt.Sprintf("Car: %s %s [%s]\n  Mileage: %s km\n  Base Cost: %s zl/day\n  Licence: %s\n  Engine: %d cm3\n  Fuel: %s (%s L/100km)\n  Doors: %d",
		c.brand, c.model, c.registration,
		FormatNumber(c.mileage), FormatNumber(c.baseCost), c.licence,
		c.engineSize, c.fuelType, FormatNumber(c.fuelConsumption), c.doors)
}

func (c *CombustionCar) Kind() Kind { return KindCombustionCar }

// ElectricCar is a battery-electric passenger car.
type ElectricCar struct {
	vehicleBase
	batteryCapacity float64
	doors           int
}

func NewElectricCar(registration, brand, model string, mileage, baseCost float64, licence LicenceCategory,
	batteryCapacity float64, doors int) (*ElectricCar, error) {
	base, err := newVehicleBase(registration, brand, model, mileage, baseCost, licence)
	if err != nil {
		return nil, err
	}
	if batteryCapacity <= 0 {
		return nil, ValidationError{Field: "battery capacity", Msg: "must be positive"}
	}
	if doors <= 0 {
		return nil, ValidationError{Field: "doors", Msg: "must be positive"}
	}
	return &ElectricCar{vehicleBase: base, batteryCapacity: batteryCapacity, doors: doors}, nil
}

func (c *ElectricCar) BatteryCapacity() float64 { return c.batteryCapacity }
func (c *ElectricCar) Doors() int               { return c.doors }

func (c *ElectricCar) SetBatteryCapacity(capacity float64) error {
	if capacity <= 0 {
		return ValidationError{Field: "battery capacity", Msg: "must be positive"}
	}
	c.batteryCapacity = capacity
	return nil
}

func (c *ElectricCar) SetDoors(doors int) error {
	if doors <= 0 {
		return ValidationError{Field: "doors", Msg: "must be positive"}
	}
	c.doors = doors
	return nil
}

// ComputeRentCost yields 0 for a non-positive day count instead of
// failing.
func (c *ElectricCar) ComputeRentCost(days int) (float64, error) {
	if days <= 0 {
		return 0, nil
	}
	return c.baseCost * float64(days), nil
}

func (c *ElectricCar) Describe() string {
	return fmt.Sprintf("Electric Car: %s %s [%s]\n  Battery: %s kWh\n  Mileage: %s km\n  Base Cost: %s zl/day\n  Licence: %s\n  Doors: %d",
		c.brand, c.model, c.registration,
		FormatNumber(c.batteryCapacity), FormatNumber(c.mileage), FormatNumber(c.baseCost),
		c.licence, c.doors)
}

func (c *ElectricCar) Kind() Kind { return KindElectricCar }

// Truck is a transport truck with a cargo capacity surcharge in its rent
// formula.
type Truck struct {
	vehicleBase
	combustionSpec
	cargoCapacity int
}

func NewTruck(registration, brand, model string, mileage, baseCost float64, licence LicenceCategory,
	engineSize int, fuelConsumption float64, fuelType FuelType, cargoCapacity int) (*Truck, error) {
	base, err := newVehicleBase(registration, brand, model, mileage, baseCost, licence)
	if err != nil {
		return nil, err
	}
	spec, err := newCombustionSpec(engineSize, fuelConsumption, fuelType)
	if err != nil {
		return nil, err
	}
	if cargoCapacity <= 0 {
		return nil, ValidationError{Field: "cargo capacity", Msg: "must be positive"}
	}
	return &Truck{vehicleBase: base, combustionSpec: spec, cargoCapacity: cargoCapacity}, nil
}

func (t *Truck) CargoCapacity() int { return t.cargoCapacity }

func (t *Truck) SetCargoCapacity(capacity int) error {
	if capacity <= 0 {
		return ValidationError{Field: "cargo capacity", Msg: "must be positive"}
	}
	t.cargoCapacity = capacity
	return nil
}

// ComputeRentCost adds a per-day cargo surcharge of 0.1 zl per kg.
// A non-positive day count yields 0.
func (t *Truck) ComputeRentCost(days int) (float64, error) {
	if days <= 0 {
		return 0, nil
	}
	d := float64(days)
	return t.baseCost*d + float64(t.cargoCapacity)*0.1*d, nil
}

func (t *Truck) Describe() string {
	return fmt.Sprintf("Truck: %s %s [%s]\n  Mileage: %s km\n  Base Cost: %s zl/day\n  Licence: %s\n  Engine: %d cm3\n  Fuel: %s (%s L/100km)\n  Cargo Capacity: %d kg",
		t.brand, t.model, t.registration,
		FormatNumber(t.mileage), FormatNumber(t.baseCost), t.licence,
		t.engineSize, t.fuelType, FormatNumber(t.fuelConsumption), t.cargoCapacity)
}

func (t *Truck) Kind() Kind { return KindTruck }

// Motorcycle has no attributes beyond the combustion set.
type Motorcycle struct {
	vehicleBase
	combustionSpec
}

func NewMotorcycle(registration, brand, model string, mileage, baseCost float64, licence LicenceCategory,
	engineSize int, fuelConsumption float64, fuelType FuelType) (*Motorcycle, error) {
	base, err := newVehicleBase(registration, brand, model, mileage, baseCost, licence)
	if err != nil {
		return nil, err
	}
	spec, err := newCombustionSpec(engineSize, fuelConsumption, fuelType)
	if err != nil {
		return nil, err
	}
	return &Motorcycle{vehicleBase: base, combustionSpec: spec}, nil
}

// ComputeRentCost fails on a non-positive day count.
func (m *Motorcycle) ComputeRentCost(days int) (float64, error) {
	if days <= 0 {
		return 0, ValidationError{Field: "rental duration", Msg: "must be positive"}
	}
	return m.baseCost * float64(days), nil
}

func (m *Motorcycle) Describe() string {
	return fmt.Sprintf("Motorcycle: %s %s [%s]\n  Mileage: %s km\n  Base Cost: %s zl/day\n  Licence: %s\n  Engine: %d cm3\n  Fuel: %s (%s L/100km)",
		m.brand, m.model, m.registration,
		FormatNumber(m.mileage), FormatNumber(m.baseCost), m.licence,
		m.engineSize, m.fuelType, FormatNumber(m.fuelConsumption))
}

func (m *Motorcycle) Kind() Kind { return KindMotorcycle }
