package domain

import (
	"strconv"

	"github.com/google/uuid"
)

// Rental links one vehicle and one customer over a date range. It holds
// the registration and customer ID rather than live references; the
// manager resolves them on demand, so removal ordering can never leave a
// dangling rental. Dates are YYYY-MM-DD strings; the fixed-width
// zero-padded form makes lexicographic order equal calendar order.
type Rental struct {
	id         string
	vehicleReg string
	customerID string
	startDate  string
	endDate    string
}

// NewRental validates both dates and requires end strictly after start.
func NewRental(vehicleReg, customerID, startDate, endDate string) (*Rental, error) {
	if vehicleReg == "" {
		return nil, ValidationError{Field: "vehicle registration", Msg: "cannot be empty"}
	}
	if customerID == "" {
		return nil, ValidationError{Field: "customer id", Msg: "cannot be empty"}
	}
	if !ValidDate(startDate) {
		return nil, ValidationError{Field: "start date", Msg: "must be in format YYYY-MM-DD"}
	}
	if !ValidDate(endDate) {
		return nil, ValidationError{Field: "end date", Msg: "must be in format YYYY-MM-DD"}
	}
	if endDate <= startDate {
		return nil, ValidationError{Field: "end date", Msg: "must be later than start date"}
	}
	return &Rental{
		id:         uuid.NewString(),
		vehicleReg: vehicleReg,
		customerID: customerID,
		startDate:  startDate,
		endDate:    endDate,
	}, nil
}

func (r *Rental) ID() string         { return r.id }
func (r *Rental) VehicleReg() string { return r.vehicleReg }
func (r *Rental) CustomerID() string { return r.customerID }
func (r *Rental) StartDate() string  { return r.startDate }
func (r *Rental) EndDate() string    { return r.endDate }

// SetEndDate extends the rental. The manager flow never calls it; the
// return operation archives and discards the rental instead.
func (r *Rental) SetEndDate(endDate string) error {
	if !ValidDate(endDate) {
		return ValidationError{Field: "end date", Msg: "must be in format YYYY-MM-DD"}
	}
	if endDate <= r.startDate {
		return ValidationError{Field: "end date", Msg: "must be later than start date"}
	}
	r.endDate = endDate
	return nil
}

// DurationDays is the day difference between end and start, never less
// than 1 even for adjacent dates.
func (r *Rental) DurationDays() int {
	if r.startDate == "" || r.endDate == "" {
		return 0
	}
	days := daysSinceEpoch(r.endDate) - daysSinceEpoch(r.startDate)
	if days < 1 {
		return 1
	}
	return days
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func daysInMonth(month, year int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	default:
		return 0
	}
}

// ValidDate reports whether s has the exact shape YYYY-MM-DD and names a
// calendar-valid Gregorian date.
func ValidDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	if s[4] != '-' || s[7] != '-' {
		return false
	}
	for i := 0; i < 10; i++ {
		if i == 4 || i == 7 {
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	year, _ := strconv.Atoi(s[0:4])
	month, _ := strconv.Atoi(s[5:7])
	day, _ := strconv.Atoi(s[8:10])
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= daysInMonth(month, year)
}

// daysSinceEpoch counts days from an arbitrary fixed origin; only
// differences between two counts are meaningful.
func daysSinceEpoch(date string) int {
	year, _ := strconv.Atoi(date[0:4])
	month, _ := strconv.Atoi(date[5:7])
	day, _ := strconv.Atoi(date[8:10])

	total := day
	for y := 1; y < year; y++ {
		if isLeapYear(y) {
			total += 366
		} else {
			total += 365
		}
	}
	for m := 1; m < month; m++ {
		total += daysInMonth(m, year)
	}
	return total
}
