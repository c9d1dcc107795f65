package domain

import "fmt"

// CustomerKind identifies the concrete customer variant. The values
// double as the type tags of the persisted file format.
type CustomerKind string

const (
	KindPrivateCustomer  CustomerKind = "PrivateCustomer"
	KindBusinessCustomer CustomerKind = "BusinessCustomer"
)

// Customer is a renter. The ID is the unique key across all customers:
// the ID-card number for private customers, the NIP for business ones.
// Customers are immutable after construction.
type Customer interface {
	ID() string
	Name() string
	Address() string
	Describe() string
	Kind() CustomerKind
}

type customerBase struct {
	id      string
	name    string
	address string
}

func newCustomerBase(id, name, address string) (customerBase, error) {
	switch {
	case id == "":
		return customerBase{}, ValidationError{Field: "id", Msg: "cannot be empty"}
	case name == "":
		return customerBase{}, ValidationError{Field: "name", Msg: "cannot be empty"}
	case address == "":
		return customerBase{}, ValidationError{Field: "address", Msg: "cannot be empty"}
	}
	return customerBase{id: id, name: name, address: address}, nil
}

func (b *customerBase) ID() string      { return b.id }
func (b *customerBase) Name() string    { return b.name }
func (b *customerBase) Address() string { return b.address }

// PrivateCustomer is an individual identified by an ID-card number.
type PrivateCustomer struct {
	customerBase
	idCardNumber string
}

// NewPrivateCustomer uses the ID-card number as the customer ID.
func NewPrivateCustomer(name, address, idCardNumber string) (*PrivateCustomer, error) {
	base, err := newCustomerBase(idCardNumber, name, address)
	if err != nil {
		return nil, err
	}
	return &PrivateCustomer{customerBase: base, idCardNumber: idCardNumber}, nil
}

func (c *PrivateCustomer) IDCardNumber() string { return c.idCardNumber }

func (c *PrivateCustomer) Describe() string {
	return fmt.Sprintf("Private Customer [%s]: %s\n  Address: %s\n  ID Card: %s",
		c.id, c.name, c.address, c.idCardNumber)
}

func (c *PrivateCustomer) Kind() CustomerKind { return KindPrivateCustomer }

// BusinessCustomer is a company identified by its NIP (tax ID).
type BusinessCustomer struct {
	customerBase
	nip string
}

// NewBusinessCustomer uses the NIP as the customer ID. The 10-digit NIP
// shape is enforced by the input layer, not here.
func NewBusinessCustomer(name, address, nip string) (*BusinessCustomer, error) {
	base, err := newCustomerBase(nip, name, address)
	if err != nil {
		return nil, err
	}
	return &BusinessCustomer{customerBase: base, nip: nip}, nil
}

func (c *BusinessCustomer) NIP() string { return c.nip }

func (c *BusinessCustomer) Describe() string {
	return fmt.Sprintf("Business Customer [%s]: %s\n  Address: %s\n  NIP: %s",
		c.id, c.name, c.address, c.nip)
}

func (c *BusinessCustomer) Kind() CustomerKind { return KindBusinessCustomer }

// ValidNIP reports whether s is exactly 10 ASCII digits.
func ValidNIP(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
