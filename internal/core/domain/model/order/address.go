package order

import (
	"shipment/internal/pkg/errs"
)

// Address is the structured pickup or delivery location of a shipment.
// It replaces the free-form JSON blobs of earlier revisions with a fixed
// shape validated once at construction.
type Address struct {
	line1        string
	city         string
	contactPhone string
}

// NewAddress creates a validated Address. Line1 and city are required;
// the contact phone is optional.
func NewAddress(line1, city, contactPhone string) (Address, error) {
	if line1 == "" {
		return Address{}, errs.NewValueIsRequiredError("address line1")
	}
	if city == "" {
		return Address{}, errs.NewValueIsRequiredError("address city")
	}
	return Address{line1: line1, city: city, contactPhone: contactPhone}, nil
}

// Line1 returns the street line of the address.
func (a Address) Line1() string { return a.line1 }

// City returns the city of the address.
func (a Address) City() string { return a.city }

// ContactPhone returns the optional contact phone for this address.
func (a Address) ContactPhone() string { return a.contactPhone }

// Validate ensures the address was built through NewAddress.
func (a Address) Validate() error {
	if a.line1 == "" || a.city == "" {
		return errs.NewValueIsRequiredError("address")
	}
	return nil
}

// PackageDetails describes the shipment contents.
type PackageDetails struct {
	description string
	weightKG    float64
}

// NewPackageDetails creates validated package details.
// Description is required; weight must not be negative.
func NewPackageDetails(description string, weightKG float64) (PackageDetails, error) {
	if description == "" {
		return PackageDetails{}, errs.NewValueIsRequiredError("package description")
	}
	if weightKG < 0 {
		return PackageDetails{}, errs.NewValueIsInvalidError("package weight")
	}
	return PackageDetails{description: description, weightKG: weightKG}, nil
}

// Description returns the human description of the package.
func (p PackageDetails) Description() string { return p.description }

// WeightKG returns the declared weight in kilograms.
func (p PackageDetails) WeightKG() float64 { return p.weightKG }

// Validate ensures the details were built through NewPackageDetails.
func (p PackageDetails) Validate() error {
	if p.description == "" {
		return errs.NewValueIsRequiredError("package details")
	}
	return nil
}
