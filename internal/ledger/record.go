// Package ledger implements the Audilog inventory ledger: a flat append-mostly
// log of vendor listings and completed purchases, persisted as JSON under a
// single durable key.
package ledger

// Kind tags the two record variants.
type Kind string

const (
	KindVendor   Kind = "vendor"
	KindCustomer Kind = "customer"
)

// VendorListing is the mutable side of the ledger: one (vendor, item) pair
// carrying its current remaining stock. Count is the only field ever changed
// after the record is appended.
type VendorListing struct {
	Phone        string `json:"phone_number"`
	Item         string `json:"item_name"`
	Count        int    `json:"item_count"`
	Manufactured string `json:"manufacture_date"`
	Expires      string `json:"expiry_date"`
	Description  string `json:"description,omitempty"`
	Image        string `json:"image_data,omitempty"`
}

// PurchaseEntry is an immutable snapshot of one completed purchase. The dates
// are copied from the vendor listing at purchase time, so later vendor edits
// never affect it.
type PurchaseEntry struct {
	CustomerID   string `json:"customer_id"`
	Item         string `json:"item_name"`
	Quantity     int    `json:"quantity"`
	Manufactured string `json:"manufacture_date"`
	Expires      string `json:"expiry_date"`
}

// Record is one ledger entry. Exactly one of Vendor or Customer is set,
// matching Kind. IDs are unique across the whole ledger regardless of kind.
type Record struct {
	ID       string         `json:"id"`
	Kind     Kind           `json:"kind"`
	Vendor   *VendorListing `json:"vendor,omitempty"`
	Customer *PurchaseEntry `json:"customer,omitempty"`
}
