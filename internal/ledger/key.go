package ledger

import "strings"

const keySeparator = "-"

// ProductKey identifies one (vendor, item) pair. It stays structured inside
// the service; the string form exists only at the HTTP boundary.
type ProductKey struct {
	VendorID string
	Item     string
}

func (k ProductKey) String() string {
	return k.VendorID + keySeparator + k.Item
}

// ParseProductKey splits at the first separator. Allocator ids are a letter
// followed by digits and never contain the separator, so item names that do
// contain it still round-trip unambiguously.
func ParseProductKey(s string) (ProductKey, error) {
	vendorID, item, ok := strings.Cut(s, keySeparator)
	if !ok || vendorID == "" || item == "" {
		return ProductKey{}, ErrBadProductKey
	}
	return ProductKey{VendorID: vendorID, Item: item}, nil
}
