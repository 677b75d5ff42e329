package enumgen

import (
	"cmp"
	"slices"
)

// Ordering holds the two lookup-table views of an enum's values.
type Ordering struct {
	// ByName has every value, ascending by name (byte-wise).
	ByName []EnumValue
	// ByNumber has one value per distinct number, ascending. For duplicated
	// numbers the earliest declared value is kept.
	ByNumber []EnumValue
}

// Canonicalize computes both orderings for d.
func Canonicalize(d *EnumDescriptor) Ordering {
	return Ordering{
		ByName:   ByName(d.Values),
		ByNumber: ByValueDeduped(d.Values),
	}
}

// ByName returns a copy of values sorted by name. Equal names keep declaration order.
func ByName(values []EnumValue) []EnumValue {
	sorted := slices.Clone(values)
	slices.SortStableFunc(sorted, func(a, b EnumValue) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return sorted
}

// ByValueDeduped returns a copy of values sorted by number with later
// duplicates of a number removed.
func ByValueDeduped(values []EnumValue) []EnumValue {
	sorted := slices.Clone(values)
	slices.SortStableFunc(sorted, func(a, b EnumValue) int {
		return cmp.Compare(a.Number, b.Number)
	})
	return slices.CompactFunc(sorted, func(a, b EnumValue) bool {
		return a.Number == b.Number
	})
}
