package value

import "unicode/utf16"

// ToUTF16 converts a host UTF-8 string into the VM's native 16-bit
// code-unit representation. Empty strings round-trip as an empty slice,
// not nil, so NewString can distinguish "empty string" from "no
// string" (spec.md §4.2).
func ToUTF16(s string) []uint16 {
	units := utf16.Encode([]rune(s))
	if units == nil {
		units = []uint16{}
	}
	return units
}

// FromUTF16 converts the VM's 16-bit code-unit representation back into
// a host UTF-8 string.
func FromUTF16(units []uint16) string {
	return string(utf16.Decode(units))
}
