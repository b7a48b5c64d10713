package format

// Align4 returns n aligned up to the next 4-byte boundary. Node names and
// property payloads inside the struct block are padded to this alignment.
//
// Example:
//
//	Align4(0) = 0
//	Align4(1) = 4
//	Align4(4) = 4
//	Align4(5) = 8
func Align4(n int) int {
	return (n + StructAlignment - 1) &^ (StructAlignment - 1)
}

// Aligned4 reports whether n sits on a 4-byte boundary.
func Aligned4(n int) bool {
	return n%StructAlignment == 0
}
