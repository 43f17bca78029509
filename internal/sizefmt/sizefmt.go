// Package sizefmt formats byte counts the way the catalog's original
// Python tooling did, down to matching unit thresholds and decimal places.
package sizefmt

import "fmt"

var units = []struct {
	name    string
	decimal int
}{
	{"bytes", 0},
	{"kB", 0},
	{"MB", 1},
	{"GB", 2},
	{"TB", 2},
	{"PB", 2},
}

// SizeOf formats n bytes as a human-readable string: "0 bytes", "1 byte",
// "1 kB", "1.00 GB", and so on, stepping by 1024 through kB/MB/GB/TB/PB with
// the decimal-places schedule [0, 0, 1, 2, 2, 2].
func SizeOf(n int64) string {
	if n == 1 {
		return "1 byte"
	}
	if n < 0 {
		return fmt.Sprintf("-%s", SizeOf(-n))
	}

	value := float64(n)
	idx := 0
	for idx < len(units)-1 && value >= 1024 {
		value /= 1024
		idx++
	}
	if idx == 0 {
		return fmt.Sprintf("%d %s", n, units[0].name)
	}
	return fmt.Sprintf("%.*f %s", units[idx].decimal, value, units[idx].name)
}
