package shop

import "fmt"

// FormatPaise renders an integer paise amount as rupees, e.g. 179700 -> "₹1797.00".
// Money never touches floating point.
func FormatPaise(p int64) string {
	return fmt.Sprintf("₹%d.%02d", p/100, p%100)
}
