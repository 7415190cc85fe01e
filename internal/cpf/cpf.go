// Package cpf validates Brazilian CPF (Cadastro de Pessoas Físicas) numbers.
//
// It is the leaf of the application: no I/O, no logging, no dependencies.
// A CPF is 11 digits where the last two are check digits computed from
// the first nine with a weighted modulo-11 sum.
package cpf

// Length is the number of digits in a normalized CPF.
const Length = 11

// Validate reports whether candidate represents a valid CPF.
//
// Formatting is ignored: every character that is not an ASCII digit is dropped
// before checking, so "111.444.777-35" and "11144477735" give the same answer.
//
// Validate never panics. Malformed input (empty, no digits, wrong digit count)
// simply returns false.
func Validate(candidate string) bool {
	digits := normalize(candidate)

	if len(digits) != Length {
		return false
	}

	// "00000000000".."99999999999" pass the checksum for some values but are
	// never issued, so reject them before doing any arithmetic.
	if allEqual(digits) {
		return false
	}

	first := checkDigit(digits[:9], 10)
	second := checkDigit(append(digits[:9:9], first), 11)

	return digits[9] == first && digits[10] == second
}

// normalize extracts the ASCII digits of s, in order, as integer values.
// The result is never returned to callers of Validate.
func normalize(s string) []int {
	digits := make([]int, 0, Length)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	return digits
}

func allEqual(digits []int) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

// checkDigit weights digits[i] by (initialWeight - i), sums the products and
// reduces the sum modulo 11. Remainders below 2 map to 0, the rest to 11 - remainder.
func checkDigit(digits []int, initialWeight int) int {
	sum := 0
	for i, d := range digits {
		sum += d * (initialWeight - i)
	}

	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}
