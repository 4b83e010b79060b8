package generator

import (
	"math/rand"
	"strconv"
	"strings"
)

// superscripts maps decimal digits to their unicode superscript form.
var superscripts = []rune{'⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹'}

// primeFactors returns the prime factors of n in increasing order, with a
// leading -1 for negative numbers and an empty list for zero.
func primeFactors(n int) []int {
	var factors []int
	if n == 0 {
		return factors
	}
	if n < 0 {
		n = -n
		factors = append(factors, -1)
	}
	for n%2 == 0 {
		factors = append(factors, 2)
		n /= 2
	}
	for d := 3; d <= n; d += 2 {
		for n%d == 0 {
			factors = append(factors, d)
			n /= d
		}
	}
	return factors
}

// degreesToRadians renders a degree angle such as "225°" as a simplified
// radian expression over π, e.g. "5π/4". Angles sharing no factor with 180
// collapse to "0", matching the generator this port follows.
func degreesToRadians(degrees string) string {
	value, err := strconv.Atoi(strings.TrimSuffix(degrees, "°"))
	if err != nil || !strings.HasSuffix(degrees, "°") {
		return "0"
	}

	valueFactors := primeFactors(value)
	halfTurnFactors := []int{2, 2, 3, 3, 5}
	var removed []int
	for _, factor := range valueFactors {
		if index := indexOf(halfTurnFactors, factor); index >= 0 {
			halfTurnFactors = append(halfTurnFactors[:index], halfTurnFactors[index+1:]...)
			removed = append(removed, factor)
		}
	}
	if len(removed) == 0 {
		return "0"
	}
	for _, factor := range removed {
		if index := indexOf(valueFactors, factor); index >= 0 {
			valueFactors = append(valueFactors[:index], valueFactors[index+1:]...)
		}
	}

	numerator := product(valueFactors)
	var builder strings.Builder
	switch {
	case numerator == 1:
		builder.WriteString("π")
	case numerator == -1:
		builder.WriteString("-π")
	default:
		builder.WriteString(strconv.Itoa(numerator))
		builder.WriteString("π")
	}
	if denominator := product(halfTurnFactors); denominator != 1 {
		builder.WriteString("/")
		builder.WriteString(strconv.Itoa(denominator))
	}
	return builder.String()
}

// addDegrees shifts a degree angle string by a delta in degrees.
func addDegrees(degrees string, delta int) string {
	value, _ := strconv.Atoi(strings.TrimSuffix(degrees, "°"))
	return strconv.Itoa(value+delta) + "°"
}

// formatValue renders one signed term of a polynomial, e.g. (-1, "x²") into
// "-x²" and (3, "") into "+3". Zero coefficients render as nothing.
func formatValue(coefficient int, variable string) string {
	if coefficient == 0 {
		return ""
	}
	sign := "+"
	if coefficient < 0 {
		sign = "-"
	}
	magnitude := strconv.Itoa(abs(coefficient))
	if abs(coefficient) == 1 && variable != "" {
		magnitude = ""
	}
	return sign + magnitude + variable
}

// formatEquation renders an expanded polynomial from coefficients ordered by
// decreasing exponent, optionally shuffling the term order to hide the
// canonical form.
func formatEquation(rng *rand.Rand, shuffleTerms bool, coefficients ...int) string {
	terms := make([]string, 0, len(coefficients))
	for index, coefficient := range coefficients {
		exponent := len(coefficients) - 1 - index
		variable := ""
		switch {
		case exponent == 1:
			variable = "x"
		case exponent > 1:
			variable = "x"
			for _, digit := range strconv.Itoa(exponent) {
				variable += string(superscripts[digit-'0'])
			}
		}
		if term := formatValue(coefficient, variable); term != "" {
			terms = append(terms, term)
		}
	}
	if shuffleTerms && rng != nil {
		rng.Shuffle(len(terms), func(i, j int) {
			terms[i], terms[j] = terms[j], terms[i]
		})
	}
	equation := strings.Join(terms, "")
	return strings.TrimPrefix(equation, "+")
}

// formatDecimal renders a converted measurement without trailing decimal
// noise ("5", "0.35", "1200"). Ten decimal places absorb the floating point
// artifacts of power-of-ten scaling before trimming.
func formatDecimal(value float64) string {
	text := strconv.FormatFloat(value, 'f', 10, 64)
	text = strings.TrimRight(text, "0")
	return strings.TrimRight(text, ".")
}

// randBetween draws an integer uniformly from [low, high].
func randBetween(rng *rand.Rand, low, high int) int {
	if low > high {
		low, high = high, low
	}
	return low + rng.Intn(high-low+1)
}

// randWithout draws an integer from [low, high] avoiding the forbidden set.
// The second return is false when the forbidden set covers the interval.
func randWithout(rng *rand.Rand, low, high int, forbidden []int) (int, bool) {
	if low > high {
		low, high = high, low
	}
	allowed := 0
	for candidate := low; candidate <= high; candidate++ {
		if indexOf(forbidden, candidate) < 0 {
			allowed++
		}
	}
	if allowed == 0 {
		return 0, false
	}
	for {
		candidate := randBetween(rng, low, high)
		if indexOf(forbidden, candidate) < 0 {
			return candidate, true
		}
	}
}

// randNonZero draws a non-zero integer from [low, high].
func randNonZero(rng *rand.Rand, low, high int) int {
	value, _ := randWithout(rng, low, high, []int{0})
	return value
}

// pick returns a uniformly chosen element.
func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

// weightedPick draws one item with probability proportional to its weight.
func weightedPick(rng *rand.Rand, items []int, weights []float64) int {
	total := 0.0
	for _, weight := range weights {
		total += weight
	}
	draw := rng.Float64() * total
	for index, weight := range weights {
		if draw < weight {
			return items[index]
		}
		draw -= weight
	}
	return items[len(items)-1]
}

// fill substitutes {placeholder} pairs into a sentence template.
func fill(template string, pairs ...string) string {
	return strings.NewReplacer(pairs...).Replace(template)
}

// indexOf returns the index of the first occurrence of value, or -1.
func indexOf[T comparable](items []T, value T) int {
	for index, item := range items {
		if item == value {
			return index
		}
	}
	return -1
}

// product multiplies the values together; an empty list yields 1.
func product(values []int) int {
	result := 1
	for _, value := range values {
		result *= value
	}
	return result
}

// abs returns the absolute value of n.
func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// gcd computes the greatest common divisor of two positive integers.
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// lcm computes the least common multiple of two positive integers.
func lcm(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcd(a, b) * b
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	quotient := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		quotient--
	}
	return quotient
}
