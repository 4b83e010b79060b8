package generator

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

func algebraSubject() subject {
	return subject{
		name: SubjectAlgebra,
		builders: []builder{
			{name: "calculate_antecedent", build: buildAntecedent},
			{name: "calculate_image", build: buildImage},
			{name: "factored_form", build: buildFactoredForm},
			{name: "times_tables", build: buildTimesTables},
		},
	}
}

// buildAntecedent asks for the antecedent of a value through a first degree
// function, which is the same as solving the equation.
func buildAntecedent(rng *rand.Rand, st style) question {
	sentences := []string{
		"Quelle est la valeur de x dans {equation}={c} ?",
		"Quelle est la solution de {equation}={c} ?",
		"Donner l'antécédent de {c} avec f(x)={equation}.",
	}

	a := randNonZero(rng, -4, 4)
	x := randNonZero(rng, -10, 10)
	c := randNonZero(rng, -2, 2) * a
	b := c - a*x

	// c+b is a multiple of a, so the division is exact.
	values := []int{x, -(c + b) / a}
	// a*c+b traps whoever confuses image and antecedent.
	if trap := a*c + b; trap != x && trap != values[1] {
		values = append(values, trap)
	} else {
		filler, _ := randWithout(rng, -10, 10, values)
		values = append(values, filler)
	}
	filler, _ := randWithout(rng, -10, 10, values)
	values = append(values, filler)
	rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

	equation := formatEquation(rng, true, a, b)
	return question{
		prompt: fill(pick(rng, sentences),
			"{equation}", st.math(equation),
			"{c}", strconv.Itoa(c)),
		suggested: intAnswers(values),
		answer:    indexOf(values, x),
	}
}

// buildImage asks for the image of a number through a first or second degree
// function. The distractors are drawn from the range the function actually
// reaches on the input interval so they stay plausible.
func buildImage(rng *rand.Rand, st style) question {
	sentences := []string{
		"Combien vaut g({x}) avec g(x)={equation} ?",
		"Calcule l'image de {x} dans l'équation {equation}=y.",
		"Donner l'image de {x} avec f(x)={equation}.",
	}
	const (
		xLow, xHigh = -2, 2
	)

	// One chance in two to get a first degree function.
	a := pick(rng, []int{0, randNonZero(rng, -4, 4)})
	b := randNonZero(rng, -6, 6)
	c := randBetween(rng, -10, 10)
	x := randBetween(rng, xLow, xHigh)
	answer := a*x*x + b*x + c

	var lowest, highest int
	if a == 0 {
		lowest = min(b*xLow+c, b*xHigh+c)
		highest = max(b*xLow+c, b*xHigh+c)
	} else {
		atLow := a*xLow*xLow + b*xLow + c
		atHigh := a*xHigh*xHigh + b*xHigh + c
		vertexX := -float64(b) / float64(2*a)
		vertexY := int(math.Ceil(-float64(b*b-4*a*c) / float64(4*a)))
		if float64(xLow) <= vertexX && vertexX <= float64(xHigh) {
			if a < 0 {
				lowest, highest = min(atLow, atHigh), vertexY
			} else {
				lowest, highest = vertexY, max(atLow, atHigh)
			}
		} else {
			lowest, highest = min(atLow, atHigh), max(atLow, atHigh)
		}
	}

	values := []int{answer}
	for i := 0; i < 3; i++ {
		fake, ok := randWithout(rng, lowest, highest, values)
		if !ok {
			fake, _ = randWithout(rng, lowest-4, highest+4, values)
		}
		values = append(values, fake)
	}
	rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

	equation := formatEquation(rng, true, a, b, c)
	return question{
		prompt: fill(pick(rng, sentences),
			"{equation}", st.math(equation),
			"{x}", strconv.Itoa(x)),
		suggested: intAnswers(values),
		answer:    indexOf(values, answer),
	}
}

// buildFactoredForm asks which product expands to the given polynomial,
// e.g. -x²+5x-4 comes from -(x-1)(x-4).
func buildFactoredForm(rng *rand.Rand, st style) question {
	sentences := []string{
		"Quelle est la forme factorisée du polynôme {equation}=y.",
		"Donner sous forme de produit f(x)={equation}.",
	}
	factored := func(leading, first, second string) string {
		return fmt.Sprintf("%s(x%s)(x%s)", leading, first, second)
	}

	a := randNonZero(rng, -2, 2)
	// One easy root and one further away.
	x1 := randNonZero(rng, -1, 2)
	x2, _ := randWithout(rng, -10, 10, []int{-2, -1, 0, 1, 2})

	b := -(x1 + x2) * a
	c := x1 * x2 * a

	equation := formatEquation(rng, true, a, b, c)
	leading := leadingCoefficient(a)
	roots := shufflePair(rng, formatValue(-x1, ""), formatValue(-x2, ""))
	answer := factored(leading, roots[0], roots[1])

	values := []string{answer}

	fakeRoots := shufflePair(rng, x1, floorDiv(b, a*x1))
	labels := shufflePair(rng, formatValue(fakeRoots[0], ""), formatValue(fakeRoots[1], ""))
	values = append(values, factored(leadingCoefficient(a*pick(rng, []int{1, -1})), labels[0], labels[1]))

	fakeRoots = shufflePair(rng, x1, x2)
	values = append(values, factored(leadingCoefficient(a*pick(rng, []int{1, -1})),
		formatValue(-fakeRoots[0], ""), formatValue(fakeRoots[1], "")))

	fakeRoots = shufflePair(rng, x1, floorDiv(b, a*x1))
	values = append(values, factored(leading,
		formatValue(-fakeRoots[0], ""), formatValue(fakeRoots[1], "")))

	rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

	suggested := make([]Answer, len(values))
	for index, value := range values {
		suggested[index] = textAnswer(st.math(value))
	}
	return question{
		prompt:    fill(pick(rng, sentences), "{equation}", st.math(equation)),
		suggested: suggested,
		answer:    indexOf(values, answer),
	}
}

// buildTimesTables drills multiplication tables from 6 upwards, with a bias
// toward the 11 table whose operands then run into two digits.
func buildTimesTables(rng *rand.Rand, st style) question {
	sentences := []string{
		"Quel est le produit de {n1} par {n2} ?",
		"Combien font {n1}x{n2} ?",
		"{n1}x{n2}=?",
	}
	table := []int{6, 7, 8, 9, 10, 11}
	const oddsForEleven = 1.0 / 6

	weights := make([]float64, len(table))
	for index, entry := range table {
		if entry == 11 {
			weights[index] = oddsForEleven
		} else {
			weights[index] = (1 - oddsForEleven) / float64(len(table))
		}
	}

	n1 := weightedPick(rng, table, weights)
	var n2 int
	if n1 == 11 {
		n2 = randBetween(rng, 12, 99)
	} else {
		n2 = pick(rng, table)
	}
	answer := n1 * n2

	values := []int{answer}
	for len(values) < 4 {
		var fake int
		if n1 == 11 {
			other, _ := randWithout(rng, 12, 99, []int{n2})
			fake = 11 * other
		} else {
			first, _ := randWithout(rng, 6, 12, []int{n1})
			fake = first * randBetween(rng, 6, 12)
		}
		if indexOf(values, fake) < 0 {
			values = append(values, fake)
		}
	}
	rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

	return question{
		prompt: fill(pick(rng, sentences),
			"{n1}", strconv.Itoa(n1),
			"{n2}", strconv.Itoa(n2)),
		suggested: intAnswers(values),
		answer:    indexOf(values, answer),
	}
}

// leadingCoefficient renders the factor in front of a factored polynomial:
// 2 into "2", -1 into "-", 1 into "".
func leadingCoefficient(a int) string {
	return strings.TrimSuffix(formatEquation(nil, false, a, 0), "x")
}

// shufflePair returns the two values in random order.
func shufflePair[T any](rng *rand.Rand, first, second T) [2]T {
	if rng.Intn(2) == 1 {
		return [2]T{second, first}
	}
	return [2]T{first, second}
}

// intAnswers converts plain integer options into answers.
func intAnswers(values []int) []Answer {
	answers := make([]Answer, len(values))
	for index, value := range values {
		answers[index] = textAnswer(strconv.Itoa(value))
	}
	return answers
}
