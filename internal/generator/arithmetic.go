package generator

import (
	"math"
	"math/rand"
	"slices"
	"strconv"
)

func arithmeticSubject() subject {
	return subject{
		name: SubjectArithmetic,
		builders: []builder{
			{name: "perfect_square", build: buildPerfectSquare},
			{name: "prime_number", build: buildPrimeNumber},
			{name: "gcd_lcm", build: buildGCDLCM},
			{name: "divisibility", build: buildDivisibility},
		},
	}
}

// primesBetween lists the prime numbers in [low, high].
func primesBetween(low, high int) []int {
	isPrime := func(n int) bool {
		if n <= 1 {
			return false
		}
		for d := 2; d*d <= n; d++ {
			if n%d == 0 {
				return false
			}
		}
		return true
	}
	var primes []int
	for candidate := low; candidate <= high; candidate++ {
		if isPrime(candidate) {
			primes = append(primes, candidate)
		}
	}
	return primes
}

// buildPerfectSquare asks whether a number is the square of an integer.
func buildPerfectSquare(rng *rand.Rand, _ style) question {
	sentences := []string{
		"Le nombre {number} est-il un carré parfait ?",
		"{number} est-il le carré d'un nombre entier ?",
		"Peut-on écrire {number} comme k² avec k un entier ?",
	}
	const low, high = 25, 196

	var squares []int
	for root := int(math.Floor(math.Sqrt(low))); root <= int(math.Ceil(math.Sqrt(high))); root++ {
		squares = append(squares, root*root)
	}

	isSquare := rng.Intn(2) == 0
	var number int
	if isSquare {
		number = pick(rng, squares)
	} else {
		number, _ = randWithout(rng, low, high, squares)
	}

	return question{
		prompt:    fill(pick(rng, sentences), "{number}", strconv.Itoa(number)),
		suggested: boolPair(),
		answer:    boolPairIndex(isSquare),
	}
}

// buildPrimeNumber asks whether a number is prime. Composite candidates are
// kept odd, even numbers give the game away.
func buildPrimeNumber(rng *rand.Rand, _ style) question {
	sentences := []string{
		"{number} est-il divisible uniquement par 1 et lui-même ?",
		"Peut-on dire que {number} est un nombre premier ?",
		"Est-ce que {number} est considéré comme un nombre premier ?",
	}
	const low, high = 10, 40

	primes := primesBetween(low, high)
	isPrime := rng.Intn(2) == 0
	var number int
	if isPrime {
		number = pick(rng, primes)
	} else {
		number, _ = randWithout(rng, low, high, primes)
		for number%2 == 0 && number != 2 {
			number, _ = randWithout(rng, low, high, primes)
		}
	}

	return question{
		prompt:    fill(pick(rng, sentences), "{number}", strconv.Itoa(number)),
		suggested: boolPair(),
		answer:    boolPairIndex(isPrime),
	}
}

// buildGCDLCM asks for the greatest common divisor or least common multiple
// of two numbers sharing a friendly factor.
func buildGCDLCM(rng *rand.Rand, _ style) question {
	sentences := []string{
		"Trouve le {operation} entre {n1} et {n2}.",
		"Calcule le {operation} des nombres {n1} et {n2}.",
		"Quel est le {operation} de {n1} et {n2} ?",
	}
	const low, high = 20, 40

	var (
		label string
		apply func(int, int) int
	)
	if rng.Intn(2) == 0 {
		label = pick(rng, []string{"plus grand diviseur commmun", "PGCD"})
		apply = gcd
	} else {
		label = pick(rng, []string{"plus petit mutliple commmun", "PPCM"})
		apply = lcm
	}

	// Both operands share the factor k so the result stays friendly.
	k := randNonZero(rng, 2, 6)
	n1 := randBetween(rng, low/k, high/k)
	n2, _ := randWithout(rng, low/k, high/k, []int{n1})
	answer := apply(n1, n2)

	values := []int{answer}
	attempts := 0
	for len(values) < 4 {
		attempts++
		fake1 := randBetween(rng, low/k, high/k)
		fake2, _ := randWithout(rng, low/k, high/k, []int{fake1})
		fake := apply(fake1, fake2)
		if indexOf(values, fake) < 0 {
			values = append(values, fake)
		} else if attempts > 10 {
			filler, _ := randWithout(rng, slices.Min(values), slices.Max(values)+4, values)
			values = append(values, filler)
		}
	}
	rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

	return question{
		prompt: fill(pick(rng, sentences),
			"{operation}", label,
			"{n1}", strconv.Itoa(n1),
			"{n2}", strconv.Itoa(n2)),
		suggested: intAnswers(values),
		answer:    indexOf(values, answer),
	}
}

// buildDivisibility asks whether a number is divisible by one of the
// divisors that have a well known rule.
func buildDivisibility(rng *rand.Rand, _ style) question {
	sentences := []string{
		"Le nombre {k} divise-t-il {number} ?",
		"{k} peut-il diviser {number} sans laisser de reste ?",
		"{number} est-il divisible par {k} ?",
	}
	const low, high = 100, 10_000

	divisors := []int{3, 5, 6, 7, 10, 15}
	isDivisible := rng.Intn(2) == 0
	k := pick(rng, divisors)
	var number int
	if isDivisible {
		number = k * randBetween(rng, low/k, high/k)
	} else {
		number = randBetween(rng, low, high)
		for number%k == 0 {
			number = randBetween(rng, low, high)
		}
	}

	return question{
		prompt: fill(pick(rng, sentences),
			"{number}", strconv.Itoa(number),
			"{k}", strconv.Itoa(k)),
		suggested: boolPair(),
		answer:    boolPairIndex(isDivisible),
	}
}
