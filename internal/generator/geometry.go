package generator

import (
	"math"
	"math/rand"
	"slices"
	"strconv"
)

func geometrySubject() subject {
	return subject{
		name: SubjectGeometry,
		builders: []builder{
			{name: "polygon_sides", build: buildPolygonSides},
			{name: "angle_sum", build: buildAngleSum},
			{name: "triangle_nature", build: buildTriangleNature},
			{name: "unit_conversion", build: buildUnitConversion},
		},
	}
}

type polygonEntry struct {
	prefix string
	sides  int
}

var polygonPrefixes = []polygonEntry{
	{"pent", 5},
	{"hex", 6},
	{"oct", 8},
	{"dec", 10},
}

// unitPrefixes is ordered from the largest to the smallest, each step being
// a factor of ten.
var unitPrefixes = []string{"kilo", "hecto", "deca", "", "deci", "centi", "milli"}

type shapeAngle struct {
	shape   string
	degrees string
	radians string
}

var shapeAngles = []shapeAngle{
	{"triangle", "180°", degreesToRadians("180°")},
	{"carré", "360°", degreesToRadians("360°")},
	{"pentagone", "540°", degreesToRadians("540°")},
}

// pythagoreanTriplets lists the right triangle side triplets whose values
// all fit in [low, high], deduplicated across leg order.
func pythagoreanTriplets(low, high int) [][3]int {
	var result [][3]int
	for i := low; i <= high; i++ {
		for j := low; j <= high; j++ {
			sum := i*i + j*j
			hypotenuse := int(math.Sqrt(float64(sum)))
			if hypotenuse*hypotenuse != sum || hypotenuse > high {
				continue
			}
			known := false
			for _, triplet := range result {
				if min(triplet[0], triplet[1]) == min(i, j) && triplet[2] == hypotenuse {
					known = true
					break
				}
			}
			if !known {
				result = append(result, [3]int{i, j, hypotenuse})
			}
		}
	}
	return result
}

// buildPolygonSides asks how many sides a named polygon has.
func buildPolygonSides(rng *rand.Rand, _ style) question {
	sentences := []string{
		"Combien de côté un {prefix}agone possède t'il ?",
		"Un {prefix}agone, c'est un polygone à comien de coté ?",
		"Nombre de coté d'un {prefix}agone ?",
	}

	entry := pick(rng, polygonPrefixes)
	values := []int{entry.sides}

	lowest, highest := polygonPrefixes[0].sides, polygonPrefixes[0].sides
	for _, candidate := range polygonPrefixes {
		lowest = min(lowest, candidate.sides)
		highest = max(highest, candidate.sides)
	}
	for i := 0; i < 3; i++ {
		fake, _ := randWithout(rng, lowest, highest, values)
		values = append(values, fake)
	}
	rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

	return question{
		prompt:    fill(pick(rng, sentences), "{prefix}", entry.prefix),
		suggested: intAnswers(values),
		answer:    indexOf(values, entry.sides),
	}
}

// buildAngleSum asks for the sum of the angles of a shape, randomly in
// degrees or radians. Distractors are the sums of the other shapes.
func buildAngleSum(rng *rand.Rand, st style) question {
	sentences := []string{
		"Quelle est la sommes des angles d'un {shape}",
		"Quel est le résultat de l’addition des angles d’un {shape} ?",
		"Que vaut la somme des angles d’un {shape} ?",
	}

	chosen := pick(rng, shapeAngles)
	answer := pick(rng, []string{chosen.degrees, chosen.radians})

	values := []string{answer}
	for len(values) < 4 {
		fake := pick(rng, shapeAngles)
		if fake.shape == chosen.shape {
			continue
		}
		fakeValue := pick(rng, []string{fake.degrees, fake.radians})
		if indexOf(values, fakeValue) >= 0 {
			continue
		}
		values = append(values, fakeValue)
	}
	rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

	suggested := make([]Answer, len(values))
	for index, value := range values {
		suggested[index] = textAnswer(st.math(value))
	}
	return question{
		prompt:    fill(pick(rng, sentences), "{shape}", chosen.shape),
		suggested: suggested,
		answer:    indexOf(values, answer),
	}
}

// buildTriangleNature shows three side lengths and asks for the nature of
// the triangle they form.
func buildTriangleNature(rng *rand.Rand, _ style) question {
	sentences := []string{
		"Détermine la nature du triangle aux côtés {a}, {b}, et {c}.",
		"À quelle catégorie appartient le triangle avec des côtés de {a}, {b} et {c} ?",
		"Identifie la nature du triangle ayant pour côtés {a}, {b}, et {c}.",
	}
	const low, high = 3, 10

	values := []string{"rectangle", "isocèle", "équilatéral", "quelconque"}
	rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })
	answer := pick(rng, values)

	var sides []int
	switch answer {
	case "rectangle":
		triplet := pick(rng, pythagoreanTriplets(low, high))
		sides = triplet[:]
	case "équilatéral":
		side := randBetween(rng, low, high)
		sides = []int{side, side, side}
	case "isocèle":
		first := randBetween(rng, low, high)
		second, _ := randWithout(rng, low, high, []int{first})
		sides = []int{first, second, pick(rng, []int{first, second})}
	default:
		first := randBetween(rng, low, high)
		second, _ := randWithout(rng, low, high, []int{first})
		for {
			third, _ := randWithout(rng, low, high, []int{first, second})
			sides = []int{first, second, third}
			slices.Sort(sides)
			if sides[0]*sides[0]+sides[1]*sides[1] != sides[2]*sides[2] {
				break
			}
		}
	}
	rng.Shuffle(len(sides), func(i, j int) { sides[i], sides[j] = sides[j], sides[i] })

	return question{
		prompt: fill(pick(rng, sentences),
			"{a}", strconv.Itoa(sides[0]),
			"{b}", strconv.Itoa(sides[1]),
			"{c}", strconv.Itoa(sides[2])),
		suggested: textAnswers(values),
		answer:    indexOf(values, answer),
	}
}

// buildUnitConversion asks to convert a measurement between metric unit
// prefixes. The distractors apply a wrong power of ten but keep the target
// unit label so only the figure gives them away.
func buildUnitConversion(rng *rand.Rand, _ style) question {
	sentences := []string{
		"Convertis {value} {source} en {target}.",
		"{value} {source} font combien de {target} ?",
		"Transforme {value} {source} en {target}.",
	}

	unit := pick(rng, []string{"grammes", "litres", "mètres"})
	sourceValue := math.Round(rng.Float64()*100) / 10

	highestIndex := len(unitPrefixes) - 1
	sourceIndex := randBetween(rng, 0, highestIndex)
	answerIndex, _ := randWithout(rng, 0, highestIndex, []int{sourceIndex})
	var fakeIndexes []int
	for i := 0; i < 3; i++ {
		forbidden := append([]int{sourceIndex, answerIndex}, fakeIndexes...)
		fakeIndex, _ := randWithout(rng, 0, highestIndex, forbidden)
		fakeIndexes = append(fakeIndexes, fakeIndex)
	}

	convert := func(from, to int) float64 {
		return sourceValue * math.Pow(10, float64(to-from))
	}

	answerPrefix := unitPrefixes[answerIndex]
	answer := formatDecimal(convert(sourceIndex, answerIndex)) + " " + answerPrefix + unit
	values := []string{answer}
	for _, fakeIndex := range fakeIndexes {
		values = append(values, formatDecimal(convert(sourceIndex, fakeIndex))+" "+answerPrefix+unit)
	}
	rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

	return question{
		prompt: fill(pick(rng, sentences),
			"{value}", strconv.FormatFloat(sourceValue, 'f', 1, 64),
			"{source}", unitPrefixes[sourceIndex]+unit,
			"{target}", answerPrefix+unit),
		suggested: textAnswers(values),
		answer:    indexOf(values, answer),
	}
}

// textAnswers converts plain text options into answers.
func textAnswers(values []string) []Answer {
	answers := make([]Answer, len(values))
	for index, value := range values {
		answers[index] = textAnswer(value)
	}
	return answers
}
