package generator

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
)

func trigonometrySubject() subject {
	return subject{
		name: SubjectTrigonometry,
		builders: []builder{
			{name: "trig_value", build: buildTrigValue},
			{name: "angle_coincidence", build: buildAngleCoincidence},
			{name: "degree_radian_conversion", build: buildDegreeRadianConversion},
		},
	}
}

// trigBaseAngles are the first quadrant angles whose sine and cosine take
// remarkable values; every other angle of interest is a quarter turn away.
var trigBaseAngles = []string{"0°", "30°", "45°", "60°"}

// extendedAngles shifts the base angles by multiples of a quarter turn,
// covering [start, stop) turns plus the closing right angle.
func extendedAngles(start, stop int) []string {
	var angles []string
	for i := start; i < stop; i++ {
		for _, base := range trigBaseAngles {
			angles = append(angles, addDegrees(base, 90*i))
		}
	}
	return append(angles, strconv.Itoa(90*stop)+"°")
}

// trigValueText maps a sine or cosine value rounded to three decimals onto
// its exact form.
func trigValueText(value float64) string {
	milli := int(math.Round(value * 1000))
	negative := milli < 0
	if negative {
		milli = -milli
	}
	var text string
	switch milli {
	case 0:
		text = "0"
	case 500:
		text = "1/2"
	case 707:
		text = "√(2)/2"
	case 866:
		text = "√(3)/2"
	case 1000:
		text = "1"
	}
	if negative && text != "0" {
		return "-" + text
	}
	return text
}

// degreeValue parses "120°" into 120.
func degreeValue(angle string) int {
	value, _ := strconv.Atoi(strings.TrimSuffix(angle, "°"))
	return value
}

// buildTrigValue asks for the exact value of a sine or cosine on the unit
// circle, sometimes phrasing the angle in radians.
func buildTrigValue(rng *rand.Rand, st style) question {
	sentences := []string{
		"Quelle est la valeur de {call} ?",
		"Quelle valeur doit-on attribuer à {call} ?",
		"Quel est le résultat de {call} dans l’unité cercle ?",
	}
	angles := extendedAngles(-4, 4)

	name, fn := "cos", math.Cos
	if rng.Intn(2) == 1 {
		name, fn = "sin", math.Sin
	}
	angle := pick(rng, angles)
	answer := trigValueText(fn(float64(degreeValue(angle)) * math.Pi / 180))

	shown := angle
	if rng.Intn(2) == 0 {
		shown = degreesToRadians(angle)
	}

	values := []string{answer}
	for len(values) < 4 {
		fakeAngle := pick(rng, angles)
		fake := trigValueText(fn(float64(degreeValue(fakeAngle)) * math.Pi / 180))
		if indexOf(values, fake) >= 0 {
			continue
		}
		values = append(values, fake)
	}

	suggested := make([]Answer, len(values))
	for index, value := range values {
		suggested[index] = textAnswer(st.math(value))
	}
	return question{
		prompt:    fill(pick(rng, sentences), "{call}", st.math(name+"("+shown+")")),
		suggested: suggested,
		answer:    indexOf(values, answer),
	}
}

// buildAngleCoincidence asks whether two angles land on the same point of
// the unit circle. Either angle may be phrased in radians.
func buildAngleCoincidence(rng *rand.Rand, st style) question {
	sentences := []string{
		"{angle1} est-il confondu avec {angle2} dans le cerle trigonométrique ?",
		"{angle1} et {angle2} ont-ils la même position sur le cercle trigo ?",
		"Peut-on superposer {angle1} et {angle2} dans le cercle trigo d'unité 1 ?",
	}
	angles := extendedAngles(-4, 4)

	first := pick(rng, angles)
	coincide := rng.Intn(2) == 0
	var second string
	if coincide {
		turns := pick(rng, []int{-1, 1})
		second = addDegrees(first, 360*turns)
	} else {
		for {
			second = pick(rng, angles)
			if second != first {
				break
			}
		}
	}

	pair := shufflePair(rng, first, second)
	first, second = pair[0], pair[1]
	if rng.Intn(2) == 0 {
		first = degreesToRadians(first)
	}
	if rng.Intn(2) == 0 {
		second = degreesToRadians(second)
	}

	return question{
		prompt: fill(pick(rng, sentences),
			"{angle1}", st.math(first),
			"{angle2}", st.math(second)),
		suggested: boolPair(),
		answer:    boolPairIndex(coincide),
	}
}

// buildDegreeRadianConversion shows an angle in one unit and asks for its
// value in the other, against three converted distractors.
func buildDegreeRadianConversion(rng *rand.Rand, st style) question {
	sentences := []string{
		"{value} correspond à quelle valeur en {unit} ?",
		"Combien de {unit} représente {value} ?",
		"{value} donne combien en {unit} ?",
		"Quelle est l’équivalence exacte en {unit} de {value} ?",
	}
	angles := extendedAngles(-2, 2)

	var couples [][2]string
	for len(couples) < 4 {
		degrees := pick(rng, angles)
		couple := [2]string{degrees, degreesToRadians(degrees)}
		if indexOf(couples, couple) < 0 {
			couples = append(couples, couple)
		}
	}
	rng.Shuffle(len(couples), func(i, j int) { couples[i], couples[j] = couples[j], couples[i] })

	// 0 shows the angle in degrees and asks for radians, 1 the reverse.
	shownUnit := rng.Intn(2)
	answerIndex := rng.Intn(len(couples))
	shown := couples[answerIndex][shownUnit]

	values := make([]string, len(couples))
	for index, couple := range couples {
		values[index] = couple[1-shownUnit]
	}
	unitTarget := [2]string{"degrés", "radians"}[1-shownUnit]

	suggested := make([]Answer, len(values))
	for index, value := range values {
		suggested[index] = textAnswer(st.math(value))
	}
	return question{
		prompt: fill(pick(rng, sentences),
			"{value}", st.math(shown),
			"{unit}", unitTarget),
		suggested: suggested,
		answer:    answerIndex,
	}
}
