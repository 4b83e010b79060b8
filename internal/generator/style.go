package generator

import "strings"

// style controls how mathematical expressions are rendered in prompts and
// suggested answers. Plain style keeps unicode glyphs (π, √, superscripts)
// while markup style rewrites them into TeX inside $...$ delimiters so
// clients can hand the spans to a math renderer.
type style struct {
	markup bool
}

// math renders a mathematical expression according to the style.
func (s style) math(expression string) string {
	if !s.markup {
		return expression
	}
	return "$" + s.tex(expression) + "$"
}

// tex rewrites the unicode conventions of the plain style into TeX.
func (s style) tex(expression string) string {
	var builder strings.Builder
	runes := []rune(expression)
	for index := 0; index < len(runes); index++ {
		switch r := runes[index]; {
		case r == 'π':
			builder.WriteString(`\pi`)
		case r == '°':
			builder.WriteString(`^{\circ}`)
		case r == '√':
			// √(…) becomes \sqrt{…}.
			if index+1 < len(runes) && runes[index+1] == '(' {
				depth := 0
				end := index + 1
				for ; end < len(runes); end++ {
					if runes[end] == '(' {
						depth++
					} else if runes[end] == ')' {
						depth--
						if depth == 0 {
							break
						}
					}
				}
				if end < len(runes) {
					builder.WriteString(`\sqrt{`)
					builder.WriteString(string(runes[index+2 : end]))
					builder.WriteString(`}`)
					index = end
					continue
				}
			}
			builder.WriteString(`\sqrt{}`)
		case isSuperscript(r):
			builder.WriteString("^{")
			for index < len(runes) && isSuperscript(runes[index]) {
				builder.WriteRune(fromSuperscript(runes[index]))
				index++
			}
			index--
			builder.WriteString("}")
		default:
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

func isSuperscript(r rune) bool {
	for _, candidate := range superscripts {
		if r == candidate {
			return true
		}
	}
	return false
}

func fromSuperscript(r rune) rune {
	for digit, candidate := range superscripts {
		if r == candidate {
			return rune('0' + digit)
		}
	}
	return r
}
