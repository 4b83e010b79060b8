package play

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"mathquiz/internal/palette"
	"mathquiz/internal/quiz"
)

// renderWelcome renders the settings screen.
func renderWelcome(state State, noColor bool) string {
	lines := []string{
		stylize("Quiz de mathématiques", noColor, lipgloss.Color("33")),
		"",
		"Matières:",
	}
	for i, subject := range state.Subjects {
		mark := "[ ]"
		if state.Selected[subject] {
			mark = "[x]"
		}
		line := "  " + fmtInt(i+1) + ". " + mark + " " + subject
		if state.Selected[subject] && !noColor {
			line = stylize(line, noColor, lipgloss.Color("71"))
		}
		lines = append(lines, line)
	}
	lines = append(lines,
		"",
		"Nombre de questions: "+fmtInt(state.Questions),
		"",
		stylize("1-"+fmtInt(len(state.Subjects))+" matières | +/- questions | entrée lancer | q quitter", noColor, lipgloss.Color("242")),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderSession renders the in-series screens: fetching, question, feedback
// and scoring.
func renderSession(state State, spinnerView string, renderer func(string) string, noColor bool) string {
	snapshot := state.Snapshot
	lines := []string{renderSessionHeader(snapshot, noColor), ""}

	if snapshot.Err != nil {
		lines = append(lines,
			stylize("Erreur: "+snapshot.Err.Error(), noColor, lipgloss.Color("167")),
			"",
			stylize("r réessayer | esc menu | q quitter", noColor, lipgloss.Color("242")),
		)
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	switch snapshot.Phase {
	case quiz.PhaseScoring:
		lines = append(lines, spinnerView+" Calcul du score...")
	case quiz.PhasePresenting, quiz.PhaseFeedback:
		lines = append(lines, renderQuestion(state, renderer, noColor)...)
	default:
		lines = append(lines, spinnerView+" Chargement de la question...")
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderSessionHeader renders the "Question x/y" progress line.
func renderSessionHeader(snapshot quiz.Snapshot, noColor bool) string {
	line := "Question " + fmtInt(snapshot.CurrentOrdinal) + "/" + fmtInt(snapshot.TargetCount)
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderQuestion renders the prompt, the lettered options and, in the
// feedback phase, the correction line.
func renderQuestion(state State, renderer func(string) string, noColor bool) []string {
	snapshot := state.Snapshot
	question := snapshot.Question
	if question == nil {
		return nil
	}

	colors := state.Colors
	if len(colors) == 0 {
		colors = palette.Default()
	}

	lines := []string{renderSegments(question.Prompt, renderer, noColor), ""}
	for i, option := range question.Options {
		text := optionLetter(i) + ". " + renderSegments(option, renderer, noColor)
		color := colors[i%len(colors)]
		if snapshot.Phase == quiz.PhaseFeedback && snapshot.Feedback != nil {
			if i == snapshot.Feedback.CorrectIndex {
				color = lipgloss.Color("71")
			} else {
				color = lipgloss.Color("242")
			}
		}
		lines = append(lines, "  "+stylize(text, noColor, color))
	}

	lines = append(lines, "")
	if snapshot.Phase == quiz.PhaseFeedback && snapshot.Feedback != nil {
		correct := renderSegments(snapshot.Feedback.CorrectText, renderer, noColor)
		lines = append(lines,
			stylize("Mauvaise réponse. La bonne réponse était: "+correct, noColor, lipgloss.Color("167")),
			"",
			stylize("entrée continuer | q quitter", noColor, lipgloss.Color("242")),
		)
	} else {
		lines = append(lines, stylize("1-"+fmtInt(len(question.Options))+" ou a-d répondre | q quitter", noColor, lipgloss.Color("242")))
	}
	return lines
}

// renderScore renders the final score and the per-question answer table.
func renderScore(state State, renderer func(string) string, noColor bool) string {
	snapshot := state.Snapshot
	lines := []string{
		stylize("Série terminée", noColor, lipgloss.Color("33")),
		"",
		string(snapshot.Score),
		"",
		renderRecordTable(snapshot.Records, noColor),
		"",
		stylize("r rejouer | esc menu | q quitter", noColor, lipgloss.Color("242")),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderRecordTable renders the answer records as a table.
func renderRecordTable(records []quiz.AnswerRecord, noColor bool) string {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Question", Width: 24},
		{Title: "Matière", Width: 14},
		{Title: "Temps", Width: 7},
		{Title: "Résultat", Width: 8},
	}
	rows := make([]table.Row, 0, len(records))
	for i, record := range records {
		result := "Faux"
		if record.Correct {
			result = "Juste"
		}
		rows = append(rows, table.Row{
			fmtInt(i + 1),
			record.QuestionName,
			record.Subject,
			formatElapsed(record.ElapsedSeconds),
			result,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	styles := table.DefaultStyles()
	styles.Selected = styles.Cell
	if noColor {
		styles.Header = styles.Header.UnsetForeground()
	}
	t.SetStyles(styles)
	return t.View()
}
