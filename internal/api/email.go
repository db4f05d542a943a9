package api

import (
	"github.com/a-h/templ"

	"github.com/Arokeji/Nailted-Back/core/email/templates"
)

func resultsTemplate(data resultsEmail) templ.Component {
	parts := []templ.Component{
		templates.Header("Your quiz results", data.CompanyName),
	}
	if data.GlobalScore != nil {
		parts = append(parts, templates.Text("Global score: "+templates.FormatScore(*data.GlobalScore)))
	} else {
		parts = append(parts, templates.Text("The quiz has not been scored yet."))
	}
	if len(data.Rows) > 0 {
		parts = append(parts,
			templates.Text("Score by category:"),
			templates.ScoreTable(data.Rows),
		)
	}
	parts = append(parts, templates.Text("Thanks for taking the quiz."))
	return templates.Layout(parts...)
}
