// Package templates renders templ components into HTML email bodies and
// provides the small set of building blocks the results email is made of.
//
//	body, err := templates.Render(ctx, templates.Layout(
//		templates.Header("Your results", "Acme Inc."),
//		templates.Text("Global score: 85"),
//	))
//
// Every helper escapes its text arguments.
package templates
