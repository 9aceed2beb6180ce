package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/template"

	"github.com/shopspring/decimal"

	"github.com/iudanet/wanderlust/internal/models"
)

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"amount": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	},
	"when": func(item models.ItineraryItem) string {
		switch {
		case item.Period != models.PeriodNone:
			return string(item.Period)
		case item.EndTime != "":
			return item.Time + "-" + item.EndTime
		case item.Time != "":
			return item.Time
		default:
			return "anytime"
		}
	},
}

// render выполняет шаблон и пишет результат в w
func render(w io.Writer, text string, data any) error {
	tmpl, err := template.New("out").Funcs(funcs).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	return nil
}

const tripListTemplate = `
=== Trips ===

{{- if eq (len .) 0 }}
No trips yet.

Use 'wanderlust trip add' to plan your first journey.

{{ else }}
Found {{len .}} trip(s):

{{- range . }}
- {{ if .IsPinned }}[pinned] {{ end }}{{ .Title }}
   ID:       {{ .ID }}
   Location: {{ .Location }}
   Dates:    {{ .StartDate }} .. {{ .EndDate }} ({{ .Status }})

{{- end }}
Use 'wanderlust trip show <id>' to see the plan.
{{- end }}
`

const tripDetailTemplate = `
=== {{ .Trip.Title }} ===

ID:        {{ .Trip.ID }}
Location:  {{ .Trip.Location }}
Dates:     {{ .Trip.StartDate }} .. {{ .Trip.EndDate }} ({{ .Trip.Status }})
{{- if .Trip.Description }}
About:     {{ .Trip.Description }}
{{- end }}

Budget:    {{ .Budget.Currency }}{{ money .Budget.Budget }}
Spent:     {{ .Budget.Currency }}{{ money .Budget.Actual }}
Estimated: {{ .Budget.Currency }}{{ money .Budget.Estimated }}
Remaining: {{ .Budget.Currency }}{{ money .Budget.Remaining }}{{ if .Budget.OverBudget }} (over budget){{ end }}
{{ range .Days }}
--- {{ .Date }}{{ if .Label }} ({{ .Label }}){{ end }}{{ if .Favorite }} ★{{ end }}{{ if .Rating }} {{ .Rating }}/5{{ end }} ---
{{- with .Flight }}
   ✈ {{ .Code }}{{ if .Gate }} gate {{ .Gate }}{{ end }}{{ if .Airport }} {{ .Airport }}{{ end }}
{{- end }}
{{- if eq (len .Items) 0 }}
   nothing planned
{{- end }}
{{- range .Items }}
   {{ when . }}  {{ .Title }} [{{ .Type }}] est {{ amount .EstimatedExpense }}{{ if .ActualExpense }}, spent {{ amount .ActualExpense }}{{ end }}  ({{ .ID }})
{{- end }}
{{ end -}}
`

const photoListTemplate = `
=== Album ===

{{- if eq (len .) 0 }}
No photos yet.
{{ else }}
{{- range . }}
- {{ if .IsFavorite }}♥ {{ end }}{{ .Caption }} ({{ .Type }}, {{ .Date }})
   ID: {{ .ID }}
   {{- range .Comments }}
   > {{ .Author }}: {{ .Text }}
   {{- end }}
{{- end }}
{{ end -}}
`

const memoListTemplate = `
=== Memos ===

{{- if eq (len .) 0 }}
No memos.
{{ else }}
{{- range . }}
- [{{ .Color }}] {{ .Text }} ({{ .Date }}, ID: {{ .ID }})
{{- end }}
{{ end -}}
`

const plannerListTemplate = `
=== Planner ===

{{- if eq (len .) 0 }}
No dates planned.
{{ else }}
{{- range . }}
- {{ .Date }}  {{ .Name }} [{{ .Type }}]{{ if .HasReminder }} reminder {{ .ReminderTime }}{{ end }}
{{- end }}
{{ end -}}
`

const profileTemplate = `
=== Profile ===

Name:        {{ .Name }}
Nationality: {{ .Nationality }}
Onboarded:   {{ .IsOnboarded }}
`

const statusTemplate = `
=== Status ===

Account:        {{ if .Username }}{{ .Username }}{{ else }}not logged in{{ end }}
Token:          {{ .Token }}
Local changes:  {{ .LocalModified }}
Cloud backup:   {{ .Remote }}
{{- if .Decision }}
Suggested sync: {{ .Decision }}
{{- end }}
`
