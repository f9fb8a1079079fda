package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/nihei9/ffgram/spec"
	"github.com/pterm/pterm"
)

const (
	formatText  = "text"
	formatTable = "table"
	formatJSON  = "json"
)

type reportWriterFunc func(w io.Writer, report *spec.Report) error

func reportWriter(format string) (reportWriterFunc, error) {
	switch format {
	case formatText:
		return writeReport, nil
	case formatTable:
		return writeReportTable, nil
	case formatJSON:
		return writeReportJSON, nil
	}
	return nil, fmt.Errorf("Unknown format: %v (text, table, or json is available)", format)
}

const reportTemplate = `# Grammar

Start symbol: {{ .Start }}

{{ range .NonTerminals -}}
{{ $nt := .Name -}}
{{ range .Alternatives -}}
{{ printAlternative $nt . }}
{{ end -}}
{{ end }}
# FIRST

{{ range .NonTerminals -}}
{{ printSet "FIRST" .Name .First }}{{ if .Nullable }} (nullable){{ end }}
{{ end }}
# FOLLOW

{{ range .NonTerminals -}}
{{ printSet "FOLLOW" .Name .Follow }}
{{ end -}}
{{ with unreachable . }}
# Unreachable

{{ range . -}}
{{ . }}
{{ end -}}
{{ end }}`

func writeReport(w io.Writer, report *spec.Report) error {
	fns := template.FuncMap{
		"printAlternative": func(nt string, alt *spec.Alternative) string {
			return fmt.Sprintf("%4v  %v -> %v", alt.Row, nt, strings.Join(alt.Symbols, " "))
		},
		"printSet": func(kind string, nt string, syms []string) string {
			return fmt.Sprintf("%v(%v) = %v", kind, nt, formatSet(syms))
		},
		"unreachable": func(report *spec.Report) []string {
			var nts []string
			for _, nt := range report.NonTerminals {
				if !nt.Reachable {
					nts = append(nts, nt.Name)
				}
			}
			return nts
		},
	}

	tmpl, err := template.New("").Funcs(fns).Parse(reportTemplate)
	if err != nil {
		return err
	}

	err = tmpl.Execute(w, report)
	if err != nil {
		return err
	}

	return nil
}

func formatSet(syms []string) string {
	return "{" + strings.Join(syms, ", ") + "}"
}

func writeReportTable(w io.Writer, report *spec.Report) error {
	data := pterm.TableData{
		{"Non-terminal", "FIRST", "FOLLOW", "Nullable", "Reachable"},
	}
	for _, nt := range report.NonTerminals {
		data = append(data, []string{
			nt.Name,
			formatSet(nt.First),
			formatSet(nt.Follow),
			fmt.Sprintf("%v", nt.Nullable),
			fmt.Sprintf("%v", nt.Reachable),
		})
	}
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

func writeReportJSON(w io.Writer, report *spec.Report) error {
	b, err := json.Marshal(report)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%v\n", string(b))
	return err
}
