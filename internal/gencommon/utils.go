package gencommon

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// PrintSkipMessage prints a skip message for unchanged files
func PrintSkipMessage(w io.Writer, path string) {
	fmt.Fprintf(w, "⏭️  Skipping %s (unchanged)\n", path)
}

// PrintGenerateMessage prints a generation message
func PrintGenerateMessage(w io.Writer, path string) {
	fmt.Fprintf(w, "🔄 Generating %s\n", path)
}

// SuccessLog lists the generated artifact names of each table, one table
// per line.
func SuccessLog(reports []*Report) string {
	var lines []string
	for _, rep := range reports {
		if len(rep.Artifacts) == 0 {
			continue
		}
		names := make([]string, len(rep.Artifacts))
		for i, a := range rep.Artifacts {
			names[i] = a.Name
		}
		lines = append(lines, rep.Table+": "+strings.Join(names, ", "))
	}
	return strings.Join(lines, "\n")
}

// ErrorLog lists the failed artifacts per table as "Table-Create, Update".
// A table that failed as a whole is listed with its error.
func ErrorLog(reports []*Report) string {
	var lines []string
	for _, rep := range reports {
		switch {
		case rep.Err != nil:
			lines = append(lines, rep.Table+"-"+rep.Err.Error())
		case len(rep.Failures) > 0:
			names := make([]string, len(rep.Failures))
			for i, f := range rep.Failures {
				names[i] = f.Artifact
			}
			lines = append(lines, rep.Table+"-"+strings.Join(names, ", "))
		}
	}
	return strings.Join(lines, "\n")
}

// PrintReports prints warnings and failures per table followed by a summary.
func PrintReports(w io.Writer, reports []*Report) {
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	for _, rep := range reports {
		for _, warn := range rep.Warnings {
			yellow.Fprintf(w, "⚠️  %s\n", warn)
		}
		for _, f := range rep.Failures {
			red.Fprintf(w, "❌ %s-%s: %v\n", rep.Table, f.Artifact, f.Err)
		}
		if rep.Err != nil {
			red.Fprintf(w, "❌ %s: %v\n", rep.Table, rep.Err)
		}
	}

	if done := SuccessLog(reports); done != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, done)
	}

	if errs := ErrorLog(reports); errs != "" {
		fmt.Fprintln(w)
		red.Fprintln(w, "The following artifacts were not able to be generated:")
		fmt.Fprintln(w, errs)
		return
	}
	green.Fprintf(w, "✅ Generated %d table(s) successfully\n", len(reports))
}
