package helpers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/doeshing/actionguard/internal/domain"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// Renderer prints verdicts and reports, coloring them on terminals.
type Renderer struct {
	out   io.Writer
	color bool
}

// NewRenderer colors output only when out is a terminal and NO_COLOR is unset.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out, color: supportsColor(out)}
}

func supportsColor(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (r *Renderer) paint(color, text string) string {
	if !r.color {
		return text
	}
	return color + text + ansiReset
}

// Verdict prints a one-line diagnostic for a single validation.
func (r *Renderer) Verdict(action, input string, v domain.Verdict) {
	if v.Accepted {
		fmt.Fprintf(r.out, "%s %s/%s (%s)\n", r.paint(ansiGreen, "ACCEPT"), action, input, v.Kind)
		return
	}
	line := fmt.Sprintf("%s %s", r.paint(ansiRed, "REJECT"), v.Reason)
	if v.Detail != "" {
		line += ": " + v.Detail
	}
	fmt.Fprintf(r.out, "%s [%s/%s]\n", line, action, input)
}

// BatchReport prints per-case results followed by a summary.
func (r *Renderer) BatchReport(report domain.BatchReport, verbose bool) {
	for _, res := range report.Results {
		switch {
		case res.Skipped:
			fmt.Fprintf(r.out, "%s %s\n", r.paint(ansiYellow, "SKIP"), res.Case.Name)
		case res.Mismatch != "":
			fmt.Fprintf(r.out, "%s %s: %s\n", r.paint(ansiRed, "FAIL"), res.Case.Name, res.Mismatch)
		case verbose:
			fmt.Fprintf(r.out, "%s %s: %s\n", r.paint(ansiGreen, "PASS"), res.Case.Name, res.Verdict)
		}
	}
	fmt.Fprintf(r.out, "%s cases: %s accepted, %s rejected, %s skipped, %s failed expectations\n",
		humanize.Comma(int64(len(report.Results))),
		humanize.Comma(int64(report.Accepted)),
		humanize.Comma(int64(report.Rejected)),
		humanize.Comma(int64(report.Skipped)),
		humanize.Comma(int64(report.Failed)))
}

// HealthReport prints doctor checks.
func (r *Renderer) HealthReport(report domain.HealthReport) {
	for _, check := range report.Checks {
		status := strings.ToUpper(string(check.Status))
		switch check.Status {
		case domain.HealthOK:
			status = r.paint(ansiGreen, status)
		case domain.HealthWarn:
			status = r.paint(ansiYellow, status)
		case domain.HealthError:
			status = r.paint(ansiRed, status)
		}
		fmt.Fprintf(r.out, "[%s] %s - %s\n", status, check.Name, check.Details)
	}
}
