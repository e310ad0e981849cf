package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"spinframe/internal/animation"
	"spinframe/internal/optimizer"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// Console prints human-readable run output.
type Console struct {
	out      io.Writer
	colorize bool
	width    int
	style    table.Style
}

// NewConsole writes to out. Color, the rounded table style and width
// limiting are enabled only when out is a terminal.
func NewConsole(out io.Writer) *Console {
	c := &Console{out: out, style: table.StyleDefault}

	file, ok := out.(*os.File)
	if !ok {
		return c
	}
	fd := file.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return c
	}
	c.colorize = true
	c.style = table.StyleRounded
	if width, _, err := term.GetSize(int(fd)); err == nil && width > 0 {
		c.width = width
	}
	return c
}

func (c *Console) paint(color, s string) string {
	if !c.colorize {
		return s
	}
	return color + s + ansiReset
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// Section prints a header line for a pipeline.
func (c *Console) Section(title string) {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	c.printf("%s\n", line)
}

// Notice prints an informational line, such as a pipeline that found no
// input.
func (c *Console) Notice(format string, args ...interface{}) {
	c.printf(format+"\n", args...)
}

// Progress prints one line for an accepted result, e.g.
//
//	[3/12] 003.jpg -> WEBP (18 KiB, Q=90)
func (c *Console) Progress(i, n int, r optimizer.Result) {
	line := fmt.Sprintf("[%d/%d] %s -> %s (%s, Q=%d)", i, n, r.Source, r.Format,
		humanize.IBytes(uint64(r.Size)), r.Quality)
	if r.OverBudget {
		line += " " + c.paint(ansiYellow, "OVER BUDGET")
	}
	c.printf("%s\n", line)
}

// Loaded prints one line for a frame added to an animation.
func (c *Console) Loaded(i, n int, source string) {
	c.printf("[%d/%d] %s loaded\n", i, n, source)
}

// Skipped prints one line for a frame that produced no result.
func (c *Console) Skipped(i, n int, source string, err error) {
	c.printf("[%d/%d] %s -> %s: %v\n", i, n, source, c.paint(ansiRed, "skipped"), err)
}

// RenderSummary prints the per-format table followed by the frames that
// exceeded the budget, or a line saying there were none.
func (c *Console) RenderSummary(s Summary) {
	budget := humanize.IBytes(uint64(s.Budget))

	tw := table.NewWriter()
	tw.SetStyle(c.style)
	if c.width > 0 {
		tw.SetAllowedRowLength(c.width)
	}
	tw.SetTitle("Thumbnails (budget %s)", budget)
	tw.AppendHeader(table.Row{"Format", "Count", "Total", "Average"})

	for _, f := range optimizer.Formats {
		count := s.ByFormat[f]
		var total int64
		for _, r := range s.results(f) {
			total += r.Size
		}
		avg := "-"
		if count > 0 {
			avg = humanize.IBytes(uint64(total / int64(count)))
		}
		tw.AppendRow(table.Row{f.String(), count, humanize.IBytes(uint64(total)), avg})
	}
	tw.AppendFooter(table.Row{"All", s.Count, humanize.IBytes(uint64(s.TotalBytes)), humanize.IBytes(uint64(s.Average()))})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	c.printf("%s\n", tw.Render())

	if s.Failed > 0 {
		c.printf("%s: %d of %d source files\n", c.paint(ansiRed, "Skipped"), s.Failed, s.Found)
	}

	if len(s.OverBudget) == 0 {
		c.printf("%s\n", c.paint(ansiGreen, fmt.Sprintf("All %d thumbnails within budget (%s)", s.Count, budget)))
		return
	}

	c.printf("%s\n", c.paint(ansiYellow, fmt.Sprintf("%d exceeding budget (%s):", len(s.OverBudget), budget)))
	for _, r := range s.OverBudget {
		c.printf("  %s -> %s Q=%d, %s\n", r.Source, r.Format, r.Quality, humanize.IBytes(uint64(r.Size)))
	}
}

// RenderAnimation prints a one-block summary of a written animation.
func (c *Console) RenderAnimation(info animation.Info) {
	frames := fmt.Sprintf("%d", info.Frames)
	if info.Available > 0 {
		frames = fmt.Sprintf("%d of %d", info.Frames, info.Available)
	}

	tw := table.NewWriter()
	tw.SetStyle(c.style)
	tw.SetTitle("Animation")
	tw.AppendRows([]table.Row{
		{"File", info.Path},
		{"Canvas", fmt.Sprintf("%dx%d", info.Width, info.Height)},
		{"Frames", frames},
		{"Frame delay", info.Delay.String()},
		{"Size", humanize.IBytes(uint64(info.Size))},
	})
	c.printf("%s\n", tw.Render())
}
