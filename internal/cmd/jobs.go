package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"github.com/jobradar/jobradar/internal/export"
	"github.com/jobradar/jobradar/internal/models"
	"github.com/jobradar/jobradar/internal/score"
	"github.com/jobradar/jobradar/internal/store"
)

type JobsCmd struct {
	Status   string  `help:"Filter by status (comma-separated)."`
	Source   string  `help:"Filter by source."`
	MinScore float64 `help:"Minimum composite score."`
	Limit    int     `help:"Maximum rows." default:"50"`
	All      bool    `help:"Include soft-deleted jobs."`
	Format   string  `help:"Output format: table, csv, tsv, json, md." enum:",table,csv,tsv,json,md" default:""`
	Links    string  `help:"Table link display: short or full." enum:"short,full" default:"short"`
	Output   string  `name:"output" short:"o" help:"Write output to a file."`
}

func (j *JobsCmd) Run(ctx *Context) error {
	bg := context.Background()

	st, err := ctx.openStore(bg)
	if err != nil {
		return err
	}
	defer st.Close()

	filter := store.Filter{
		Source:         j.Source,
		MinScore:       j.MinScore,
		IncludeDeleted: j.All,
	}
	for _, raw := range strings.Split(j.Status, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parsed, err := models.ParseStatus(raw)
		if err != nil {
			return err
		}
		filter.Statuses = append(filter.Statuses, parsed)
	}

	jobs, err := st.List(bg, filter)
	if err != nil {
		return err
	}
	score.Sort(jobs)
	if j.Limit > 0 && len(jobs) > j.Limit {
		jobs = jobs[:j.Limit]
	}

	format, err := resolveFormat(ctx, j.Format, j.Output)
	if err != nil {
		return err
	}

	writer := ctx.Out
	if j.Output != "" {
		file, err := os.Create(j.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled && j.Output == ""
	hyperlinks := colorEnabled && isTTY(writer)
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(j.Links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}

	if err := export.WriteJobs(writer, jobs, format, export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   hyperlinks,
		LinkStyle:    linkStyle,
	}); err != nil {
		return err
	}

	if format == export.FormatTable {
		fmt.Fprintf(ctx.Err, "%d job(s)\n", len(jobs))
	}
	return nil
}

func resolveFormat(ctx *Context, flagValue, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if flagValue != "" {
		return export.ParseFormat(flagValue)
	}
	if outputPath != "" {
		return export.FormatCSV, nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}
