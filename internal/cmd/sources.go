package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jobradar/jobradar/internal/models"
	"github.com/jobradar/jobradar/internal/source"
)

type SourcesCmd struct {
	List    ListSourcesCmd   `cmd:"" default:"1" help:"List registered sources."`
	Add     AddSourceCmd     `cmd:"" help:"Add a user-defined source."`
	Enable  EnableSourceCmd  `cmd:"" help:"Enable a source."`
	Disable DisableSourceCmd `cmd:"" help:"Disable a source."`
}

type ListSourcesCmd struct{}

func (l *ListSourcesCmd) Run(ctx *Context) error {
	bg := context.Background()

	st, err := ctx.openStore(bg)
	if err != nil {
		return err
	}
	defer st.Close()

	registry, err := buildRegistry(bg, st)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "id\tname\tmatch\tparser\tenabled\tbuiltin")
	for _, src := range registry.All() {
		match := src.SenderEmail
		if match == "" {
			match = src.SenderPattern
		}
		parser := src.Parser
		if parser == "" {
			parser = "generic"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%t\n",
			src.ID, src.Name, match, parser, src.Enabled, src.Builtin)
	}
	return tw.Flush()
}

type AddSourceCmd struct {
	ID       string `arg:"" help:"Unique source id."`
	Name     string `help:"Display name." required:""`
	Sender   string `help:"Exact sender email address."`
	Pattern  string `help:"Sender regular expression."`
	Subject  string `help:"Comma-separated subject keywords."`
	Category string `help:"Source category." default:"job_alert"`
	Parser   string `help:"Parser name; empty for generic extraction." enum:",linkedin,indeed,greenhouse,wellfound,weworkremotely" default:""`
}

func (a *AddSourceCmd) Run(ctx *Context) error {
	bg := context.Background()

	src := models.EmailSource{
		ID:            a.ID,
		Name:          a.Name,
		SenderEmail:   a.Sender,
		SenderPattern: a.Pattern,
		Category:      a.Category,
		Parser:        a.Parser,
		Enabled:       true,
	}
	for _, kw := range strings.Split(a.Subject, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			src.SubjectKeywords = append(src.SubjectKeywords, kw)
		}
	}
	if err := source.Validate(src); err != nil {
		return err
	}

	st, err := ctx.openStore(bg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SaveSource(bg, src); err != nil {
		return err
	}
	ctx.UI.Successf("Added source %s", src.ID)
	return nil
}

type EnableSourceCmd struct {
	ID string `arg:"" help:"Source id."`
}

func (e *EnableSourceCmd) Run(ctx *Context) error {
	return toggleSource(ctx, e.ID, true)
}

type DisableSourceCmd struct {
	ID string `arg:"" help:"Source id."`
}

func (d *DisableSourceCmd) Run(ctx *Context) error {
	return toggleSource(ctx, d.ID, false)
}

func toggleSource(ctx *Context, id string, enable bool) error {
	bg := context.Background()

	st, err := ctx.openStore(bg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SetSourceEnabled(bg, id, enable); err == nil {
		ctx.UI.Successf("Source %s enabled=%t", id, enable)
		return nil
	}

	// Builtins are not stored until first toggled.
	for _, builtin := range source.Builtins() {
		if builtin.ID == id {
			builtin.Enabled = enable
			if err := st.SaveSource(bg, builtin); err != nil {
				return err
			}
			ctx.UI.Successf("Source %s enabled=%t", id, enable)
			return nil
		}
	}
	return fmt.Errorf("unknown source %q", id)
}
