package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version VersionCmd `cmd:"" help:"Print version."`
	Config  ConfigCmd  `cmd:"" help:"Manage configuration."`
	Scan    ScanCmd    `cmd:"" help:"Scan the mailbox and feeds for new jobs."`
	Jobs    JobsCmd    `cmd:"" help:"List tracked jobs."`
	Status  StatusCmd  `cmd:"" help:"Change a job's application status."`
	Rescore RescoreCmd `cmd:"" help:"Recompute composite scores."`
	Sources SourcesCmd `cmd:"" help:"Manage email sources."`
	Watch   WatchCmd   `cmd:"" help:"Run scans on a schedule."`
}

func NewCLI() *CLI {
	return &CLI{}
}
