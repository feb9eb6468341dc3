package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jobradar/jobradar/internal/ai"
	"github.com/jobradar/jobradar/internal/analyze"
	"github.com/jobradar/jobradar/internal/baseline"
	"github.com/jobradar/jobradar/internal/feed"
	"github.com/jobradar/jobradar/internal/mail"
	"github.com/jobradar/jobradar/internal/models"
	"github.com/jobradar/jobradar/internal/network"
	"github.com/jobradar/jobradar/internal/parser"
	"github.com/jobradar/jobradar/internal/scan"
)

type ScanCmd struct {
	Days      int    `help:"Scan messages from the last N days." default:"0"`
	Mailbox   string `help:"Mailbox export file (overrides config)."`
	NoAnalyze bool   `help:"Skip the detailed AI analysis pass."`
	NoFeeds   bool   `help:"Skip RSS feed ingestion."`
}

func (s *ScanCmd) Run(ctx *Context) error {
	bg := context.Background()

	session, cleanup, err := buildSession(bg, ctx, s)
	if err != nil {
		return err
	}
	defer cleanup()

	days := s.Days
	if days <= 0 {
		days = ctx.Config.ScanLookbackDays
	}
	since := time.Now().AddDate(0, 0, -days)

	result, err := session.Run(bg, since)
	if err != nil {
		return err
	}

	return reportScan(ctx, result)
}

func buildSession(bg context.Context, ctx *Context, s *ScanCmd) (*scan.Session, func(), error) {
	mailboxPath := s.Mailbox
	if mailboxPath == "" {
		mailboxPath = ctx.Config.MailboxPath
	}
	if strings.TrimSpace(mailboxPath) == "" {
		return nil, nil, fmt.Errorf("no mailbox configured: set mailbox_path or pass --mailbox")
	}

	st, err := ctx.openStore(bg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = st.Close() }

	registry, err := buildRegistry(bg, st)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	var provider ai.Provider
	if !s.NoAnalyze {
		provider, err = ai.New(ctx.Config.AI)
		if err != nil {
			ctx.UI.Warnf("analysis disabled: %v", err)
			provider = nil
		}
	}

	var extractor parser.Extractor
	if provider != nil {
		extractor = provider
	}
	dispatch := parser.NewDispatch(registry, extractor, ctx.Logger)

	var analyzer scan.Analyzer
	if provider != nil {
		resumes, err := ai.LoadResumes(ctx.Config.ResumeDir)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		analyzer = analyze.New(provider, st, resumes, analyze.Options{
			Concurrency:  ctx.Config.AI.Concurrency,
			MaxAttempts:  ctx.Config.AI.MaxAttempts,
			InitialDelay: ctx.Config.AI.RetryDelay(),
		}, ctx.Logger)
	}

	var feeds scan.Feeds
	if !s.NoFeeds && len(ctx.Config.FeedURLs) > 0 {
		var rotator *network.Rotator
		if len(ctx.Config.ProxyURLs) > 0 {
			rotator, err = network.NewRotator(ctx.Config.ProxyURLs, ctx.Config.ProxyBanDuration())
			if err != nil {
				cleanup()
				return nil, nil, err
			}
		}
		client, err := network.NewClient(rotator)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		feeds = feed.New(client, ctx.Config.FeedURLs, ctx.Logger)
	}

	mailbox := &mail.FileMailbox{Path: mailboxPath}
	session := scan.NewSession(mailbox, dispatch, feeds, st, baseline.New(ctx.Config), analyzer, ctx.Config, ctx.Logger)
	return session, cleanup, nil
}

func reportScan(ctx *Context, result models.ScanResult) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	ctx.UI.Successf("Scan %s: %d found, %d new, %d updated, %d analyzed, %d follow-ups",
		result.RunID, result.JobsFound, result.JobsNew, result.JobsUpdated,
		result.JobsAnalyzed, result.FollowUps)

	if ctx.Verbose {
		for _, e := range result.Errors {
			ctx.UI.Warnf("  %s %s: %s", e.Stage, e.Ref, e.Err)
		}
	} else if len(result.Errors) > 0 {
		ctx.UI.Warnf("%d items failed; rerun with --verbose for details", len(result.Errors))
	}
	return nil
}
