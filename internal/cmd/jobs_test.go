package cmd

import (
	"bytes"
	"testing"

	"github.com/jobradar/jobradar/internal/export"
)

func TestResolveFormat(t *testing.T) {
	var out bytes.Buffer
	ctx := &Context{Out: &out}

	format, err := resolveFormat(ctx, "", "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	// A buffer is not a TTY, so the default is CSV.
	if format != export.FormatCSV {
		t.Fatalf("default format = %q", format)
	}

	format, err = resolveFormat(ctx, "md", "")
	if err != nil || format != export.FormatMarkdown {
		t.Fatalf("explicit format = %q, %v", format, err)
	}

	ctx.JSONOutput = true
	format, err = resolveFormat(ctx, "md", "")
	if err != nil || format != export.FormatJSON {
		t.Fatalf("--json should win, got %q, %v", format, err)
	}
	ctx.JSONOutput = false

	ctx.PlainText = true
	format, err = resolveFormat(ctx, "", "")
	if err != nil || format != export.FormatTSV {
		t.Fatalf("--plain should force TSV, got %q, %v", format, err)
	}
	ctx.PlainText = false

	format, err = resolveFormat(ctx, "", "report.csv")
	if err != nil || format != export.FormatCSV {
		t.Fatalf("file output defaults to CSV, got %q, %v", format, err)
	}

	if _, err := resolveFormat(ctx, "yaml", ""); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
