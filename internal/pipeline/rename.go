package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/newsbinder/internal/images"
	"github.com/lehigh-university-libraries/newsbinder/internal/naming"
	"github.com/lehigh-university-libraries/newsbinder/internal/progress"
	"github.com/lehigh-university-libraries/newsbinder/internal/workspace"
)

// rename places every source into ws under its workspace name and returns the
// placed paths. Per-file problems are logged and counted; only cancellation
// stops the stage. With trackOrigins set, moved files remember their source
// path for restore.
func (r *run) rename(ctx context.Context, sources []string, ws *workspace.Workspace, trackOrigins bool) ([]string, error) {
	log := r.log.With("stage", "rename")
	span := progress.Span{From: progress.RenameStart, To: progress.RenameEnd}
	placed := make([]string, 0, len(sources))

	for i, src := range sources {
		base := filepath.Base(src)

		if err := r.check(ctx); err != nil {
			return placed, err
		}
		if _, err := images.Validate(src, r.opts.Limits); err != nil {
			log.Warn("Skipping invalid image", "file", base, "error", err)
			r.result.Invalid++
			r.tracker.Report(fmt.Sprintf("Skipped %s", base), span.At(i+1, len(sources)))
			continue
		}
		if err := r.check(ctx); err != nil {
			return placed, err
		}

		ext := filepath.Ext(base)
		rec, err := r.parser.Parse(strings.TrimSuffix(base, ext))
		if err != nil {
			log.Warn("Rejecting unparseable filename", "file", base, "error", err)
			r.result.Rejected++
			r.tracker.Report(fmt.Sprintf("Skipped %s", base), span.At(i+1, len(sources)))
			continue
		}
		if rec.PrefixMissing {
			log.Warn("Catalog code has no prefix, using whole token", "file", base, "code", rec.CatalogCode)
		}
		if rec.DateInvalid {
			log.Warn("Unparseable capture date, using sentinel", "file", base, "date", naming.SentinelDate)
		}

		publication := r.resolve(rec.LookupKey)
		name := naming.WorkspaceName(rec, publication, ext)

		if err := r.check(ctx); err != nil {
			return placed, err
		}
		dst, err := ws.Place(src, name, r.opts.KeepOriginals)
		if err != nil {
			log.Error("Failed to place file in workspace", "file", base, "error", err)
			r.result.NotPlaced++
			continue
		}
		placed = append(placed, dst)
		r.result.Placed++
		if trackOrigins {
			r.origins[dst] = src
		}

		log.Debug("Renamed", "from", base, "to", filepath.Base(dst))
		r.tracker.Report(fmt.Sprintf("Renamed %s", base), span.At(i+1, len(sources)))

		if err := r.check(ctx); err != nil {
			return placed, err
		}
	}

	return placed, nil
}

// resolve looks up a publication name, recording misses.
func (r *run) resolve(code string) string {
	if r.lookup != nil {
		if name, ok := r.lookup.Resolve(code); ok {
			return name
		}
	}
	if _, seen := r.unknown[code]; !seen {
		r.log.Warn("Unknown catalog code", "code", code)
	}
	r.unknown[code] = struct{}{}
	return naming.Unknown
}
