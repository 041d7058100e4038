package linkcheck

import (
	"fmt"
	"log/slog"

	"github.com/kevinreber/sitecfg/internal/foundation/errors"
	"github.com/kevinreber/sitecfg/internal/logfields"
	"github.com/kevinreber/sitecfg/internal/site"
)

// Policy names, as spelled in the site record.
const (
	PolicyBrokenLinks         = "onBrokenLinks"
	PolicyBrokenMarkdownLinks = "onBrokenMarkdownLinks"
	PolicyInlineTags          = "onInlineTags"
	PolicyInlineAuthors       = "onInlineAuthors"
	PolicyUntruncatedPosts    = "onUntruncatedBlogPosts"
)

// Finding is one policy violation.
type Finding struct {
	Policy   string
	Severity site.Severity
	// Source is the content file or record field the problem was found in.
	Source  string
	Target  string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s (%s)", f.Source, f.Message, f.Policy)
}

// Report summarises a check run. Findings at ignore level are not recorded.
type Report struct {
	Pages    int
	Routes   int
	Findings []Finding
}

// Count returns the number of findings at severity s.
func (r *Report) Count(s site.Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			n++
		}
	}
	return n
}

// Err returns a single links error listing every throw-level finding, or nil.
func (r *Report) Err() error {
	var halting []string
	for _, f := range r.Findings {
		if f.Severity.Halts() {
			halting = append(halting, f.String())
		}
	}
	if len(halting) == 0 {
		return nil
	}
	return errors.LinkError(fmt.Sprintf("%d link check finding(s) at throw level", len(halting))).
		WithContext("findings", halting).
		Build()
}

// record applies the finding's severity: ignore drops it, log and warn emit
// at info and warn level, throw logs at error level and is kept for Err.
func (r *Report) record(logger *slog.Logger, f Finding) {
	attrs := []any{
		logfields.Policy(f.Policy),
		logfields.File(f.Source),
		logfields.Href(f.Target),
	}
	switch f.Severity {
	case site.SeverityIgnore:
		return
	case site.SeverityLog:
		logger.Info(f.Message, attrs...)
	case site.SeverityWarn:
		logger.Warn(f.Message, attrs...)
	default:
		logger.Error(f.Message, attrs...)
	}
	r.Findings = append(r.Findings, f)
}
