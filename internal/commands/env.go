package commands

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/bbanting/budgettool/internal/auditlog"
	"github.com/bbanting/budgettool/internal/config"
	"github.com/bbanting/budgettool/internal/gitops"
	"github.com/bbanting/budgettool/internal/period"
	"github.com/bbanting/budgettool/internal/store"
	"github.com/bbanting/budgettool/internal/target"
)

// env bundles the loaded collaborators a subcommand works against.
type env struct {
	root    string // ledger root (contains bt.yaml)
	records string // records directory
	cfg     *config.Config
	store   *store.Store
	targets *target.Service
}

// loadEnv loads the config and opens the store and target registry.
func loadEnv(rootDir string) (*env, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving ledger dir: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, err
	}

	records := cfg.Records.Dir
	if !filepath.IsAbs(records) {
		records = filepath.Join(root, records)
	}

	st, err := store.New(store.Config{Dir: records, Granularity: cfg.Granularity()})
	if err != nil {
		return nil, err
	}

	tg, err := target.Load(records)
	if err != nil {
		return nil, err
	}

	return &env{root: root, records: records, cfg: cfg, store: st, targets: tg}, nil
}

// activePeriod resolves a period argument, falling back to the configured
// active period and then to the current date.
func (e *env) activePeriod(arg string) (period.Period, error) {
	if arg != "" {
		return period.Parse(arg)
	}
	if p, ok := e.cfg.ActivePeriod(); ok {
		return p, nil
	}
	return period.Of(time.Now(), e.cfg.Granularity()), nil
}

// audit records a mutation in the audit log and auto-commits the ledger
// when configured. Neither failure blocks the already-persisted change.
func (e *env) audit(action, periodKey string, recordID int, details string) {
	err := auditlog.Append(e.records, auditlog.Entry{
		Timestamp: time.Now(),
		Action:    action,
		Period:    periodKey,
		RecordID:  recordID,
		Details:   details,
	})
	if err != nil {
		slog.Warn("audit log append failed", "error", err)
	}

	if !e.cfg.Git.AutoCommit || !gitops.IsRepo(e.root) {
		return
	}
	if !gitops.HasChanges(e.root) {
		return
	}
	msg := fmt.Sprintf("%s: %s", action, details)
	if _, err := gitops.CommitAll(e.root, msg, e.cfg.Git.AuthorName, e.cfg.Git.AuthorEmail); err != nil {
		slog.Warn("auto-commit failed", "error", err)
	}
}

// lineErrorWarnings prints any malformed rows collected for a period.
func (e *env) lineErrorWarnings(w io.Writer, p period.Period) {
	for _, le := range e.store.LineErrors(p) {
		fmt.Fprintf(w, "warning: %s: %v\n", p.FileName(), le)
	}
}

// confirm prompts for a yes/no answer on the command's input stream.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s (y/N) ", prompt)
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		return false
	}
	ans := strings.ToLower(strings.TrimSpace(sc.Text()))
	return ans == "y" || ans == "yes"
}
