package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bbanting/budgettool/internal/model"
	"github.com/bbanting/budgettool/internal/pager"
	"github.com/bbanting/budgettool/internal/period"
	"github.com/bbanting/budgettool/internal/store"
	"github.com/bbanting/budgettool/internal/tagquery"
)

func newListCommand(rootDir *string) *cobra.Command {
	var periodArg, queryArg, targetArg, kindArg, fromArg, toArg string
	var pageArg, widthArg int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List records, filtered and paged",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(*rootDir)
			if err != nil {
				return err
			}

			f := store.Filter{}

			if periodArg != "all" {
				p, err := e.activePeriod(periodArg)
				if err != nil {
					return err
				}
				f.Periods = period.Range{From: p, To: p}
			}
			if queryArg != "" {
				q, err := tagquery.Parse(queryArg)
				if err != nil {
					return err
				}
				f.Query = q
			}
			if targetArg != "" {
				f.Target = targetArg
			}
			if kindArg != "" {
				k, err := model.ParseKind(kindArg)
				if err != nil {
					return err
				}
				f.Kind = k
			}
			if fromArg != "" {
				if f.From, err = time.Parse("2006-01-02", fromArg); err != nil {
					return fmt.Errorf("parsing --from: %w", err)
				}
			}
			if toArg != "" {
				if f.To, err = time.Parse("2006-01-02", toArg); err != nil {
					return fmt.Errorf("parsing --to: %w", err)
				}
			}

			seq, err := e.store.List(f)
			if err != nil {
				return err
			}

			width := widthArg
			if width == 0 {
				width = e.cfg.Display.Width
			}
			buf := pager.New(width, e.cfg.Display.Numbered)

			for rec := range seq {
				buf.Push(renderRecord(rec))
			}

			out := cmd.OutOrStdout()
			if buf.Len() == 0 {
				fmt.Fprintln(out, "No records.")
				return nil
			}

			fmt.Fprintln(out, listHeader())
			lines, hasMore, err := pageAt(buf, pageArg, e.cfg.Display.PageHeight)
			if err != nil {
				return err
			}
			for _, l := range lines {
				fmt.Fprintln(out, l)
			}
			if hasMore {
				fmt.Fprintf(out, "... more (use --page %d)\n", pageArg+1)
			}

			sum, err := e.store.Sum(f)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nRunning total: %s\n", dollarStr(sum))
			return nil
		},
	}

	cmd.Flags().StringVar(&periodArg, "period", "", "period to list (e.g. 2025-08, 2025, or 'all')")
	cmd.Flags().StringVarP(&queryArg, "query", "q", "", "tag query ('+' = and, space = or, '!' = not)")
	cmd.Flags().StringVar(&targetArg, "target", "", "filter by target")
	cmd.Flags().StringVar(&kindArg, "kind", "", "filter by kind (expense or earning)")
	cmd.Flags().StringVar(&fromArg, "from", "", "earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toArg, "to", "", "latest date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&pageArg, "page", 1, "page number")
	cmd.Flags().IntVar(&widthArg, "width", 0, "terminal width override")

	return cmd
}

// pageAt walks the buffer page by page to the requested 1-based page.
func pageAt(buf *pager.Buffer, page, height int) ([]string, bool, error) {
	if page < 1 {
		page = 1
	}
	offset := 0
	for {
		lines, hasMore, err := buf.Page(offset, height)
		if err != nil {
			return nil, false, err
		}
		page--
		if page == 0 || !hasMore {
			return lines, hasMore, nil
		}
		offset += len(lines)
	}
}
