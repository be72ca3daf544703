package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briefmate/briefmate/internal/database"
	"github.com/briefmate/briefmate/internal/export"
	"github.com/briefmate/briefmate/internal/filters"
	"github.com/briefmate/briefmate/internal/repository"
	"github.com/briefmate/briefmate/internal/services"
	"github.com/briefmate/briefmate/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type exportOptions struct {
	email    string
	format   string
	out      string
	search   string
	status   string
	priority string
	client   string
}

func exportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's briefs as CSV or PDF",
		Long: `Export the briefs of one account with the same filters as the API.

Examples:
  briefmate export --email me@example.com --format csv --out briefs.csv
  briefmate export --email me@example.com --format pdf --status IN_PROGRESS --out -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "csv" && opts.format != "pdf" {
				return fmt.Errorf("unsupported format %q (want csv or pdf)", opts.format)
			}

			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			db := database.GetDB()

			user, err := repository.NewUserRepository(db).FindByEmail(opts.email)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("no account for %s", opts.email)
				}
				return fmt.Errorf("failed to find user: %w", err)
			}

			filter := filters.ParseBriefFilter(opts.search, opts.status, opts.priority, opts.client)
			rows, err := services.NewExportService(repository.NewBriefRepository(db)).Rows(user.ID, filter)
			if err != nil {
				return err
			}

			return writeExport(opts, rows, time.Now().In(cfg.Location()), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "account email")
	cmd.Flags().StringVar(&opts.format, "format", "csv", "output format: csv or pdf")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file, - for stdout (defaults to briefmate-export-DATE.FORMAT)")
	cmd.Flags().StringVar(&opts.search, "search", "", "text searched in title and description")
	cmd.Flags().StringVar(&opts.status, "status", "", "brief status")
	cmd.Flags().StringVar(&opts.priority, "priority", "", "brief priority")
	cmd.Flags().StringVar(&opts.client, "client", "", "client ID")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func writeExport(opts exportOptions, rows []export.Row, now time.Time, stdout io.Writer) error {
	out := opts.out
	if out == "" {
		out = utils.ExportFilename(now, opts.format)
	}

	var w io.Writer = stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	var err error
	switch opts.format {
	case "csv":
		err = export.WriteCSV(w, rows, now.Location())
	case "pdf":
		err = export.WritePDF(w, rows, now)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s export: %w", opts.format, err)
	}

	if out != "-" {
		log.Info("Export written", "file", out, "briefs", len(rows))
	}
	return nil
}
