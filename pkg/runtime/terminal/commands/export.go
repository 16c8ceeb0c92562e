package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/fmcg-atlas/pkg/runtime/terminal/export"
)

// Stdout as --out streams an XLSX workbook to standard output.
const Stdout = "-"

type ExportCmd struct {
	report string
	format string
	out    string
	views  ViewsFunc
}

func NewExportCmd(views ViewsFunc) *cobra.Command {
	ec := &ExportCmd{views: views}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a view to CSV files or an XLSX workbook",
		Long: "Export every table of a view. CSV writes one <section>.csv per section into the --out\n" +
			"directory; XLSX writes a single workbook at --out with one sheet per section, or to\n" +
			"standard output when --out is -.",
		Args: cobra.NoArgs,
		RunE: ec.run,
	}

	cmd.Flags().StringVar(&ec.report, "report", "", "View to export (dashboard or forecast)")
	cmd.Flags().StringVar(&ec.format, "format", export.FormatCSV, "Output format (csv or xlsx)")
	cmd.Flags().StringVar(&ec.out, "out", "", "Output directory for csv, output file for xlsx (- for stdout)")

	_ = cmd.MarkFlagRequired("report")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	if err := export.ValidateFormat(ec.format); err != nil {
		return err
	}
	if ec.out == Stdout && ec.format != export.FormatXLSX {
		return fmt.Errorf("--out %s is only supported with --format %s", Stdout, export.FormatXLSX)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), DefaultTimeout)
	defer cancel()

	report, err := BuildReport(ctx, ec.views(), ec.report)
	if err != nil {
		return err
	}

	logger := zerolog.Ctx(ctx)
	out := cmd.OutOrStdout()

	if ec.format == export.FormatXLSX {
		if ec.out == Stdout {
			return export.WriteXLSX(out, report)
		}
		if err := export.SaveXLSX(ec.out, report); err != nil {
			return err
		}
		logger.Debug().Str("path", ec.out).Int("sheets", len(report.Sections)).Msg("workbook written")
		_, err = fmt.Fprintf(out, "Wrote %s\n", ec.out)
		return err
	}

	paths, err := export.WriteCSV(ec.out, report)
	if err != nil {
		return err
	}
	logger.Debug().Str("dir", ec.out).Int("files", len(paths)).Msg("csv files written")
	for _, p := range paths {
		if _, err := fmt.Fprintf(out, "Wrote %s\n", p); err != nil {
			return err
		}
	}
	return nil
}
