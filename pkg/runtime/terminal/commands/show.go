package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/de-tools/fmcg-atlas/pkg/runtime/terminal/export"
)

type ShowCmd struct {
	report   string
	views    ViewsFunc
	reporter *export.Reporter
}

func NewDashboardCmd(views ViewsFunc, reporter *export.Reporter) *cobra.Command {
	sc := &ShowCmd{report: ReportDashboard, views: views, reporter: reporter}
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print the sales insights dashboard",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}
}

func NewForecastCmd(views ViewsFunc, reporter *export.Reporter) *cobra.Command {
	sc := &ShowCmd{report: ReportForecast, views: views, reporter: reporter}
	return &cobra.Command{
		Use:   "forecast",
		Short: "Print the revenue, category and inventory forecast",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}
}

func (sc *ShowCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), DefaultTimeout)
	defer cancel()

	report, err := BuildReport(ctx, sc.views(), sc.report)
	if err != nil {
		return err
	}

	return sc.reporter.Handle(report)
}
