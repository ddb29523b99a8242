package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/amlich-api/internal/calendar"
)

func newMonthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "month <year> <month>",
		Short: "Print every day of a Gregorian month with its lunar date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("month: invalid year %q", args[0])
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("month: invalid month %q", args[1])
			}

			days, err := a.conv.MonthInfo(year, time.Month(month))
			if err != nil {
				return fmt.Errorf("month: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, d := range days {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					calendar.FormatDate(d.Gregorian), d.Gregorian.Weekday().String()[:3],
					d.DayName, d.MonthName)
			}
			return tw.Flush()
		},
	}
}
