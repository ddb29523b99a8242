package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/amlich-api/internal/calendar"
	"github.com/zapponejosh/amlich-api/internal/sexagenary"
)

func newInfoCmd(a *app) *cobra.Command {
	var clock string
	var hours bool

	cmd := &cobra.Command{
		Use:   "info <YYYY-MM-DD>",
		Short: "Show the stem-branch (can chi) of a date's year, month, day and hour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := calendar.ParseDateTime(args[0], clock)
			if err != nil {
				return fmt.Errorf("info: %w", err)
			}

			info, err := a.calc.FullInfo(t)
			if err != nil {
				return fmt.Errorf("info: %w", err)
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Năm\t%s\t%s\t%s\n", info.Year.Name(), info.Year.Han(), info.Year.Branch.Zodiac().VietnameseName())
			fmt.Fprintf(tw, "Tháng\t%s\t%s\t%s\n", info.Month.Name(), info.Month.Han(), calendar.MonthName(info.LunarMonth, info.IsLeapMonth))
			fmt.Fprintf(tw, "Ngày\t%s\t%s\t%s\n", info.Day.Name(), info.Day.Han(), info.Day.Stem.Element().VietnameseName())
			if info.Hour != nil {
				fmt.Fprintf(tw, "Giờ\t%s\t%s\t%s\n", info.Hour.Name(), info.Hour.Han(), info.Hour.Branch.Window())
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if hours {
				fmt.Fprintln(out)
				for _, hb := range sexagenary.AllHourBranches(t) {
					marker := " "
					if hb.Current && info.Hour != nil {
						marker = "*"
					}
					fmt.Fprintf(out, "%s %-12s %s\n", marker, hb.Window, hb.Name())
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&clock, "time", "", "clock time HH:MM")
	cmd.Flags().BoolVar(&hours, "hours", false, "list the twelve two-hour periods")
	return cmd
}
