package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/amlich-api/internal/calendar"
	"github.com/zapponejosh/amlich-api/internal/holiday"
)

func newHolidaysCmd(a *app) *cobra.Command {
	var month int
	var publicOnly bool
	var query string

	cmd := &cobra.Command{
		Use:   "holidays <year>",
		Short: "List the holidays of a Gregorian year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("holidays: invalid year %q", args[0])
			}

			var occ []holiday.Occurrence
			if month != 0 {
				occ, err = a.resolver.ForMonth(year, time.Month(month))
			} else {
				occ, err = a.resolver.ForYear(year)
			}
			if err != nil {
				return fmt.Errorf("holidays: %w", err)
			}

			var match map[int]bool
			if query != "" {
				match = make(map[int]bool)
				for _, d := range a.resolver.Catalog().Search(query) {
					match[d.ID] = true
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, o := range occ {
				if publicOnly && !o.Definition.IsPublicHoliday {
					continue
				}
				if match != nil && !match[o.Definition.ID] {
					continue
				}
				lunar := ""
				if o.Definition.IsLunar() {
					lunar = fmt.Sprintf("%d/%d%s", o.LunarDay, o.LunarMonth, leapSuffix(o.IsLeapMonth))
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					calendar.FormatDate(o.Date), o.Date.Weekday().String()[:3], o.Definition.Name, lunar)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&month, "month", 0, "restrict to one month (1-12)")
	cmd.Flags().BoolVar(&publicOnly, "public", false, "only public holidays")
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by name, ignoring diacritics")
	return cmd
}

func newICalCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "ical <year>",
		Short: "Export a year's holidays as iCalendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("ical: invalid year %q", args[0])
			}

			occ, err := a.resolver.ForYear(year)
			if err != nil {
				return fmt.Errorf("ical: %w", err)
			}
			data, err := holiday.ExportICal(fmt.Sprintf("Ngày lễ Việt Nam %d", year), occ, time.Now())
			if err != nil {
				return fmt.Errorf("ical: %w", err)
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("ical: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d events to %s\n", len(occ), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
