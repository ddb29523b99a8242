package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/amlich-api/internal/calendar"
)

func newConvertCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "convert [YYYY-MM-DD]",
		Short: "Convert a Gregorian date to the lunar calendar (default: today in Vietnam)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := calendar.Date(time.Now().In(calendar.Location).Date())
			if len(args) == 1 {
				d, err := calendar.ParseDateString(args[0])
				if err != nil {
					return fmt.Errorf("convert: invalid date %q, use YYYY-MM-DD", args[0])
				}
				date = d
			}

			lunar := a.conv.ToLunisolar(date)
			if lunar.Degraded {
				return fmt.Errorf("convert: %s: %w", calendar.FormatDate(date), calendar.ErrOutOfRange)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, lunar)
			}
			fmt.Fprintf(out, "%s  %s %s, năm %s (%d)\n",
				calendar.FormatDate(date), lunar.DayName, lunar.MonthName, lunar.YearName, lunar.Year)
			fmt.Fprintf(out, "lunar %d/%d/%d%s\n", lunar.Day, lunar.Month, lunar.Year, leapSuffix(lunar.IsLeapMonth))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newSolarCmd(a *app) *cobra.Command {
	var leap bool

	cmd := &cobra.Command{
		Use:   "solar <year> <month> <day>",
		Short: "Convert a lunar date to the Gregorian calendar",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var nums [3]int
			for i, s := range args {
				n, err := strconv.Atoi(s)
				if err != nil {
					return fmt.Errorf("solar: %q is not a number", s)
				}
				nums[i] = n
			}

			date, err := a.conv.ToGregorian(nums[0], nums[1], nums[2], leap)
			if err != nil {
				return fmt.Errorf("solar: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", calendar.FormatDate(date), date.Weekday())
			return nil
		},
	}
	cmd.Flags().BoolVar(&leap, "leap", false, "the month is the year's leap month")
	return cmd
}

func leapSuffix(leap bool) string {
	if leap {
		return " (nhuận)"
	}
	return ""
}
