// Command amlich converts dates and lists holidays of the Vietnamese
// lunisolar calendar from the terminal.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/amlich-api/internal/calendar"
	"github.com/zapponejosh/amlich-api/internal/holiday"
	"github.com/zapponejosh/amlich-api/internal/logger"
	"github.com/zapponejosh/amlich-api/internal/sexagenary"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds the core components shared by every subcommand.
type app struct {
	conv     *calendar.Converter
	calc     *sexagenary.Calculator
	resolver *holiday.Resolver
}

func newApp() (*app, error) {
	catalog, err := holiday.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	conv := calendar.NewVietnameseConverter()
	return &app{
		conv:     conv,
		calc:     sexagenary.NewCalculator(conv),
		resolver: holiday.NewResolver(catalog, conv, logger.Discard()),
	}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "amlich",
		Short:         "Vietnamese lunisolar calendar (âm lịch) tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	a, err := newApp()
	if err != nil {
		root.RunE = func(*cobra.Command, []string) error { return err }
		return root
	}

	root.AddCommand(newConvertCmd(a))
	root.AddCommand(newSolarCmd(a))
	root.AddCommand(newInfoCmd(a))
	root.AddCommand(newMonthCmd(a))
	root.AddCommand(newHolidaysCmd(a))
	root.AddCommand(newICalCmd(a))
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
