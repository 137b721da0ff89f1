package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cottand/sift/frontend"
	"github.com/cottand/sift/frontend/sifterr"
	"github.com/cottand/sift/frontend/universe"
	"github.com/cottand/sift/internal/log"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:          "check file.sift...",
	Short:        "Type-check sift files and print the inferred type of each declaration",
	RunE:         runCheck,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

var (
	logLevel    *int
	dumpSystem  *bool
	preludePath *string
)

func init() {
	logLevel = CheckCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
	dumpSystem = CheckCmd.Flags().Bool("dump", false, "dump the constraint system state after solving")
	preludePath = CheckCmd.Flags().String("prelude", "", "path to a prelude manifest extending the ambient bindings")
}

func ambientBindings() ([]universe.Binding, error) {
	bindings := universe.Default()
	if *preludePath == "" {
		return bindings, nil
	}
	f, err := os.Open(*preludePath)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open prelude %s", *preludePath)
	}
	defer func() { _ = f.Close() }()
	extra, err := universe.Load(f)
	if err != nil {
		return nil, err
	}
	return append(bindings, extra...), nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*logLevel))

	ambient, err := ambientBindings()
	if err != nil {
		return err
	}

	colours := isatty.IsTerminal(os.Stdout.Fd())
	anyErrors := false
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "could not read %s", path)
		}
		result, diags := frontend.Check(string(data), ambient)

		if len(args) > 1 {
			fmt.Printf("%s:\n", path)
		}
		for _, decl := range result.File.Declarations {
			typeString := "<unknown>"
			if t := decl.InterfaceType(); t != nil {
				typeString = t.String()
			}
			fmt.Printf("  %s : %s\n", paint(colours, cyan, decl.Name), typeString)
		}
		if *dumpSystem {
			result.System.Dump(os.Stdout)
		}

		if diags.HasErrors() {
			anyErrors = true
			sb := &strings.Builder{}
			for _, d := range diags {
				sb.WriteString("\n  ")
				sb.WriteString(paint(colours, red, sifterr.Render(d)))
			}
			_, _ = fmt.Fprintf(os.Stderr, "errors found in %s:%s\n", path, sb.String())
		}
	}
	if anyErrors {
		os.Exit(1)
	}
	return nil
}

const (
	red  = "31"
	cyan = "36"
)

func paint(enabled bool, colour, s string) string {
	if !enabled {
		return s
	}
	return "\x1b[" + colour + "m" + s + "\x1b[0m"
}
