package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-csv2json/internal/logger"
	"github.com/shapestone/shape-csv2json/internal/output"
	"github.com/shapestone/shape-csv2json/internal/source"
	"github.com/shapestone/shape-csv2json/pkg/csv"
)

// stdinArg selects standard input as the CSV source.
const stdinArg = "-"

type convertOptions struct {
	text   string
	out    string
	save   bool
	format string
	indent int
}

func (a *app) newConvertCommand() *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert [FILE]",
		Short: "Convert a CSV file, pasted text or stdin",
		Long: "Convert reads CSV from FILE (which must end in .csv), from --text, or from " +
			"standard input when FILE is \"-\" or input is piped, and prints the converted " +
			"document. Status messages go to stderr.",
		Example: "  csv2json convert people.csv\n" +
			"  csv2json convert --text 'name,age\n  Ada,36'\n" +
			"  cat people.csv | csv2json convert --save\n" +
			"  csv2json convert people.csv --out people --format yaml",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				opts.format = a.cfg.Output.Format
			}
			if !cmd.Flags().Changed("indent") {
				opts.indent = a.cfg.Output.Indent
			}
			return a.runConvert(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.text, "text", "", "CSV data to convert instead of a file")
	flags.StringVarP(&opts.out, "out", "o", "", "save the result under this name (.json is appended when missing)")
	flags.BoolVar(&opts.save, "save", false, "save the result as converted_<timestamp>.json")
	flags.StringVarP(&opts.format, "format", "f", csv.OutputJSON, "output format: json, yaml")
	flags.IntVar(&opts.indent, "indent", csv.DefaultIndent, "JSON indent width, 0 for compact")
	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, args []string, opts convertOptions) error {
	if opts.format != csv.OutputJSON && opts.format != csv.OutputYAML {
		return fmt.Errorf("unsupported format %q", opts.format)
	}
	if opts.indent < 0 || opts.indent > 8 {
		return errors.New("indent must be between 0 and 8")
	}

	start := time.Now()
	log := logger.Named("convert")

	raw, err := readInput(cmd, args, opts.text)
	if err != nil {
		return err
	}

	doc, err := csv.Convert(raw)
	if err != nil {
		return err
	}

	rendered, err := csv.Render(doc, opts.format, opts.indent)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n", rendered); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), output.ConvertedStatus(doc.Len()))

	log.Debug().
		Int("rows", doc.Len()).
		Int("bytes", len(raw)).
		Dur("elapsed", time.Since(start)).
		Msg("csv converted")

	if !opts.save && opts.out == "" {
		return nil
	}

	name := output.Filename(opts.out, opts.format, time.Now())
	path, err := output.Write(a.cfg.Output.Dir, name, rendered)
	if err != nil {
		return err
	}
	log.Debug().Str("path", path).Msg("saved")
	fmt.Fprintln(cmd.ErrOrStderr(), output.SavedStatus(filepath.Base(path)))
	return nil
}

// readInput picks the CSV source: a named file, then --text, then stdin.
func readInput(cmd *cobra.Command, args []string, text string) (string, error) {
	if len(args) == 1 && args[0] != stdinArg {
		path := args[0]
		if err := source.CheckName(path); err != nil {
			return "", err
		}
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		return source.Resolve(source.Input{Name: filepath.Base(path), File: f})
	}

	if len(args) == 0 && text != "" {
		return source.Text(text)
	}

	in := cmd.InOrStdin()
	if len(args) == 0 && !piped(in) {
		return "", source.ErrNoInput
	}
	decoded, err := source.Decode(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return source.Text(decoded)
}

// piped reports whether r has data to offer: anything but an interactive
// terminal counts.
func piped(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice == 0
}
