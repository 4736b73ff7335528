// hhsav opens, inspects, edits, and writes .hhsav save files from a
// terminal. It drives the same three bridge commands a desktop shell uses
// (load a save, save .hhsav, export JSON) with an interactive file picker,
// or with --file/--out for scripted use.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/zoobzio/hhsav"
	"github.com/zoobzio/hhsav/bridge"
	"github.com/zoobzio/hhsav/dialog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if hhsav.IsCancelled(err) {
			fmt.Fprintln(os.Stderr, hhsav.Message(err))
			return
		}
		fmt.Fprintf(os.Stderr, "error: %s\n", hhsav.Message(err))
		os.Exit(1)
	}
}

// options holds the parsed global and subcommand flags.
type options struct {
	file        string
	out         string
	dir         string
	compression string
	format      string
	verbose     bool
	noColor     bool
	reveal      bool

	name     string
	provider string
	iban     string
	balance  float64
}

// app bundles what every subcommand needs.
type app struct {
	opts     options
	flags    *pflag.FlagSet
	commands *bridge.Commands
	fs       bridge.FileSystem
	picker   bridge.Picker
	stdout   io.Writer
	logger   *slog.Logger
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("hhsav", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.file, "file", "f", "", "save file to open (skips the file picker)")
	flagSet.StringVarP(&opts.out, "out", "o", "", "destination file or directory (skips the save dialog)")
	flagSet.StringVar(&opts.dir, "dir", "", "starting directory for the file picker (default: working directory)")
	flagSet.StringVar(&opts.compression, "compression", envDefault("HHSAV_COMPRESSION", hhsav.CompressionGzip), "envelope compression: gzip, zstd, or lz4")
	flagSet.StringVar(&opts.format, "format", "json", "export format: json, yaml, msgpack, cbor, or bson")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	flagSet.BoolVar(&opts.noColor, "no-color", false, "disable colorized JSON output")
	flagSet.BoolVar(&opts.reveal, "reveal", false, "show account names and IBANs unmasked")
	flagSet.StringVar(&opts.name, "name", "", "new account name (bank set)")
	flagSet.StringVar(&opts.provider, "provider", "", "new account provider (bank set)")
	flagSet.StringVar(&opts.iban, "iban", "", "new account IBAN (bank set)")
	flagSet.Float64Var(&opts.balance, "balance", 0, "new account balance (bank set)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stdout, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help || flagSet.NArg() == 0 {
		printHelp(stdout, flagSet)
		return nil
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	compressor, err := hhsav.ParseCompression(opts.compression)
	if err != nil {
		return err
	}
	if compressor.Name() != hhsav.CompressionGzip {
		logger.Warn("writing a non-standard envelope; other tools cannot read it", "compression", compressor.Name())
	}

	fs := bridge.OSFileSystem{}
	picker := splitPicker{
		load: choosePicker(opts.file, stdin, stderr, opts.dir),
		save: choosePicker(opts.out, stdin, stderr, opts.dir),
	}

	a := &app{
		opts:  opts,
		flags: flagSet,
		commands: bridge.New(picker,
			bridge.WithFileSystem(fs),
			bridge.WithCodec(hhsav.New(hhsav.WithCompressor(compressor))),
			bridge.WithLogger(logger),
		),
		fs:     fs,
		picker: picker,
		stdout: stdout,
		logger: logger,
	}

	rest := flagSet.Args()
	switch rest[0] {
	case "open":
		return a.open(ctx)
	case "show":
		return a.show(ctx, rest[1:])
	case "get":
		return a.get(ctx, rest[1:])
	case "set":
		return a.set(ctx, rest[1:])
	case "unset":
		return a.unset(ctx, rest[1:])
	case "export":
		return a.export(ctx)
	case "pack":
		return a.pack(ctx, rest[1:])
	case "info":
		return a.info(ctx)
	case "bank":
		return a.bank(ctx, rest[1:])
	default:
		return fmt.Errorf("unknown command %q (run hhsav --help)", rest[0])
	}
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprint(w, `Usage: hhsav [flags] <command> [args]

Commands:
  open                     load a save and list its sections
  show [section]           print the save, or one section, as JSON
  get <path>               print the value at a path (e.g. Bank.accounts.0.balance)
  set <path> <json>        change the value at a path and save a new .hhsav
  unset <path>             remove the value at a path and save a new .hhsav
  export                   write the save in --format (default json)
  pack <file.json>         turn a JSON export (comments allowed) into a .hhsav
  info                     print sizes and fingerprints of a save
  bank list                list bank accounts (masked unless --reveal)
  bank set <index>         edit one account (--name --provider --iban --balance)

Flags:
`)
	fmt.Fprint(w, flagSet.FlagUsages())
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// choosePicker returns a fixed picker when path is set and an interactive
// one otherwise.
func choosePicker(path string, stdin io.Reader, stderr io.Writer, dir string) bridge.Picker {
	if path != "" {
		return dialog.Fixed(path)
	}
	return dialog.Terminal(stdin, stderr, dir)
}

// splitPicker routes load and save requests to different pickers.
type splitPicker struct {
	load bridge.Picker
	save bridge.Picker
}

func (p splitPicker) PickLoad(ctx context.Context, filter bridge.Filter) (string, error) {
	return p.load.PickLoad(ctx, filter)
}

func (p splitPicker) PickSave(ctx context.Context, filter bridge.Filter, suggestedName string) (string, error) {
	return p.save.PickSave(ctx, filter, suggestedName)
}
