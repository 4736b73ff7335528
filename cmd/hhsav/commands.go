package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/tidwall/pretty"

	"github.com/zoobzio/hhsav"
	"github.com/zoobzio/hhsav/bank"
	"github.com/zoobzio/hhsav/bridge"
	"github.com/zoobzio/hhsav/bson"
	"github.com/zoobzio/hhsav/cbor"
	hhjson "github.com/zoobzio/hhsav/json"
	"github.com/zoobzio/hhsav/msgpack"
	"github.com/zoobzio/hhsav/yaml"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

// formats maps --format values to export codecs. JSON goes through the
// bridge's export command instead.
var formats = map[string]func() hhsav.Codec{
	"yaml":    yaml.New,
	"msgpack": msgpack.New,
	"cbor":    cbor.New,
	"bson":    bson.New,
}

func (a *app) open(ctx context.Context) error {
	doc, err := a.commands.LoadSave(ctx)
	if err != nil {
		return err
	}
	if doc.Kind() != hhsav.KindObject {
		fmt.Fprintf(a.stdout, "(%s)\n", doc.Kind())
		return nil
	}
	for _, key := range doc.Keys() {
		section, _ := doc.Get(key)
		fmt.Fprintf(a.stdout, "%-24s %-7s %d\n", key, section.Kind(), section.Len())
	}
	return nil
}

func (a *app) show(ctx context.Context, args []string) error {
	doc, err := a.commands.LoadSave(ctx)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		section, ok := doc.Get(args[0])
		if !ok {
			return hhsav.NewError(hhsav.ErrPath, "show", fmt.Errorf("no section %q", args[0]))
		}
		doc = section
	}
	return a.printJSON(ctx, doc)
}

func (a *app) get(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: hhsav get <path>")
	}
	doc, err := a.commands.LoadSave(ctx)
	if err != nil {
		return err
	}
	value, ok, err := hhsav.Lookup(doc, args[0])
	if err != nil {
		return err
	}
	if !ok {
		return hhsav.NewError(hhsav.ErrPath, "get", fmt.Errorf("nothing at %q", args[0]))
	}
	return a.printJSON(ctx, value)
}

func (a *app) set(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: hhsav set <path> <json>")
	}
	doc, err := a.commands.LoadSave(ctx)
	if err != nil {
		return err
	}

	// Bare words are taken as strings so `set Player.name Neo` works.
	value, err := hhsav.ParseJSON([]byte(args[1]))
	if err != nil {
		value = hhsav.String(args[1])
	}

	doc, err = hhsav.SetPath(doc, args[0], value)
	if err != nil {
		return err
	}
	return a.saveHHSAV(ctx, doc)
}

func (a *app) unset(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: hhsav unset <path>")
	}
	doc, err := a.commands.LoadSave(ctx)
	if err != nil {
		return err
	}
	_, ok, err := hhsav.Lookup(doc, args[0])
	if err != nil {
		return err
	}
	if !ok {
		return hhsav.NewError(hhsav.ErrPath, "unset", fmt.Errorf("nothing at %q", args[0]))
	}
	doc, err = hhsav.DeletePath(doc, args[0])
	if err != nil {
		return err
	}
	return a.saveHHSAV(ctx, doc)
}

func (a *app) export(ctx context.Context) error {
	doc, err := a.commands.LoadSave(ctx)
	if err != nil {
		return err
	}

	format := strings.ToLower(a.opts.format)
	if format == "json" {
		status, err := a.commands.SaveJSON(ctx, doc, bridge.SuggestedName(hhsav.ExtExport, time.Now()))
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, status)
		return nil
	}

	newCodec, ok := formats[format]
	if !ok {
		return fmt.Errorf("%w: format %q", hhsav.ErrUnsupported, a.opts.format)
	}
	codec := newCodec()

	data, err := a.commands.Codec().Export(ctx, doc, codec)
	if err != nil {
		return err
	}

	filter := bridge.Filter{Name: strings.ToUpper(format) + " File", Extensions: []string{codec.Extension()}}
	path, err := a.picker.PickSave(ctx, filter, bridge.SuggestedName(codec.Extension(), time.Now()))
	if err != nil {
		if hhsav.IsCancelled(err) {
			return hhsav.Cancelled("export", hhsav.MessageSaveCancelled)
		}
		return err
	}
	if err := a.fs.WriteFile(path, data); err != nil {
		return hhsav.NewPathError(hhsav.ErrIO, "write", path, err)
	}
	a.logger.InfoContext(ctx, "exported", "format", format, "path", path, "size", len(data))
	fmt.Fprintf(a.stdout, "%s exported successfully!\n", strings.ToUpper(format))
	return nil
}

func (a *app) pack(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: hhsav pack <file.json>")
	}
	data, err := a.fs.ReadFile(args[0])
	if err != nil {
		return hhsav.NewPathError(hhsav.ErrIO, "read", args[0], err)
	}
	doc, err := a.commands.Codec().Import(ctx, data, hhjson.Lenient())
	if err != nil {
		return err
	}
	return a.saveHHSAV(ctx, doc)
}

func (a *app) info(ctx context.Context) error {
	path, err := a.picker.PickLoad(ctx, bridge.LoadFilter)
	if err != nil {
		if hhsav.IsCancelled(err) {
			return hhsav.Cancelled("load", hhsav.MessageNoFileSelected)
		}
		return err
	}
	data, err := a.fs.ReadFile(path)
	if err != nil {
		return hhsav.NewPathError(hhsav.ErrIO, "read", path, err)
	}
	doc, err := a.commands.Codec().DecodeCompressed(ctx, data)
	if err != nil {
		return err
	}
	compact, err := hhsav.JSON().Marshal(doc)
	if err != nil {
		return err
	}

	ratio := 0.0
	if len(compact) > 0 {
		ratio = float64(len(data)) / float64(len(compact))
	}
	fmt.Fprintf(a.stdout, "file          %s\n", path)
	fmt.Fprintf(a.stdout, "compression   %s\n", a.commands.Codec().Compressor().Name())
	fmt.Fprintf(a.stdout, "size          %d bytes\n", len(data))
	fmt.Fprintf(a.stdout, "payload       %d bytes (ratio %.2f)\n", len(compact), ratio)
	fmt.Fprintf(a.stdout, "file hash     %s\n", hhsav.Fingerprint(data))
	fmt.Fprintf(a.stdout, "content hash  %s\n", hhsav.Fingerprint(compact))
	fmt.Fprintf(a.stdout, "sections      %s\n", strings.Join(doc.Keys(), ", "))
	return nil
}

func (a *app) bank(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: hhsav bank list | bank set <index>")
	}
	switch args[0] {
	case "list":
		return a.bankList(ctx)
	case "set":
		if len(args) != 2 {
			return fmt.Errorf("usage: hhsav bank set <index> [--name --provider --iban --balance]")
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid account index %q", args[1])
		}
		return a.bankSet(ctx, index)
	default:
		return fmt.Errorf("unknown bank command %q", args[0])
	}
}

func (a *app) bankList(ctx context.Context) error {
	doc, err := a.commands.LoadSave(ctx)
	if err != nil {
		return err
	}
	accounts, err := bank.Accounts(ctx, doc)
	if err != nil {
		return err
	}
	if !a.opts.reveal {
		if accounts, err = bank.Masked(ctx, accounts); err != nil {
			return err
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("#", "HOLDER", "PROVIDER", "BALANCE", "IBAN", "MINE")
	for i, account := range accounts {
		mine := ""
		if account.IsMine {
			mine = "yes"
		}
		t.Row(strconv.Itoa(i), account.Holder(), account.Provider,
			strconv.FormatFloat(account.Balance, 'f', 2, 64), account.IBAN, mine)
	}
	fmt.Fprintln(a.stdout, t.Render())
	fmt.Fprintf(a.stdout, "total balance: %.2f\n", bank.Total(accounts))
	return nil
}

func (a *app) bankSet(ctx context.Context, index int) error {
	var patch bank.Patch
	if a.flags.Changed("name") {
		patch.AccountName = &a.opts.name
	}
	if a.flags.Changed("provider") {
		patch.Provider = &a.opts.provider
	}
	if a.flags.Changed("iban") {
		patch.IBAN = &a.opts.iban
	}
	if a.flags.Changed("balance") {
		patch.Balance = &a.opts.balance
	}
	if patch == (bank.Patch{}) {
		return fmt.Errorf("nothing to change: pass --name, --provider, --iban, or --balance")
	}

	doc, err := a.commands.LoadSave(ctx)
	if err != nil {
		return err
	}
	doc, err = bank.Update(doc, index, patch)
	if err != nil {
		return err
	}
	return a.saveHHSAV(ctx, doc)
}

func (a *app) saveHHSAV(ctx context.Context, doc hhsav.Document) error {
	status, err := a.commands.SaveHHSAV(ctx, doc, bridge.SuggestedName(hhsav.ExtSave, time.Now()))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, status)
	return nil
}

func (a *app) printJSON(ctx context.Context, doc hhsav.Document) error {
	out, err := a.commands.Codec().EncodePlain(ctx, doc)
	if err != nil {
		return err
	}
	if !a.opts.noColor {
		out = pretty.Color(out, nil)
	}
	fmt.Fprintln(a.stdout, string(out))
	return nil
}
