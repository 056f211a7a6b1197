// Command mockindexer runs the in-process utxo indexer as an HTTP service, or replays
// a file of hex encoded transactions through it.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"maps"
	"net/url"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/bsv-blockchain/mockindexer/provider"
	"github.com/bsv-blockchain/mockindexer/services/asset/httpimpl"
	"github.com/bsv-blockchain/mockindexer/settings"
	"github.com/bsv-blockchain/mockindexer/stores/utxo/factory"
	"github.com/bsv-blockchain/mockindexer/ulogger"
	"github.com/ordishs/gocore"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

// Name used by build script for the binaries. (Please keep on single line)
const progname = "mockindexer"

// Version & commit strings injected at build with -ldflags -X...
var version string
var commit string

func init() {
	gocore.SetInfo(progname, version, commit)
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    progname,
		Usage:   "in-process utxo indexer for wallet and token tests",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "utxostore",
				Usage: "override the utxostore setting (memory://, sqlitememory:///name, sqlite:///path)",
			},
			&cli.BoolFlag{
				Name:  "eager",
				Usage: "retire inputs while resolving them, before scripts are verified",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serve the indexer API over HTTP",
				Action: serve,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen address, defaults to asset_httpListenAddress",
					},
				},
			},
			{
				Name:   "replay",
				Usage:  "apply hex encoded transactions, one per line, and print the resulting utxo set stats",
				Action: replay,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "file to read, - for stdin",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "continue",
						Usage: "keep going after a rejected transaction",
					},
					&cli.StringSliceFlag{
						Name:  "address",
						Usage: "print the plain utxos of this address after the replay",
					},
				},
			},
		},
	}
}

func loadSettings(c *cli.Context) (*settings.Settings, error) {
	tSettings := settings.NewSettings()

	if s := c.String("utxostore"); s != "" {
		storeURL, err := url.Parse(s)
		if err != nil {
			return nil, errors.NewConfigurationError("invalid utxostore url %q", s, err)
		}

		tSettings.UtxoStore.StoreURL = storeURL
	}

	if c.IsSet("eager") {
		tSettings.Processor.EagerSpend = c.Bool("eager")
	}

	return tSettings, nil
}

func newProvider(ctx context.Context, c *cli.Context) (*provider.MockProvider, *settings.Settings, ulogger.Logger, error) {
	tSettings, err := loadSettings(c)
	if err != nil {
		return nil, nil, nil, err
	}

	logger := ulogger.New(progname, ulogger.WithLevel(tSettings.LogLevel), ulogger.WithPretty(tSettings.PrettyLogs))

	store, err := factory.NewStore(ctx, logger, tSettings)
	if err != nil {
		return nil, nil, nil, err
	}

	p, err := provider.New(logger, tSettings, store)
	if err != nil {
		return nil, nil, nil, err
	}

	return p, tSettings, logger, nil
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, tSettings, logger, err := newProvider(ctx, c)
	if err != nil {
		return err
	}

	h, err := httpimpl.New(logger, tSettings, p)
	if err != nil {
		return err
	}

	addr := c.String("listen")
	if addr == "" {
		addr = tSettings.Asset.HTTPListenAddress
	}

	logger.Infof("STATS\n%s\nVERSION\n-------\n%s (%s)\n\n", gocore.Config().Stats(), version, commit)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return h.Start(gCtx, addr)
	})

	return g.Wait()
}

func replay(c *cli.Context) error {
	ctx := c.Context

	p, _, _, err := newProvider(ctx, c)
	if err != nil {
		return err
	}

	var r io.Reader

	if name := c.String("file"); name == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return errors.NewInvalidArgumentError("failed to open %s", name, err)
		}
		defer f.Close()

		r = f
	}

	w := c.App.Writer

	accepted, rejected, err := replayTransactions(ctx, p, r, w, c.Bool("continue"))
	if err != nil {
		return err
	}

	stats, err := p.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "accepted %d, rejected %d\n", accepted, rejected)
	fmt.Fprintf(w, "active %d, spent %d, transactions %d\n", stats.Active, stats.Spent, stats.Transactions)

	for _, kind := range slices.Sorted(maps.Keys(stats.ByKind)) {
		fmt.Fprintf(w, "  %-12s %d\n", kind, stats.ByKind[kind])
	}

	for _, address := range c.StringSlice("address") {
		utxos, err := p.GetUtxos(ctx, address)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s:\n", address)

		for _, u := range utxos {
			fmt.Fprintf(w, "  %s:%d %d\n", u.TxID, u.OutputIndex, u.Satoshis)
		}
	}

	return nil
}

// replayTransactions broadcasts each non empty line of r. A rejection stops the replay
// unless keepGoing is set, in which case it is reported on w and counted.
func replayTransactions(ctx context.Context, p provider.Interface, r io.Reader, w io.Writer, keepGoing bool) (accepted, rejected int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)

	line := 0

	for scanner.Scan() {
		line++

		txHex := strings.TrimSpace(scanner.Text())
		if txHex == "" || strings.HasPrefix(txHex, "#") {
			continue
		}

		txID, err := p.Broadcast(ctx, txHex)
		if err != nil {
			if !keepGoing || !errors.IsTxRejection(err) {
				return accepted, rejected, errors.NewProcessingError("line %d rejected", line, err)
			}

			rejected++

			fmt.Fprintf(w, "line %d: %v\n", line, err)

			continue
		}

		accepted++

		fmt.Fprintln(w, txID)
	}

	if err := scanner.Err(); err != nil {
		return accepted, rejected, errors.NewProcessingError("failed to read transactions", err)
	}

	return accepted, rejected, nil
}
