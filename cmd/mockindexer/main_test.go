package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/go-chaincfg"
	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/bsv-blockchain/mockindexer/pkg/sensible"
	"github.com/bsv-blockchain/mockindexer/provider"
	"github.com/bsv-blockchain/mockindexer/settings"
	"github.com/bsv-blockchain/mockindexer/stores/utxo/memory"
	"github.com/bsv-blockchain/mockindexer/ulogger"
	"github.com/bsv-blockchain/mockindexer/util/test/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T) *provider.MockProvider {
	p, err := provider.New(ulogger.TestLogger{}, &settings.Settings{ChainCfgParams: &chaincfg.MainNetParams}, memory.New(ulogger.TestLogger{}))
	require.NoError(t, err)

	return p
}

func TestReplayTransactions(t *testing.T) {
	priv := fixtures.NewPrivateKey(t)

	parent := fixtures.Create(t, fixtures.WithPrivateKey(priv), fixtures.WithP2PKHOutputs(1, 10_000))
	child := fixtures.Create(t, fixtures.WithInput(parent, 0, priv), fixtures.WithP2PKHOutputs(2, 4_000, priv.PubKey()))

	t.Run("applies every line in order", func(t *testing.T) {
		ctx := context.Background()
		p := newTestProvider(t)

		input := "# fixtures\n" + parent.String() + "\n\n" + child.String() + "\n"

		var out bytes.Buffer

		accepted, rejected, err := replayTransactions(ctx, p, strings.NewReader(input), &out, false)
		require.NoError(t, err)
		assert.Equal(t, 2, accepted)
		assert.Equal(t, 0, rejected)
		assert.Equal(t, parent.TxID()+"\n"+child.TxID()+"\n", out.String())

		stats, err := p.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Active)
		assert.Equal(t, 1, stats.Spent)
		assert.Equal(t, 2, stats.Transactions)
	})

	t.Run("stops at the first rejection", func(t *testing.T) {
		p := newTestProvider(t)

		var out bytes.Buffer

		accepted, _, err := replayTransactions(context.Background(), p, strings.NewReader(child.String()+"\n"+parent.String()+"\n"), &out, false)
		require.ErrorIs(t, err, errors.ErrTxMissingInput)
		assert.Contains(t, err.Error(), "line 1")
		assert.Equal(t, 0, accepted)
	})

	t.Run("continues past rejections", func(t *testing.T) {
		p := newTestProvider(t)

		var out bytes.Buffer

		input := child.String() + "\nzz\n" + parent.String() + "\n" + child.String() + "\n"

		accepted, rejected, err := replayTransactions(context.Background(), p, strings.NewReader(input), &out, true)
		require.NoError(t, err)
		assert.Equal(t, 2, accepted)
		assert.Equal(t, 2, rejected)
		assert.Contains(t, out.String(), "line 2:")
	})
}

func TestNewApp(t *testing.T) {
	app := newApp()

	require.NotNil(t, app.Command("serve"))
	require.NotNil(t, app.Command("replay"))
}

func TestReplayCommandPrintsKindsInOrder(t *testing.T) {
	priv := fixtures.NewPrivateKey(t)

	tx := fixtures.Create(t,
		fixtures.WithPrivateKey(priv),
		fixtures.WithFtOutput(546, &sensible.FtDataPart{
			GenesisHash:  []byte{0x01, 0x02, 0x03},
			TokenAddress: fixtures.PubKeyHash(priv),
			TokenAmount:  5,
		}),
		fixtures.WithP2PKHOutputs(2, 1000),
		fixtures.WithOutput(0, bscript.NewFromBytes([]byte{0x00, 0x6a, 0x01, 0x02})),
	)

	file := filepath.Join(t.TempDir(), "txs.hex")
	require.NoError(t, os.WriteFile(file, []byte(tx.String()+"\n"), 0o600))

	for i := 0; i < 5; i++ {
		var out bytes.Buffer

		app := newApp()
		app.Writer = &out

		require.NoError(t, app.Run([]string{progname, "--utxostore", "memory://", "replay", "--file", file}))

		printed := out.String()
		require.Contains(t, printed, "accepted 1, rejected 0")

		unclassified := strings.Index(printed, "  unclassified")
		plain := strings.Index(printed, "  plain")
		ft := strings.Index(printed, "  ft")

		require.NotEqual(t, -1, unclassified)
		assert.Less(t, unclassified, plain)
		assert.Less(t, plain, ft)
	}
}
