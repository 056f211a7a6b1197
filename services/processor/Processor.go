// Package processor applies raw transactions to the utxo store: inputs are resolved
// against the active set and verified, then retired, and the outputs are classified
// and inserted.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	"github.com/bsv-blockchain/mockindexer/errors"
	"github.com/bsv-blockchain/mockindexer/model"
	"github.com/bsv-blockchain/mockindexer/services/classifier"
	"github.com/bsv-blockchain/mockindexer/services/validator"
	"github.com/bsv-blockchain/mockindexer/settings"
	"github.com/bsv-blockchain/mockindexer/stores/utxo"
	"github.com/bsv-blockchain/mockindexer/ulogger"
)

type Processor struct {
	logger     ulogger.Logger
	settings   *settings.Settings
	store      utxo.Store
	verifier   validator.ScriptVerifier
	classifier *classifier.Classifier
	eagerSpend bool
	mu         sync.Mutex
}

func New(logger ulogger.Logger, tSettings *settings.Settings, store utxo.Store, opts ...Option) (*Processor, error) {
	initPrometheusMetrics()

	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	verifier := options.verifier
	if verifier == nil {
		var err error

		verifier, err = validator.NewScriptVerifier(logger, tSettings, validator.TxInterpreterGoBT)
		if err != nil {
			return nil, err
		}
	}

	eagerSpend := tSettings.Processor.EagerSpend
	if options.eagerSpend != nil {
		eagerSpend = *options.eagerSpend
	}

	if eagerSpend {
		logger.Warnf("[Processor] eager spend enabled, inputs are retired before scripts are verified")
	}

	return &Processor{
		logger:     logger,
		settings:   tSettings,
		store:      store,
		verifier:   verifier,
		classifier: classifier.New(tSettings),
		eagerSpend: eagerSpend,
	}, nil
}

func (p *Processor) Store() utxo.Store {
	return p.store
}

// Process applies one serialized transaction and returns its txid. Calls are serialized.
func (p *Processor) Process(ctx context.Context, raw []byte) (txID chainhash.Hash, err error) {
	start := time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	defer func() {
		prometheusProcessTransaction.Observe(time.Since(start).Seconds())

		if err != nil {
			prometheusInvalidTransactions.WithLabelValues(errors.CodeOf(err).String()).Inc()
			p.logger.Debugf("[Process] rejected transaction: %v", err)

			return
		}

		prometheusProcessedTransactions.Inc()
	}()

	prometheusTransactionSize.Observe(float64(len(raw)))

	tx, err := bt.NewTxFromBytes(raw)
	if err != nil {
		return chainhash.Hash{}, errors.NewTxMalformedError("failed to parse transaction", err)
	}

	txID = *tx.TxIDChainHash()

	entries, err := p.outputEntries(tx)
	if err != nil {
		return chainhash.Hash{}, err
	}

	if p.eagerSpend {
		err = p.processEager(ctx, tx, entries, raw)
	} else {
		err = p.processAtomic(ctx, tx, entries, raw)
	}

	if err != nil {
		return chainhash.Hash{}, err
	}

	p.logger.Debugf("[Process][%s] accepted with %d inputs and %d outputs", txID, len(tx.Inputs), len(tx.Outputs))

	return txID, nil
}

// processAtomic resolves and verifies without touching the store, so a rejected
// transaction leaves no trace.
func (p *Processor) processAtomic(ctx context.Context, tx *bt.Tx, entries []*model.UtxoEntry, raw []byte) error {
	outpoints := make([]model.Outpoint, len(tx.Inputs))
	seen := make(map[model.Outpoint]struct{}, len(tx.Inputs))

	for idx, input := range tx.Inputs {
		outpoint := model.NewOutpoint(input.PreviousTxIDChainHash(), input.PreviousTxOutIndex)

		// the second input spending the same outpoint finds it retired
		if _, ok := seen[outpoint]; ok {
			return errors.NewMissingInputError(outpoint.TxID.String(), outpoint.Vout, idx)
		}

		seen[outpoint] = struct{}{}

		if err := p.resolveInput(ctx, tx, idx, outpoint); err != nil {
			return err
		}

		outpoints[idx] = outpoint
	}

	if err := p.checkDuplicate(ctx, tx); err != nil {
		return err
	}

	if len(tx.Inputs) > 0 {
		if err := validator.VerifyTransaction(p.verifier, tx); err != nil {
			return err
		}
	}

	for idx, outpoint := range outpoints {
		if err := p.retireInput(ctx, tx, idx, outpoint); err != nil {
			return err
		}
	}

	return p.commitOutputs(ctx, tx, entries, raw)
}

// processEager retires every input as soon as it resolves and verifies afterwards.
// Inputs retired before a failure stay retired.
func (p *Processor) processEager(ctx context.Context, tx *bt.Tx, entries []*model.UtxoEntry, raw []byte) error {
	for idx, input := range tx.Inputs {
		outpoint := model.NewOutpoint(input.PreviousTxIDChainHash(), input.PreviousTxOutIndex)

		if err := p.resolveInput(ctx, tx, idx, outpoint); err != nil {
			return err
		}

		if err := p.retireInput(ctx, tx, idx, outpoint); err != nil {
			return err
		}
	}

	if err := p.checkDuplicate(ctx, tx); err != nil {
		return err
	}

	if len(tx.Inputs) > 0 {
		if err := validator.VerifyTransaction(p.verifier, tx); err != nil {
			return err
		}
	}

	return p.commitOutputs(ctx, tx, entries, raw)
}

// resolveInput looks the outpoint up in the active set and attaches the previous
// locking script and satoshis to the input.
func (p *Processor) resolveInput(ctx context.Context, tx *bt.Tx, idx int, outpoint model.Outpoint) error {
	entry, err := p.store.Get(ctx, outpoint)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NewMissingInputError(outpoint.TxID.String(), outpoint.Vout, idx)
		}

		return errors.NewProcessingError("[resolveInput] failed to read utxo %s", outpoint, err)
	}

	tx.Inputs[idx].PreviousTxScript = entry.LockingScript
	tx.Inputs[idx].PreviousTxSatoshis = entry.Satoshis

	return nil
}

func (p *Processor) retireInput(ctx context.Context, tx *bt.Tx, idx int, outpoint model.Outpoint) error {
	inputIndex, err := safeconversion.IntToUint32(idx)
	if err != nil {
		return errors.NewTxInvalidError("input index %d out of range", idx, err)
	}

	removed, err := p.store.RemoveByOutpoint(ctx, outpoint)
	if err != nil {
		return errors.NewProcessingError("[retireInput] failed to remove utxo %s", outpoint, err)
	}

	if !removed {
		return errors.NewMissingInputError(outpoint.TxID.String(), outpoint.Vout, idx)
	}

	if err = p.store.RecordSpent(ctx, &model.SpentRecord{
		Outpoint:           outpoint,
		SpendingTxID:       *tx.TxIDChainHash(),
		SpendingInputIndex: inputIndex,
	}); err != nil {
		return errors.NewProcessingError("[retireInput] failed to record spend of %s", outpoint, err)
	}

	return nil
}

// checkDuplicate rejects a transaction that is already archived. Only replayed
// issuance transactions get this far, a replayed spend fails on its inputs first.
func (p *Processor) checkDuplicate(ctx context.Context, tx *bt.Tx) error {
	exists, err := p.store.HasTransaction(ctx, *tx.TxIDChainHash())
	if err != nil {
		return errors.NewProcessingError("[checkDuplicate] failed to read archive", err)
	}

	if exists {
		return errors.NewTxAlreadyExistsError("transaction %s already processed", tx.TxID())
	}

	return nil
}

// outputEntries classifies every output up front. Values no store can hold reject the
// transaction before any input is touched.
func (p *Processor) outputEntries(tx *bt.Tx) ([]*model.UtxoEntry, error) {
	txHash := tx.TxIDChainHash()
	entries := make([]*model.UtxoEntry, 0, len(tx.Outputs))

	for vout, output := range tx.Outputs {
		voutUint32, err := safeconversion.IntToUint32(vout)
		if err != nil {
			return nil, errors.NewTxInvalidError("output index %d out of range", vout, err)
		}

		if _, err = safeconversion.Uint64ToInt64(output.Satoshis); err != nil {
			return nil, errors.NewTxInvalidError("output %d satoshis %d out of range", vout, output.Satoshis, err)
		}

		data := p.classifier.Classify(output.LockingScript)

		if sale, ok := data.(*model.SaleListing); ok {
			if _, err = safeconversion.Uint64ToInt64(sale.Price); err != nil {
				return nil, errors.NewTxInvalidError("output %d sale price %d out of range", vout, sale.Price, err)
			}
		}

		entries = append(entries, &model.UtxoEntry{
			Outpoint:      model.NewOutpoint(txHash, voutUint32),
			Satoshis:      output.Satoshis,
			LockingScript: output.LockingScript,
			Data:          data,
		})
	}

	return entries, nil
}

func (p *Processor) commitOutputs(ctx context.Context, tx *bt.Tx, entries []*model.UtxoEntry, raw []byte) error {
	for _, entry := range entries {
		if err := p.store.Insert(ctx, entry); err != nil {
			return err
		}
	}

	txHash := tx.TxIDChainHash()

	if err := p.store.ArchiveTransaction(ctx, *txHash, raw); err != nil {
		return errors.NewProcessingError("failed to archive transaction %s", txHash, err)
	}

	return nil
}

// Reset empties the store. It waits for a running Process call to finish.
func (p *Processor) Reset(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.store.Reset(ctx)
}

// RemoveByKind drops the active outputs of kind, serialised with Process.
func (p *Processor) RemoveByKind(ctx context.Context, kind model.Kind) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.store.RemoveByKind(ctx, kind)
}
