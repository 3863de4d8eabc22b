package progress

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// COIN WALLET
// Баланс монет хранится одним числом. Операции построены по схеме
// "прочитать - изменить - записать" без блокировок: хранилище обслуживает
// одного пользователя, и конкурирующие записи здесь не ожидаются.
// ══════════════════════════════════════════════════════════════════════════════

// coinsEnvelope - формат хранения баланса монет.
type coinsEnvelope struct {
	Coins     int    `json:"coins"`
	Timestamp string `json:"timestamp"`
}

// Wallet управляет балансом монет пользователя.
type Wallet struct {
	store shared.KeyValueStore
	log   *slog.Logger
}

// NewWallet создаёт кошелёк поверх хранилища.
func NewWallet(store shared.KeyValueStore, log *slog.Logger) *Wallet {
	if log == nil {
		log = slog.Default()
	}
	return &Wallet{store: store, log: log}
}

// Balance возвращает текущий баланс. Отсутствующий ключ и битые данные
// трактуются как нулевой баланс.
func (w *Wallet) Balance(ctx context.Context) int {
	data, err := w.store.Get(ctx, shared.KeyCoins)
	if err != nil {
		if !errors.Is(err, shared.ErrKeyNotFound) {
			w.log.Warn("failed to load coin balance, treating as zero", "error", err)
		}
		return 0
	}

	var envelope coinsEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		w.log.Warn("stored coin balance is corrupted, treating as zero", "error", err)
		return 0
	}
	return envelope.Coins
}

// Save записывает баланс как есть, перезаписывая предыдущее значение.
// Используется и для списаний, и для возврата снимка баланса при откате.
func (w *Wallet) Save(ctx context.Context, coins int) error {
	envelope := coinsEnvelope{
		Coins:     coins,
		Timestamp: timeutil.Timestamp(),
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	if err := w.store.Set(ctx, shared.KeyCoins, data); err != nil {
		return shared.WrapError("wallet", "Save", shared.ErrStorageWrite, "failed to persist coin balance", err)
	}
	return nil
}

// Add увеличивает баланс на amount и возвращает новый баланс.
func (w *Wallet) Add(ctx context.Context, amount int) (int, error) {
	total := w.Balance(ctx) + amount
	if err := w.Save(ctx, total); err != nil {
		return 0, err
	}
	w.log.Info("coins added", "amount", amount, "balance", total)
	return total, nil
}

// Spend списывает amount монет. Возвращает снимок баланса до списания -
// вызывающий код сохраняет его для возможного отката.
// Возвращает shared.ErrInsufficientCoins, если монет не хватает.
func (w *Wallet) Spend(ctx context.Context, amount int) (snapshot int, err error) {
	snapshot = w.Balance(ctx)
	if snapshot < amount {
		return snapshot, shared.ErrInsufficientCoins
	}
	if err := w.Save(ctx, snapshot-amount); err != nil {
		return snapshot, err
	}
	w.log.Info("coins spent", "amount", amount, "balance", snapshot-amount)
	return snapshot, nil
}

// Remove удаляет баланс из хранилища.
func (w *Wallet) Remove(ctx context.Context) error {
	if err := w.store.Remove(ctx, shared.KeyCoins); err != nil {
		return shared.WrapError("wallet", "Remove", shared.ErrStorageWrite, "failed to remove coin balance", err)
	}
	return nil
}
