package rpcserver

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/SMC17/rippled-zig-sub000/ledger"
	"github.com/SMC17/rippled-zig-sub000/types"
)

func (d *Dispatcher) serverInfo(params map[string]any) (map[string]any, error) {
	current := d.manager.Current()
	return map[string]any{
		"build_version": BuildVersion,
		"network_id":    1,
		"server_state":  "full",
		"validated_ledger": map[string]any{
			"hash": current.Hash.String(),
			"seq":  current.Sequence,
		},
		"uptime": int64(time.Since(d.startedAt).Seconds()),
	}, nil
}

func (d *Dispatcher) getLedger(params map[string]any) (map[string]any, error) {
	var l = d.manager.Current()
	if raw, ok := params["index"]; ok {
		idx, ok := asUint32(raw)
		if !ok {
			return nil, resultErrCode(20, "ledgerNotFound")
		}
		found, ok := d.manager.ByIndex(idx)
		if !ok {
			return nil, resultErrCode(20, "ledgerNotFound")
		}
		l = found
	}
	return map[string]any{"ledger": ledgerFields(l)}, nil
}

func ledgerFields(l ledger.Ledger) map[string]any {
	return map[string]any{
		"sequence":           l.Sequence,
		"hash":               l.Hash.String(),
		"parent_hash":        l.ParentHash.String(),
		"close_time":         l.CloseTime,
		"total_coins":        fmt.Sprintf("%d", l.TotalCoins),
		"account_state_hash": l.AccountStateHash.String(),
		"transaction_hash":   l.TransactionHash.String(),
	}
}

func (d *Dispatcher) ledgerCurrent(params map[string]any) (map[string]any, error) {
	if err := rejectAnyParams(params); err != nil {
		return nil, err
	}
	return map[string]any{"ledger_current_index": d.manager.Current().Sequence}, nil
}

func (d *Dispatcher) fee(params map[string]any) (map[string]any, error) {
	base := fmt.Sprintf("%d", types.MinTxFee)
	return map[string]any{
		"base_fee":        base,
		"median_fee":      base,
		"minimum_fee":     base,
		"open_ledger_fee": base,
	}, nil
}

func (d *Dispatcher) accountInfo(params map[string]any) (map[string]any, error) {
	accountStr, _ := params["account"].(string)
	account, err := types.AccountIDFromHex(accountStr)
	if err != nil {
		return nil, resultErrCode(15, "actMalformed")
	}
	root, ok := d.manager.Accounts().Get(account)
	if !ok {
		return nil, resultErrCode(15, "actNotFound")
	}
	return map[string]any{
		"account_data": map[string]any{
			"account":  root.Account.String(),
			"balance":  fmt.Sprintf("%d", root.Balance),
			"sequence": root.Sequence,
			"flags":    root.Flags,
		},
	}, nil
}

func (d *Dispatcher) submit(params map[string]any) (map[string]any, error) {
	blobHex, _ := params["tx_blob_hex"].(string)
	if blobHex == "" || len(blobHex)%2 != 0 {
		return nil, resultErr("tx_blob_hex must be non-empty, even-length hex")
	}
	if len(blobHex) > 2*64*1024 {
		return nil, resultErr("tx_blob_hex exceeds 64KiB")
	}
	blob, err := hex.DecodeString(blobHex)
	if err != nil {
		return nil, resultErr("tx_blob_hex is not valid hex")
	}

	result, submitErr := d.processor.Submit(blob)
	fields := map[string]any{"engine_result": result.EngineResultString()}
	if submitErr != nil {
		fields["engine_result_message"] = submitErr.Error()
	}
	return fields, nil
}

func (d *Dispatcher) ping(params map[string]any) (map[string]any, error) {
	if err := rejectAnyParams(params); err != nil {
		return nil, err
	}
	return map[string]any{}, nil
}

func (d *Dispatcher) random(params map[string]any) (map[string]any, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, resultErr("failed to read random bytes")
	}
	// Only the prefix is returned; the full 32 bytes are never placed on
	// the wire so a response capture can't be replayed as entropy.
	return map[string]any{"random_prefix": hex.EncodeToString(buf[:8])}, nil
}

func (d *Dispatcher) agentStatus(params map[string]any) (map[string]any, error) {
	d.mu.Lock()
	cfg := d.config
	d.mu.Unlock()

	return map[string]any{
		"profile":                 cfg.Profile,
		"strict_crypto_required":  cfg.StrictCryptoRequired,
		"uptime":                  int64(time.Since(d.startedAt).Seconds()),
		"validated_ledger_seq":    d.manager.Current().Sequence,
		"pending_transactions":    len(d.processor.GetPending()),
		"max_peers":               cfg.MaxPeers,
		"allow_unl_updates":       cfg.AllowUNLUpdates,
	}, nil
}

func (d *Dispatcher) agentConfigGet(params map[string]any) (map[string]any, error) {
	d.mu.Lock()
	cfg := d.config
	d.mu.Unlock()

	return map[string]any{
		"profile":                cfg.Profile,
		"max_peers":              cfg.MaxPeers,
		"fee_multiplier":         cfg.FeeMultiplier,
		"strict_crypto_required": cfg.StrictCryptoRequired,
		"allow_unl_updates":      cfg.AllowUNLUpdates,
	}, nil
}

func (d *Dispatcher) agentConfigSet(params map[string]any) (map[string]any, error) {
	key, _ := params["key"].(string)
	value, _ := params["value"].(string)

	d.mu.Lock()
	defer d.mu.Unlock()

	next, err := ApplyConfigSet(d.config, key, value)
	if err != nil {
		return nil, resultErr(err.Error())
	}
	d.config = next
	return map[string]any{
		"profile":                next.Profile,
		"max_peers":              next.MaxPeers,
		"fee_multiplier":         next.FeeMultiplier,
		"strict_crypto_required": next.StrictCryptoRequired,
		"allow_unl_updates":      next.AllowUNLUpdates,
	}, nil
}

func asUint32(v any) (uint32, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0, false
		}
		return uint32(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint32(n), true
	default:
		return 0, false
	}
}
