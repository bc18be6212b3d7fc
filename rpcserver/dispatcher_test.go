package rpcserver

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/SMC17/rippled-zig-sub000/ledger"
	"github.com/SMC17/rippled-zig-sub000/txprocessor"
	"github.com/SMC17/rippled-zig-sub000/types"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, types.AccountID) {
	t.Helper()
	m := ledger.NewManager()
	sender := types.AccountID{1}
	m.Accounts().Put(types.AccountRoot{Account: sender, Balance: 1000 * types.XRP, Sequence: 1})
	p := txprocessor.New(m)
	return NewDispatcher(m, p, nil), sender
}

func TestServerInfoReportsCurrentLedger(t *testing.T) {
	d, _ := newTestDispatcher(t)
	res := d.Dispatch("server_info", nil)
	require.Equal(t, "success", res["status"])
	require.Equal(t, 1, res["network_id"])
}

func TestLedgerCurrentRejectsParams(t *testing.T) {
	d, _ := newTestDispatcher(t)
	res := d.Dispatch("ledger_current", map[string]any{"x": 1})
	require.Equal(t, "error", res["status"])
}

func TestLedgerMissingReturnsCode20(t *testing.T) {
	d, _ := newTestDispatcher(t)
	res := d.Dispatch("ledger", map[string]any{"index": float64(999)})
	require.Equal(t, "error", res["status"])
	require.Equal(t, 20, res["error_code"])
}

func TestAccountInfoMissingReturnsCode15(t *testing.T) {
	d, _ := newTestDispatcher(t)
	res := d.Dispatch("account_info", map[string]any{"account": types.AccountID{0xEE}.String()})
	require.Equal(t, "error", res["status"])
	require.Equal(t, 15, res["error_code"])
}

func TestAccountInfoFound(t *testing.T) {
	d, sender := newTestDispatcher(t)
	res := d.Dispatch("account_info", map[string]any{"account": sender.String()})
	require.Equal(t, "success", res["status"])
}

func TestPingRejectsParams(t *testing.T) {
	d, _ := newTestDispatcher(t)
	res := d.Dispatch("ping", map[string]any{"x": 1})
	require.Equal(t, "error", res["status"])

	ok := d.Dispatch("ping", nil)
	require.Equal(t, "success", ok["status"])
}

func TestProductionProfileBlocksSubmit(t *testing.T) {
	d, _ := newTestDispatcher(t)
	d.config.Profile = ProfileProduction
	d.config.StrictCryptoRequired = true
	d.config.AllowUNLUpdates = false
	d.config.FeeMultiplier = 5
	d.config.MaxPeers = 100

	res := d.Dispatch("submit", map[string]any{"tx_blob_hex": "00"})
	require.Equal(t, "error", res["status"])
	require.Equal(t, "Method blocked by profile policy", res["error_message"])
}

func TestSubmitValidPaymentViaRPC(t *testing.T) {
	d, sender := newTestDispatcher(t)
	dest := types.AccountID{2}
	d.manager.Accounts().Put(types.AccountRoot{Account: dest, Sequence: 1})

	blob := make([]byte, 0, 62)
	typeBuf := make([]byte, 2)
	binary.BigEndian.PutUint16(typeBuf, uint16(types.TxPayment))
	blob = append(blob, typeBuf...)
	blob = append(blob, sender[:]...)
	feeBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(feeBuf, uint64(types.MinTxFee))
	blob = append(blob, feeBuf...)
	seqBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(seqBuf, 1)
	blob = append(blob, seqBuf...)
	blob = append(blob, dest[:]...)
	dropsBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(dropsBuf, uint64(10*types.XRP))
	blob = append(blob, dropsBuf...)

	res := d.Dispatch("submit", map[string]any{"tx_blob_hex": hex.EncodeToString(blob)})
	require.Equal(t, "success", res["status"])
	require.Equal(t, "tesSUCCESS", res["engine_result"])

	senderRoot, _ := d.manager.Accounts().Get(sender)
	destRoot, _ := d.manager.Accounts().Get(dest)
	require.Equal(t, 1000*types.XRP-types.MinTxFee-10*types.XRP, senderRoot.Balance)
	require.Equal(t, uint32(2), senderRoot.Sequence)
	require.Equal(t, 10*types.XRP, destRoot.Balance)
	require.Len(t, d.processor.GetPending(), 1)
}

func TestAgentConfigSetUnsupportedKey(t *testing.T) {
	d, _ := newTestDispatcher(t)
	res := d.Dispatch("agent_config_set", map[string]any{"key": "nope", "value": "1"})
	require.Equal(t, "error", res["status"])
}

func TestAgentConfigSetProductionTransitionRequiresSafety(t *testing.T) {
	d, _ := newTestDispatcher(t)
	res := d.Dispatch("agent_config_set", map[string]any{"key": "profile", "value": "production"})
	require.Equal(t, "error", res["status"])
}

func TestAgentConfigSetAppliesValidChange(t *testing.T) {
	d, _ := newTestDispatcher(t)
	res := d.Dispatch("agent_config_set", map[string]any{"key": "max_peers", "value": "75"})
	require.Equal(t, "success", res["status"])
	require.Equal(t, uint32(75), res["max_peers"])
}
