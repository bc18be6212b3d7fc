package rpcserver

// productionAllowlist is the method surface permitted in the production
// profile, per §4.7. Research permits every method.
var productionAllowlist = map[string]bool{
	"server_info":      true,
	"ledger":           true,
	"ledger_current":   true,
	"fee":              true,
	"ping":             true,
	"agent_status":     true,
	"agent_config_get": true,
	"account_info":     true,
}

// Allowed reports whether method may be dispatched under profile.
func Allowed(profile Profile, method string) bool {
	if profile != ProfileProduction {
		return true
	}
	return productionAllowlist[method]
}
