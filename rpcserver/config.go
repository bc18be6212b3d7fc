package rpcserver

import "fmt"

// Profile is ControlProfile from §3: the two operating modes this daemon
// can run in.
type Profile string

const (
	ProfileResearch   Profile = "research"
	ProfileProduction Profile = "production"
)

// AgentControlConfig is the mutable operator-facing configuration knob set
// from §3, bounded per §4.7.
type AgentControlConfig struct {
	Profile               Profile `json:"profile"`
	MaxPeers              uint32  `json:"max_peers"`
	FeeMultiplier         uint32  `json:"fee_multiplier"`
	StrictCryptoRequired  bool    `json:"strict_crypto_required"`
	AllowUNLUpdates       bool    `json:"allow_unl_updates"`
}

// DefaultAgentControlConfig returns a conservative research-profile default.
func DefaultAgentControlConfig() AgentControlConfig {
	return AgentControlConfig{
		Profile:              ProfileResearch,
		MaxPeers:             50,
		FeeMultiplier:        10,
		StrictCryptoRequired: false,
		AllowUNLUpdates:      true,
	}
}

// ConfigError is the stable taxonomy for agent_config_set rejections.
type ConfigError struct {
	Code string
	Msg  string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

const (
	CodeUnsupportedConfigKey  = "UnsupportedConfigKey"
	CodeInvalidConfigValue    = "InvalidConfigValue"
	CodeConfigValueOutOfRange = "ConfigValueOutOfRange"
	CodeUnsafeProfileTransition = "UnsafeProfileTransition"
	CodePolicyViolation       = "PolicyViolation"
)

func configErr(code, msg string) error {
	return &ConfigError{Code: code, Msg: msg}
}

// productionSafe reports whether cfg would be a safe production-profile
// configuration per §4.7's transition invariant.
func productionSafe(cfg AgentControlConfig) bool {
	return cfg.StrictCryptoRequired &&
		!cfg.AllowUNLUpdates &&
		cfg.FeeMultiplier <= 5 &&
		cfg.MaxPeers <= 100
}

// ApplyConfigSet validates and applies a single agent_config_set mutation
// against current, returning the new config on success. current is never
// mutated on error.
func ApplyConfigSet(current AgentControlConfig, key string, value string) (AgentControlConfig, error) {
	next := current

	switch key {
	case "max_peers":
		v, err := parseUint(value)
		if err != nil {
			return current, configErr(CodeInvalidConfigValue, "max_peers must be an integer")
		}
		hi := uint32(200)
		if next.Profile == ProfileProduction {
			hi = 100
		}
		if v < 5 || v > hi {
			return current, configErr(CodeConfigValueOutOfRange, fmt.Sprintf("max_peers must be in [5, %d]", hi))
		}
		next.MaxPeers = v

	case "fee_multiplier":
		v, err := parseUint(value)
		if err != nil {
			return current, configErr(CodeInvalidConfigValue, "fee_multiplier must be an integer")
		}
		hi := uint32(100)
		if next.Profile == ProfileProduction {
			hi = 5
		}
		if v < 1 || v > hi {
			return current, configErr(CodeConfigValueOutOfRange, fmt.Sprintf("fee_multiplier must be in [1, %d]", hi))
		}
		next.FeeMultiplier = v

	case "strict_crypto_required":
		v, err := parseBool(value)
		if err != nil {
			return current, configErr(CodeInvalidConfigValue, "strict_crypto_required must be a boolean")
		}
		if next.Profile == ProfileProduction && !v {
			return current, configErr(CodeConfigValueOutOfRange, "production requires strict_crypto_required=true")
		}
		next.StrictCryptoRequired = v

	case "allow_unl_updates":
		v, err := parseBool(value)
		if err != nil {
			return current, configErr(CodeInvalidConfigValue, "allow_unl_updates must be a boolean")
		}
		if next.Profile == ProfileProduction && v {
			return current, configErr(CodeConfigValueOutOfRange, "production requires allow_unl_updates=false")
		}
		next.AllowUNLUpdates = v

	case "profile":
		switch value {
		case string(ProfileResearch):
			next.Profile = ProfileResearch
		case string(ProfileProduction):
			next.Profile = ProfileProduction
		default:
			return current, configErr(CodeInvalidConfigValue, "profile must be research or production")
		}

	default:
		return current, configErr(CodeUnsupportedConfigKey, key)
	}

	if next.Profile == ProfileProduction && !productionSafe(next) {
		if current.Profile != ProfileProduction {
			return current, configErr(CodeUnsafeProfileTransition, "proposed config is not safe for the production profile")
		}
		return current, configErr(CodePolicyViolation, "config change would violate production profile policy")
	}

	return next, nil
}

func parseUint(s string) (uint32, error) {
	var v uint64
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid digit %q", c)
		}
		v = v*10 + uint64(c-'0')
		if v > 1<<32-1 {
			return 0, fmt.Errorf("value out of range")
		}
	}
	return uint32(v), nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean")
	}
}
