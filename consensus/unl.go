package consensus

// ValidatorInfo describes one entry of the unique node list, per §3.
type ValidatorInfo struct {
	PublicKey [33]byte
	NodeID    [32]byte
	IsTrusted bool
}

// UNL is the unique node list: the set of validators this node trusts for
// agreement counting. Only entries with IsTrusted=true count toward
// agreement; untrusted entries are kept only so operators can see who was
// dropped.
type UNL struct {
	validators map[[32]byte]ValidatorInfo
}

// NewUNL returns an empty UNL.
func NewUNL() *UNL {
	return &UNL{validators: make(map[[32]byte]ValidatorInfo)}
}

// Add inserts or replaces a validator entry.
func (u *UNL) Add(v ValidatorInfo) {
	u.validators[v.NodeID] = v
}

// IsTrusted reports whether nodeID is present and trusted.
func (u *UNL) IsTrusted(nodeID [32]byte) bool {
	v, ok := u.validators[nodeID]
	return ok && v.IsTrusted
}

// TrustedCount returns the number of trusted validators.
func (u *UNL) TrustedCount() int {
	n := 0
	for _, v := range u.validators {
		if v.IsTrusted {
			n++
		}
	}
	return n
}

// Len returns the total number of entries, trusted or not.
func (u *UNL) Len() int {
	return len(u.validators)
}
