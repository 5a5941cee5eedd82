package ledger

// Policy holds the admission rules that are a matter of choice rather than
// structure. They are evaluated only when a command is first applied, never
// during replay, so changing them does not invalidate an existing log.
type Policy struct {
	// AllowDisableWithBalance permits disabling an account that still holds
	// a nonzero balance in some currency.
	AllowDisableWithBalance bool
	// AllowOverdraft permits transactions that drive a balance below zero.
	AllowOverdraft bool
}

// DefaultPolicy rejects disabling funded accounts and any transaction that
// leaves a balance below zero.
func DefaultPolicy() Policy {
	return Policy{}
}

func replayPolicy() Policy {
	return Policy{AllowDisableWithBalance: true, AllowOverdraft: true}
}
