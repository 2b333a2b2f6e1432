package model

// Network names the ledger a process follows. It labels logs and metrics only.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)
