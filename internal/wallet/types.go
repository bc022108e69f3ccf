package wallet

// TransactionRequest is a dApp-originated eth_sendTransaction request.
type TransactionRequest struct {
	NetworkKey string
	Address    string
	Params     any
}

// SignMessageRequest is a dApp-originated message-signing request.
type SignMessageRequest struct {
	Address string
	Method  string
	Payload any
}

// WalletConnectRequest is a request arriving over a WalletConnect session
// instead of the injected provider. Method selects the downstream
// validation the same way it does for injected requests.
type WalletConnectRequest struct {
	Topic      string
	NetworkKey string
	Address    string
	Method     string
	Payload    any
}
