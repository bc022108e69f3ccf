package validation_test

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/hydrawallet/wallet-core/internal/wallet/auth"
	"github.com/hydrawallet/wallet-core/internal/wallet/fees"
	"github.com/hydrawallet/wallet-core/internal/wallet/gateway"
	"github.com/hydrawallet/wallet-core/internal/wallet/gateway/gatewaytest"
	"github.com/hydrawallet/wallet-core/internal/wallet/keyring"
	"github.com/hydrawallet/wallet-core/internal/wallet/validation"
	"github.com/hydrawallet/wallet-core/internal/wallet/walletconnect"
)

const (
	testOrigin  = "https://app.example-dapp.io/swap"
	testAddress = "0x1111111111111111111111111111111111111111"
	testOther   = "0x2222222222222222222222222222222222222222"
)

type fakeKeyring struct {
	pairs map[string]*keyring.Pair
}

func (f *fakeKeyring) GetPair(address string) (*keyring.Pair, error) {
	if pair, ok := f.pairs[address]; ok {
		return pair, nil
	}

	return nil, keyring.ErrPairNotFound
}

type fakeAuthStore struct {
	list map[string]*auth.Record
	err  error
}

func (f *fakeAuthStore) GetAuthList(_ context.Context) (map[string]*auth.Record, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.list, nil
}

type fakeWCService struct {
	sessions map[string]*walletconnect.Session
}

func (f *fakeWCService) GetSession(topic string) (*walletconnect.Session, error) {
	if session, ok := f.sessions[topic]; ok {
		return session, nil
	}

	return nil, walletconnect.ErrSessionNotFound
}

type fakeTxService struct {
	hash string
	err  error
}

func (f *fakeTxService) GenerateHashPayload(_ string, _ *gateway.Transaction) (string, error) {
	if f.err != nil {
		return "", f.err
	}

	if f.hash == "" {
		return "0xhash", nil
	}

	return f.hash, nil
}

func allowedRecord() *auth.Record {
	return &auth.Record{
		IsAllowed:            true,
		IsAllowedMap:         map[string]bool{testAddress: true},
		CurrentEVMNetworkKey: "ethereum",
		Origin:               "app.example-dapp.io",
		URL:                  testOrigin,
	}
}

func newDeps(gw *gatewaytest.Fake) *validation.Deps {
	return &validation.Deps{
		Keyring: &fakeKeyring{pairs: map[string]*keyring.Pair{
			testAddress: {Address: testAddress, Name: "main"},
		}},
		AuthStore:     &fakeAuthStore{list: map[string]*auth.Record{"app.example-dapp.io": allowedRecord()}},
		Gateway:       gw,
		FeeService:    fees.NewService(gw),
		WalletConnect: &fakeWCService{},
		TxService:     &fakeTxService{},
		ProbeTimeout:  50 * time.Millisecond,
	}
}

var errBoom = errors.New("boom")
