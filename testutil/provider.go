package testutil

import (
	"context"

	"github.com/yeremiapane/restaurant-menu/services"
)

// FakeProvider implements services.IdentityProvider with canned answers.
type FakeProvider struct {
	Creds   *services.Credentials
	Info    *services.TokenInfo
	Profile *services.Profile

	ExchangeErr  error
	TokenInfoErr error
	UserInfoErr  error
	RevokeErr    error

	ExchangeCalls int
	UserInfoCalls int
	RevokeCalls   int
	LastCode      string
	LastRevoked   string
}

// NewFakeProvider answers as Google would for a valid sign-in of the
// given account to clientID.
func NewFakeProvider(clientID, subject, name, email string) *FakeProvider {
	return &FakeProvider{
		Creds: &services.Credentials{AccessToken: "token-" + subject, Subject: subject},
		Info:  &services.TokenInfo{UserID: subject, IssuedTo: clientID},
		Profile: &services.Profile{
			Name:    name,
			Email:   email,
			Picture: "https://example.com/" + subject + ".png",
		},
	}
}

func (f *FakeProvider) Exchange(ctx context.Context, code string) (*services.Credentials, error) {
	f.ExchangeCalls++
	f.LastCode = code
	if f.ExchangeErr != nil {
		return nil, f.ExchangeErr
	}
	creds := *f.Creds
	return &creds, nil
}

func (f *FakeProvider) TokenInfo(ctx context.Context, accessToken string) (*services.TokenInfo, error) {
	if f.TokenInfoErr != nil {
		return nil, f.TokenInfoErr
	}
	info := *f.Info
	return &info, nil
}

func (f *FakeProvider) UserInfo(ctx context.Context, accessToken string) (*services.Profile, error) {
	f.UserInfoCalls++
	if f.UserInfoErr != nil {
		return nil, f.UserInfoErr
	}
	profile := *f.Profile
	return &profile, nil
}

func (f *FakeProvider) Revoke(ctx context.Context, accessToken string) error {
	f.RevokeCalls++
	f.LastRevoked = accessToken
	return f.RevokeErr
}
