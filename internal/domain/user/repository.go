package user

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_remote.go -package=mocks . Remote

import "context"

// Remote is the account side of the remote exchange service.
type Remote interface {
	Register(ctx context.Context, reg Registration) (string, error)
	Login(ctx context.Context, creds Credentials) (string, error)
}
