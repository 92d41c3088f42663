package bank

import "context"

type Source interface {
	Load(ctx context.Context, path string) (Bank, error)
}
