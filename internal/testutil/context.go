package testutil

import (
	"context"

	"github.com/luminapower/propdeck/internal/types"
)

// SetupContext returns a context carrying the request scoped values the
// application expects
func SetupContext() context.Context {
	return types.SetRequestID(context.Background(), "req_test")
}
