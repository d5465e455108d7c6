package interfaces

import (
	"context"

	"github.com/samarth5630/stock-dashboard/internal/types"
)

type Engine interface {
	Analyze(ctx context.Context, symbol string) (*types.Analysis, error)
}
