package interfaces

import (
	"context"
)

// MarketsService renders the market overview screen.
type MarketsService interface {
	Screen(ctx context.Context) (string, error)
}

// SectorsService renders the sector drill-down screen.
type SectorsService interface {
	Screen(ctx context.Context, name string) (string, error)
}

// TickersService renders single-ticker and batch-comparison screens.
type TickersService interface {
	Screen(ctx context.Context, symbol string) (string, error)
	CompareScreen(ctx context.Context, symbols []string) (string, error)
}

// OptionsService renders the options analysis screen.
type OptionsService interface {
	Screen(ctx context.Context, symbol, expiration string) (string, error)
}
