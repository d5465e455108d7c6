package engine

import "errors"

var (
	// ErrInsufficientHistory means fewer closes than the long window were available.
	ErrInsufficientHistory = errors.New("not enough price history for the long moving average")

	// ErrDataFetch wraps any failure of a market data or sentiment collaborator.
	ErrDataFetch = errors.New("error fetching data")

	ErrInvalidWindow = errors.New("invalid moving-average window")

	ErrInvalidSymbol = errors.New("invalid ticker symbol")
)
