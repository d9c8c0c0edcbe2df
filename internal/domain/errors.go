package domain

import "errors"

var (
	ErrInvalidRange        = errors.New("invalid date range")
	ErrNotFound            = errors.New("no data found for selected currency and/or time frame")
	ErrUpstreamFailure     = errors.New("upstream failure")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)
