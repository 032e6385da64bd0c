package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderExists       = errors.New("order id already exists")
	ErrInvalidOrder      = errors.New("invalid order")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrCourierSyncFailed = errors.New("courier sync failed")
	ErrNoCourier         = errors.New("order has no courier")
)
