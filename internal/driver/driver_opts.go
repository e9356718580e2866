package driver

import "time"

type StoreDriverOpt func(*StoreDriver)

func WithTickLength(tickLength time.Duration) StoreDriverOpt {
	return func(d *StoreDriver) {
		d.tickLength = tickLength
	}
}
