package driver

import (
	"context"
	"time"
)

const (
	DefaultTickLength = time.Second * 10
)

// Manager is a periodic maintenance task driven by the store driver.
type Manager interface {
	Tick(context.Context) error
}

// StoreDriver ticks its managers on a fixed interval until the context
// is cancelled.
type StoreDriver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewStoreDriver(managers []Manager, opts ...StoreDriverOpt) *StoreDriver {
	d := &StoreDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *StoreDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

func (d *StoreDriver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
