package command

import (
	"fmt"

	"github.com/pixil98/go-forge/internal/driver"
	"github.com/pixil98/go-forge/internal/mutators"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	workers := service.WorkerList{}

	// Create the event bus
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	workers["nats"] = natsServer

	// Create the document store on the configured backend
	docStore, err := cfg.Store.BuildStore(natsServer)
	if err != nil {
		return nil, fmt.Errorf("creating document store: %w", err)
	}

	// Setup the presence janitor
	var driverOpts []driver.StoreDriverOpt
	interval, err := cfg.Janitor.interval()
	if err != nil {
		return nil, fmt.Errorf("creating janitor: %w", err)
	}
	if interval > 0 {
		driverOpts = append(driverOpts, driver.WithTickLength(interval))
	}
	workers["driver"] = driver.NewStoreDriver([]driver.Manager{
		mutators.NewJanitor(docStore),
	}, driverOpts...)

	// Optionally serve the versioned-blob endpoint
	if cfg.Blob.Enabled {
		workers["blob"] = cfg.Blob.buildServer()
	}

	return workers, nil
}
