package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-forge/internal/storage"
	"github.com/pixil98/go-forge/internal/store"
)

const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// StoreConfig selects and configures the document backend. The backend
// is chosen once at startup, never per call.
type StoreConfig struct {
	Backend string            `json:"backend"`
	Local   LocalStoreConfig  `json:"local"`
	Remote  RemoteStoreConfig `json:"remote"`
}

type LocalStoreConfig struct {
	Path string `json:"path"`
}

type RemoteStoreConfig struct {
	Address        string `json:"address"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	RequestTimeout string `json:"request_timeout"`
}

func (c *StoreConfig) Validate() error {
	el := errors.NewErrorList()

	switch c.Backend {
	case BackendLocal:
		if c.Local.Path == "" {
			el.Add(fmt.Errorf("local backend requires a path"))
		}
	case BackendRemote:
		if c.Remote.Address == "" {
			el.Add(fmt.Errorf("remote backend requires an address"))
		}
		if c.Remote.RequestTimeout != "" {
			if _, err := time.ParseDuration(c.Remote.RequestTimeout); err != nil {
				el.Add(fmt.Errorf("parsing request_timeout: %w", err))
			}
		}
	default:
		el.Add(fmt.Errorf("backend must be %q or %q, got %q", BackendLocal, BackendRemote, c.Backend))
	}

	return el.Err()
}

func (c *StoreConfig) buildBackend() (storage.Backend, error) {
	switch c.Backend {
	case BackendLocal:
		return storage.NewFileBackend(c.Local.Path), nil

	case BackendRemote:
		var opts []storage.BlobBackendOpt
		if c.Remote.Username != "" {
			opts = append(opts, storage.WithCredentials(c.Remote.Username, c.Remote.Password))
		}
		if c.Remote.RequestTimeout != "" {
			d, err := time.ParseDuration(c.Remote.RequestTimeout)
			if err != nil {
				return nil, fmt.Errorf("parsing request_timeout: %w", err)
			}
			opts = append(opts, storage.WithRequestTimeout(d))
		}
		return storage.NewBlobBackend(c.Remote.Address, opts...)

	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}

// BuildStore assembles the document store on the configured backend.
func (c *StoreConfig) BuildStore(events store.Publisher) (*store.Store, error) {
	backend, err := c.buildBackend()
	if err != nil {
		return nil, fmt.Errorf("creating %s backend: %w", c.Backend, err)
	}

	var opts []store.StoreOpt
	if events != nil {
		opts = append(opts, store.WithPublisher(events))
	}

	return store.New(backend, opts...), nil
}
