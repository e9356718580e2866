package command

import (
	"github.com/pixil98/go-errors"
)

type Config struct {
	Store   StoreConfig   `json:"store"`
	Nats    NatsConfig    `json:"nats"`
	Blob    BlobConfig    `json:"blob"`
	Janitor JanitorConfig `json:"janitor"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	el.Add(c.Store.Validate())
	el.Add(c.Nats.Validate())
	el.Add(c.Blob.Validate())
	el.Add(c.Janitor.Validate())

	return el.Err()
}
