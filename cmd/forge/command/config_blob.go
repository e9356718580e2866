package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-forge/internal/blob"
)

// BlobConfig optionally runs the in-process versioned-blob endpoint,
// useful for development and for pointing a remote-backend instance at
// a sibling process.
type BlobConfig struct {
	Enabled  bool   `json:"enabled"`
	Address  string `json:"address"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *BlobConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Enabled && c.Address == "" {
		el.Add(fmt.Errorf("blob server requires an address"))
	}
	if c.Username != "" && c.Password == "" {
		el.Add(fmt.Errorf("blob server username set without a password"))
	}

	return el.Err()
}

func (c *BlobConfig) buildServer() *blob.Server {
	var opts []blob.HandlerOpt
	if c.Username != "" {
		opts = append(opts, blob.WithAuth(c.Username, c.Password))
	}

	return blob.NewServer(c.Address, blob.NewHandler(opts...))
}
