package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type JanitorConfig struct {
	SweepInterval string `json:"sweep_interval"`
}

func (c *JanitorConfig) Validate() error {
	el := errors.NewErrorList()

	if c.SweepInterval != "" {
		d, err := time.ParseDuration(c.SweepInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing sweep_interval: %w", err))
		} else if d < time.Second {
			el.Add(fmt.Errorf("sweep_interval must be at least 1 second"))
		}
	}

	return el.Err()
}

func (c *JanitorConfig) interval() (time.Duration, error) {
	if c.SweepInterval == "" {
		return 0, nil
	}
	return time.ParseDuration(c.SweepInterval)
}
