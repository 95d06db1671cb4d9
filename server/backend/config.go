package backend

import (
	"fmt"

	"github.com/topi314/academy-dashboard/internal/xtime"
)

type Config struct {
	URL        string         `toml:"url"`
	Timeout    xtime.Duration `toml:"timeout"`
	Every      xtime.Duration `toml:"every"`
	Burst      int            `toml:"burst"`
	MaxRetries int            `toml:"max_retries"`
	RetryDelay xtime.Duration `toml:"retry_delay"`
}

func (c Config) String() string {
	return fmt.Sprintf("\n URL: %s\n Timeout: %s\n Every: %s\n Burst: %d\n MaxRetries: %d\n RetryDelay: %s",
		c.URL,
		c.Timeout,
		c.Every,
		c.Burst,
		c.MaxRetries,
		c.RetryDelay,
	)
}
