package auth

import (
	"fmt"

	"github.com/topi314/academy-dashboard/internal/xtime"
)

type Config struct {
	CookieName   string         `toml:"cookie_name"`
	CookieSecure bool           `toml:"cookie_secure"`
	Leeway       xtime.Duration `toml:"leeway"`
}

func (c Config) String() string {
	return fmt.Sprintf("\n CookieName: %s\n CookieSecure: %t\n Leeway: %s",
		c.CookieName,
		c.CookieSecure,
		c.Leeway,
	)
}
