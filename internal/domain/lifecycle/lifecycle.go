// Package lifecycle holds shared startup and shutdown settings.
package lifecycle

import "time"

// DefaultTimeout bounds start hooks (pings, migrations, seeding) and graceful shutdown.
const DefaultTimeout = 30 * time.Second
