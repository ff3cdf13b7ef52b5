package api

import "time"

type Config struct {
	HTTPAddr        string        `envconfig:"TUID_HTTP_ADDR" default:"0.0.0.0:8080"`
	MetricsAddr     string        `envconfig:"TUID_METRICS_ADDR" default:"0.0.0.0:9090"`
	LogLevel        string        `envconfig:"TUID_LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"TUID_SHUTDOWN_TIMEOUT" default:"30s"`

	// Mode selects the anti-collision policy: "sequence" or "random".
	Mode string `envconfig:"TUID_MODE" default:"sequence"`

	// MachineID is this instance's disambiguator (0-255). -1 means lease one
	// from the database, which then requires DBDSN.
	MachineID int    `envconfig:"TUID_MACHINE_ID" default:"-1"`
	DBDSN     string `envconfig:"TUID_DB_DSN"`

	// LeaseTTL is how long a machine-ID lease stays valid without a
	// heartbeat. Heartbeats run at a third of this interval.
	LeaseTTL time.Duration `envconfig:"TUID_LEASE_TTL" default:"30s"`

	// MaxBatch caps the count accepted by POST /v1/ids.
	MaxBatch int `envconfig:"TUID_MAX_BATCH" default:"1000"`
}
