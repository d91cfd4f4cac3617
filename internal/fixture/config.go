package fixture

// Options tunes the fixture API. Latency is in milliseconds.
type Options struct {
	FailEvery int
	Latency   int
}

// Config is read by goconfig from flags, env and an optional JSON file.
type Config struct {
	HttpAddr   string `usage:"HTTP address"`
	Dataset    string `usage:"JSON dataset replacing the embedded characters"`
	FailEvery  int    `usage:"answer every Nth list request with a 500, 0 disables"`
	Latency    int    `usage:"delay every request by this many milliseconds"`
	ShowConfig bool   `usage:"print config"`
	Version    bool   `usage:"show version and exit"`
}

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		HttpAddr: "127.0.0.1:7488",
	}
}

// Options extracts the API options from c.
func (c Config) Options() Options {
	return Options{
		FailEvery: c.FailEvery,
		Latency:   c.Latency,
	}
}
