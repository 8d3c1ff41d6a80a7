package cinedex

type clientConfig struct {
	snapshotPath  string
	maxFeatures   int
	degradedStart bool
}

// Option configures a Client.
type Option func(*clientConfig)

// WithSnapshot sets the catalog snapshot path (.csv or .parquet).
func WithSnapshot(path string) Option {
	return func(c *clientConfig) {
		c.snapshotPath = path
	}
}

// WithMaxFeatures caps the vocabulary size of the similarity index.
// Values below one keep the default.
func WithMaxFeatures(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.maxFeatures = n
		}
	}
}

// WithDegradedStart lets New succeed even when the initial snapshot
// load fails. Queries return ErrNotLoaded until Reload succeeds.
func WithDegradedStart() Option {
	return func(c *clientConfig) {
		c.degradedStart = true
	}
}
