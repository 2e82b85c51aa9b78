// Package checkpoint tracks which targets a batch run has already
// processed, so an interrupted run can resume without repeating work.
package checkpoint

// Option configures a checkpoint store.
type Option func(*Config)

// Config holds checkpoint store configuration.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// WithAddr sets the Redis address.
func WithAddr(addr string) Option {
	return func(c *Config) {
		c.Addr = addr
	}
}

// WithPassword sets the Redis password.
func WithPassword(password string) Option {
	return func(c *Config) {
		c.Password = password
	}
}

// WithDB sets the Redis database number.
func WithDB(db int) Option {
	return func(c *Config) {
		c.DB = db
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Config) {
		c.Prefix = prefix
	}
}
