package generator

// Config drives the synthetic data generator.
type Config struct {
	NumUsers    int
	NumProducts int
	Password    string
	Seed        int64
}

// DefaultConfig returns baseline settings for a small demo dataset.
func DefaultConfig() Config {
	return Config{
		NumUsers:    25,
		NumProducts: 40,
		Password:    "demo123",
		Seed:        42,
	}
}
