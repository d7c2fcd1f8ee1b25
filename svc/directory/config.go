package directory

import "time"

// Config holds the Directory Service connection settings.
type Config struct {
	BaseURL string        `env:"DIRECTORY_BASE_URL" envDefault:"http://localhost:8080/api"`
	Timeout time.Duration `env:"DIRECTORY_TIMEOUT" envDefault:"10s"`
}
