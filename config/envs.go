package config

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the simulation's configuration values.
type Config struct {
	Width       int           // Grid width including the border walls
	Height      int           // Grid height including the border walls
	RandomSteps int           // Random placement steps before normal operation
	DirtRate    float64       // Probability that a free cell starts dirty
	WallRate    float64       // Probability that an interior cell is an obstacle
	Seed        uint64        // RNG seed, 0 means time based
	Tick        time.Duration // Decision cycle period for the GUI and headless runner
	DenseMap    bool          // Dump the belief map without spacing
	DumpMap     bool          // Dump the belief map every cycle
}

var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads an optional .env file (or the given files) and then the
// environment. Unset variables fall back to defaults.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Printf(LogInfoPrefix+".env file not found or could not be loaded: %v", err)
	}

	var (
		cfg Config
		err error
	)
	if cfg.Width, err = getEnvAsInt("VACUUM_WIDTH", 7); err != nil {
		return Config{}, err
	}
	if cfg.Height, err = getEnvAsInt("VACUUM_HEIGHT", 7); err != nil {
		return Config{}, err
	}
	if cfg.RandomSteps, err = getEnvAsInt("VACUUM_RANDOM_STEPS", 10); err != nil {
		return Config{}, err
	}
	if cfg.DirtRate, err = getEnvAsFloat("VACUUM_DIRT_RATE", 0.3); err != nil {
		return Config{}, err
	}
	if cfg.WallRate, err = getEnvAsFloat("VACUUM_WALL_RATE", 0); err != nil {
		return Config{}, err
	}

	if cfg.Seed, err = getEnvAsUint64("VACUUM_SEED", 0); err != nil {
		return Config{}, err
	}

	tickMs, err := getEnvAsInt("VACUUM_TICK_MS", 200)
	if err != nil {
		return Config{}, err
	}
	cfg.Tick = time.Duration(tickMs) * time.Millisecond

	if cfg.DenseMap, err = getEnvAsBool("VACUUM_DENSE_MAP", false); err != nil {
		return Config{}, err
	}
	if cfg.DumpMap, err = getEnvAsBool("VACUUM_DUMP_MAP", false); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// Validate checks the ranges the simulation relies on.
func (c Config) Validate() error {
	if c.Width < 3 || c.Height < 3 {
		return fmt.Errorf("%w: grid must be at least 3x3, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.RandomSteps < 0 {
		return fmt.Errorf("%w: random steps must not be negative", ErrInvalidConfig)
	}
	if math.IsNaN(c.DirtRate) || c.DirtRate < 0 || c.DirtRate > 1 {
		return fmt.Errorf("%w: dirt rate %v outside [0,1]", ErrInvalidConfig, c.DirtRate)
	}
	if math.IsNaN(c.WallRate) || c.WallRate < 0 || c.WallRate > 1 {
		return fmt.Errorf("%w: wall rate %v outside [0,1]", ErrInvalidConfig, c.WallRate)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("%w: tick must be positive", ErrInvalidConfig)
	}
	return nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer variable or the default if not set.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: environment variable %s must be an integer: %v", ErrInvalidConfig, key, err)
	}
	return n, nil
}

// getEnvAsUint64 retrieves a non-negative integer variable or the default if not set.
func getEnvAsUint64(key string, defaultValue uint64) (uint64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: environment variable %s must be a non-negative integer: %v", ErrInvalidConfig, key, err)
	}
	return n, nil
}

// getEnvAsFloat retrieves a float variable or the default if not set.
func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: environment variable %s must be a number: %v", ErrInvalidConfig, key, err)
	}
	return f, nil
}

// getEnvAsBool retrieves a boolean variable or the default if not set.
func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := getEnvWithDefault(key, strconv.FormatBool(defaultValue))
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: environment variable %s must be a boolean: %v", ErrInvalidConfig, key, err)
	}
	return b, nil
}
