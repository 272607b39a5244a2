package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"VACUUM_WIDTH", "VACUUM_HEIGHT", "VACUUM_RANDOM_STEPS", "VACUUM_DIRT_RATE",
	"VACUUM_WALL_RATE", "VACUUM_SEED", "VACUUM_TICK_MS", "VACUUM_DENSE_MAP", "VACUUM_DUMP_MAP",
}

// clearEnv прибирає змінні, а t.Setenv відновить їх після тесту.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load(missing)
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Width)
		assert.Equal(t, 7, cfg.Height)
		assert.Equal(t, 10, cfg.RandomSteps)
		assert.Equal(t, 0.3, cfg.DirtRate)
		assert.Equal(t, 0.0, cfg.WallRate)
		assert.Equal(t, uint64(0), cfg.Seed)
		assert.Equal(t, 200*time.Millisecond, cfg.Tick)
		assert.False(t, cfg.DenseMap)
	})

	t.Run("environment overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("VACUUM_WIDTH", "12")
		t.Setenv("VACUUM_HEIGHT", "9")
		t.Setenv("VACUUM_RANDOM_STEPS", "0")
		t.Setenv("VACUUM_DIRT_RATE", "0.5")
		t.Setenv("VACUUM_SEED", "99")
		t.Setenv("VACUUM_TICK_MS", "50")
		t.Setenv("VACUUM_DENSE_MAP", "true")

		cfg, err := Load(missing)
		require.NoError(t, err)
		assert.Equal(t, 12, cfg.Width)
		assert.Equal(t, 9, cfg.Height)
		assert.Equal(t, 0, cfg.RandomSteps)
		assert.Equal(t, 0.5, cfg.DirtRate)
		assert.Equal(t, uint64(99), cfg.Seed)
		assert.Equal(t, 50*time.Millisecond, cfg.Tick)
		assert.True(t, cfg.DenseMap)
	})

	t.Run("dotenv file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "vacuum.env")
		require.NoError(t, os.WriteFile(path, []byte("VACUUM_WIDTH=5\nVACUUM_HEIGHT=4\n"), 0o600))
		t.Cleanup(func() {
			os.Unsetenv("VACUUM_WIDTH")
			os.Unsetenv("VACUUM_HEIGHT")
		})

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Width)
		assert.Equal(t, 4, cfg.Height)
	})

	t.Run("invalid values", func(t *testing.T) {
		cases := []struct {
			key, value string
		}{
			{"VACUUM_WIDTH", "two"},
			{"VACUUM_HEIGHT", "2"},
			{"VACUUM_DIRT_RATE", "1.5"},
			{"VACUUM_DIRT_RATE", "NaN"},
			{"VACUUM_WALL_RATE", "NaN"},
			{"VACUUM_SEED", "-1"},
			{"VACUUM_TICK_MS", "0"},
			{"VACUUM_DUMP_MAP", "maybe"},
		}
		for _, c := range cases {
			t.Run(c.key+"="+c.value, func(t *testing.T) {
				clearEnv(t)
				t.Setenv(c.key, c.value)

				_, err := Load(missing)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			})
		}
	})

	t.Run("largest seed", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("VACUUM_SEED", "18446744073709551615")

		cfg, err := Load(missing)
		require.NoError(t, err)
		assert.Equal(t, uint64(math.MaxUint64), cfg.Seed)
	})
}

func TestValidateRejectsNaN(t *testing.T) {
	cfg := Config{Width: 5, Height: 5, Tick: time.Millisecond}
	require.NoError(t, cfg.Validate())

	cfg.WallRate = math.NaN()
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
