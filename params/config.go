package params

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Validation is the configuration surface of the validator: the instrument
// universe, quantity granularity and ceiling, and the side-code vocabulary.
// These are inputs to validation, never constants inside matching logic.
type Validation struct {
	Instruments []string
	LotSize     int64
	QtyCeiling  int64 // exclusive upper bound
	BuyCodes    []string
	SellCodes   []string
}

type Config struct {
	Validation Validation
}

func Default() Config {
	return Config{
		Validation: Validation{
			Instruments: []string{"Rose", "Lavender", "Lotus", "Tulip", "Orchid"},
			LotSize:     10,
			QtyCeiling:  1000,
			BuyCodes:    []string{"1"},
			SellCodes:   []string{"2"},
		},
	}
}

// LoadFromEnv loads configuration from a .env file (if present) and
// environment variables. Priority: ENV > .env file > defaults.
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if v := os.Getenv("CROCUS_INSTRUMENTS"); v != "" {
		cfg.Validation.Instruments = splitList(v)
	}
	if v := os.Getenv("CROCUS_LOT_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.Validation.LotSize = n
		}
	}
	if v := os.Getenv("CROCUS_QTY_CEILING"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.Validation.QtyCeiling = n
		}
	}
	if v := os.Getenv("CROCUS_BUY_CODES"); v != "" {
		cfg.Validation.BuyCodes = splitList(v)
	}
	if v := os.Getenv("CROCUS_SELL_CODES"); v != "" {
		cfg.Validation.SellCodes = splitList(v)
	}

	return cfg
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
