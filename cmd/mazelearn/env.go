package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Prefix of the environment variables holding flag defaults
const envPrefix = "MAZELEARN_"

// defaults holds the flag defaults read from the environment
type defaults struct {
	Agent    string
	Mode     string
	Rows     int
	Cols     int
	Episodes int
	Seed     uint64
	Out      string
}

// loadDefaults loads a .env file if one exists, then reads the
// MAZELEARN_* variables, falling back to built-in values
func loadDefaults(files ...string) (defaults, error) {
	if err := godotenv.Load(files...); err != nil && len(files) > 0 {
		return defaults{}, fmt.Errorf("loadDefaults: %v", err)
	}

	d := defaults{
		Agent: getEnvWithDefault("AGENT", "hybrid"),
		Mode:  getEnvWithDefault("MODE", "static"),
		Out:   getEnvWithDefault("OUT", "runs"),
	}

	var err error
	if d.Rows, err = getEnvAsInt("ROWS", 11); err != nil {
		return defaults{}, err
	}
	if d.Cols, err = getEnvAsInt("COLS", 11); err != nil {
		return defaults{}, err
	}
	if d.Episodes, err = getEnvAsInt("EPISODES", 500); err != nil {
		return defaults{}, err
	}
	seed, err := getEnvAsInt("SEED", 1)
	if err != nil {
		return defaults{}, err
	}
	d.Seed = uint64(seed)

	return d, nil
}

// getEnvWithDefault retrieves the value of an environment variable or
// returns a default value if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(envPrefix + key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves the value of an environment variable as an
// integer or returns a default value if not set
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(envPrefix + key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s%s must be an "+
			"integer: %v", envPrefix, key, err)
	}
	return value, nil
}
