// Package config reads typed settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// CSV splits a comma separated list and drops blanks.
func CSV(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

// envParsed falls back to def when key is unset or parse rejects it.
func envParsed[T any](key string, def T, parse func(string) (T, error)) T {
	v := EnvDefault(key, "")
	if v == "" {
		return def
	}
	out, err := parse(v)
	if err != nil {
		return def
	}
	return out
}

func EnvIntDefault(key string, def int) int {
	return envParsed(key, def, strconv.Atoi)
}

// EnvDurationDefault accepts time.ParseDuration syntax ("15m", "168h").
// Non-positive durations fall back to def.
func EnvDurationDefault(key string, def time.Duration) time.Duration {
	d := envParsed(key, def, time.ParseDuration)
	if d <= 0 {
		return def
	}
	return d
}
