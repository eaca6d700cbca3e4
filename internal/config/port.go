package config

import "strconv"

// Port bounds for the serve argument. Values below 1024 would need
// elevated privileges, so they fall back to the default too.
const (
	DefaultPort = 8080
	MinPort     = 1024
	MaxPort     = 65535
)

// ParsePort interprets the optional positional port argument.
// Non-numeric or out-of-range values fall back to fallback.
func ParsePort(arg string, fallback int) int {
	if arg == "" {
		return fallback
	}
	port, err := strconv.Atoi(arg)
	if err != nil || port < MinPort || port > MaxPort {
		return fallback
	}
	return port
}
