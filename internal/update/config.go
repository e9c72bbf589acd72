package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DBPath               string
	DesktopNotifications bool
	DueCheckSeconds      int
	CustomMinutes        int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:               ".devdesk.db",
		DesktopNotifications: false,
		DueCheckSeconds:      60,
		CustomMinutes:        60,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("DEVDESK_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v, ok := getEnvBool("DEVDESK_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("DEVDESK_DUE_CHECK_SECONDS"); ok && v > 0 {
		cfg.DueCheckSeconds = v
	}
	if v, ok := getEnvInt("DEVDESK_CUSTOM_MINUTES"); ok && v > 0 {
		cfg.CustomMinutes = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
