// Package config provides Viper-backed configuration helpers for the CLI.
package config

import (
	"os"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Configuration keys.
const (
	KeyMatchThreshold = "match.threshold"
	KeyFuzzyLimit     = "fuzzy.limit"
	KeyCollation      = "collation"
	KeyRootName       = "root.name"
)

// SetDefaults registers the default values for all engine tunables.
func SetDefaults() {
	viper.SetDefault(KeyMatchThreshold, 0.3)
	viper.SetDefault(KeyFuzzyLimit, 10)
	viper.SetDefault(KeyCollation, "en-US")
	viper.SetDefault(KeyRootName, "California State Government")
}

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// MatchThreshold returns the configured minimum resolution score.
func MatchThreshold() float64 {
	return viper.GetFloat64(KeyMatchThreshold)
}

// FuzzyLimit returns the configured candidate limit for best-match
// searches.
func FuzzyLimit() int {
	return viper.GetInt(KeyFuzzyLimit)
}

// Collation returns the configured sort language, falling back to
// American English when unset or unparsable.
func Collation() language.Tag {
	raw := viper.GetString(KeyCollation)
	if raw == "" {
		return language.AmericanEnglish
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

// RootName returns the configured synthetic root display name.
func RootName() string {
	return viper.GetString(KeyRootName)
}
