package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/uatpulse/schema"
)

// Color variables for console output.
var (
	RedColor   = color.New(color.FgRed, color.Bold)   // RedColor represents a program off plan.
	AmberColor = color.New(color.FgYellow, color.Bold) // AmberColor represents standard caution.
	GreenColor = color.New(color.FgGreen, color.Bold)  // GreenColor represents on plan.
	MutedColor = color.New(color.FgCyan)               // MutedColor represents informational signal.
)

// GetHealthLabel returns the RAG badge text, colored when requested.
func GetHealthLabel(status schema.HealthStatus, useColors bool) string {
	text := status.Label()
	if !useColors {
		return text
	}
	switch status {
	case schema.GreenHealth:
		return GreenColor.Sprint(text)
	case schema.AmberHealth:
		return AmberColor.Sprint(text)
	case schema.RedHealth:
		return RedColor.Sprint(text)
	default:
		return MutedColor.Sprint(text)
	}
}

// GetStatusClassLabel returns a short label for a per-metric status class.
func GetStatusClassLabel(class schema.StatusClass, useColors bool) string {
	var text string
	var c *color.Color
	switch class {
	case schema.OnPlanClass:
		text, c = "on plan", GreenColor
	case schema.SlightlyBehindClass:
		text, c = "slightly behind", AmberColor
	case schema.BehindClass:
		text, c = "behind", RedColor
	default:
		text, c = string(class), MutedColor
	}
	if !useColors {
		return text
	}
	return c.Sprint(text)
}

// GetToneLabel colors a formatted KPI value by its tone.
func GetToneLabel(value string, tone schema.Tone, useColors bool) string {
	if !useColors {
		return value
	}
	switch tone {
	case schema.GoodTone:
		return GreenColor.Sprint(value)
	case schema.WarnTone:
		return AmberColor.Sprint(value)
	default:
		return RedColor.Sprint(value)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the feed cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".uatpulse_cache.db"
	}
	return filepath.Join(homeDir, ".uatpulse_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".uatpulse_history.db"
	}
	return filepath.Join(homeDir, ".uatpulse_history.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
