package cmd

import (
	"fmt"

	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/huangsam/uatpulse/internal/iocache"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ParseBackend(viper.GetString("cache-backend"))
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	connStr := viper.GetString("cache-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// No history tracking for cache commands
	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on feed cache management.
//
// Note: Cache subcommands use minimal initialization instead of the full
// sharedSetup used by dashboard commands, so no feed is needed to run them.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the feed cache used when remote feeds are unreachable",
	Long: `Manage the cache of remote feed payloads.

Every successful fetch of an http(s) or s3 feed is stored in the cache. When the
next fetch fails, the dashboard is computed from the cached copy and a warning
is logged.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached feeds

Examples:
  # Check cache status
  uatpulse cache status

  # Clear the cache
  uatpulse cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached feed payloads",
	Long: `Delete all cached feed payloads from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  uatpulse cache clear

  # Clear MySQL cache (set connection string via env variable)
  UATPULSE_CACHE_BACKEND=mysql UATPULSE_CACHE_DB_CONNECT="..." uatpulse cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the feed cache.

Displays:
- Backend type and connection status
- Total number of cached feeds
- Last and oldest cache entry timestamps
- Cache table size

Examples:
  # Check cache status
  uatpulse cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetFeedStore()
		if store == nil {
			fmt.Println("Cache Backend: none")
			return
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}
