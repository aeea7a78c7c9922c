package cmd

import (
	"github.com/huangsam/uatpulse/core"
	"github.com/huangsam/uatpulse/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD gating.
var checkCmd = &cobra.Command{
	Use:   "check [feed]",
	Short: "Gate a pipeline on UAT health (fails when health reaches --fail-on).",
	Long: `Compute the dashboard health and exit with a non-zero code when it is at or
worse than the --fail-on level.

Default gate: red

Use cases:
- Release pipelines that must not promote while UAT is RED
- Nightly jobs that flag AMBER early with --fail-on amber
- Scheduled checks that record a run in history

Examples:
  # Fail only on RED
  uatpulse check https://qa.example.com/uat.json

  # Fail on AMBER or RED
  uatpulse check uat.json --fail-on amber`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Health check failed", err)
		}
	},
}
