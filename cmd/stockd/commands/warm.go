package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Playwithbroken/stock-analysis-tool/internal/scheduler"
)

// warmCmd represents the warm command
var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Run the cache warm scheduler standalone",
	Long: `Runs the movers cache warm job on its cron schedule without the
API server. Useful when the API runs with --warm=false and a single
separate process should keep the shared Redis tier fresh.

Example:
  go run ./cmd/stockd warm
  go run ./cmd/stockd warm --schedule "0 */5 * * * *"`,
	RunE: runWarm,
}

var warmSchedule string

func init() {
	rootCmd.AddCommand(warmCmd)

	warmCmd.Flags().StringVar(&warmSchedule, "schedule", "", "cron schedule with seconds field")
}

func runWarm(cmd *cobra.Command, args []string) error {
	s, err := buildStack()
	if err != nil {
		return err
	}
	defer s.close()

	sched := scheduler.New(s.log)

	job := scheduler.NewMoversWarmJob(s.discovery, warmSchedule)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("schedule warm job: %w", err)
	}

	sched.Start()

	// Warm immediately, then follow the schedule
	if err := sched.RunJob(job.Name()); err != nil {
		return err
	}

	fmt.Println("Warm scheduler running. Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
