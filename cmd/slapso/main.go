// slapso places a generated population of VMs onto capacity-bounded
// hosts with an SLA-aware particle-swarm optimizer and prints the
// resulting placement summary.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Phil254/cloud-resource-management-thesis/internal/logging"
	"github.com/Phil254/cloud-resource-management-thesis/internal/metrics"
	"github.com/Phil254/cloud-resource-management-thesis/internal/runner"
	"github.com/Phil254/cloud-resource-management-thesis/pkg/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		cfgFile     string
		verbosity   int
		development bool
	)
	v := viper.New()

	cmd := &cobra.Command{
		Use:          "slapso",
		Short:        "SLA-aware particle-swarm placement of VMs onto capacity-bounded hosts",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			log, err := logging.NewLogger(verbosity, development)
			if err != nil {
				return err
			}
			ctx := logging.IntoContext(cmd.Context(), log)

			rec := metrics.NewRecorder()
			if cfg.MetricsAddr != "" {
				go serveMetrics(cfg.MetricsAddr, rec, log)
			}

			report, err := runner.Run(ctx, cfg, rec)
			if err != nil {
				return err
			}
			return report.WriteSummary(cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "path to a yaml configuration file")
	flags.IntVar(&verbosity, "v", 0, "log verbosity (1 enables per-iteration logging)")
	flags.BoolVar(&development, "dev", false, "use the human-readable console log encoder")
	bindRunFlags(v, flags)
	return cmd
}

// bindRunFlags declares one flag per run parameter and binds it into
// viper, so the flag wins over file and environment sources.
func bindRunFlags(v *viper.Viper, flags *pflag.FlagSet) {
	d := config.Default()
	flags.Int("num-vms", d.NumVMs, "number of VMs to generate and place")
	flags.Int("num-hosts", d.NumHosts, "number of hosts")
	flags.Int("landscape", int(d.Landscape), "host capacity tier: 1=small 2=medium 3=large 4=mixed")
	flags.Int("swarm-size", d.SwarmSize, "number of particles")
	flags.Int("iterations", d.Iterations, "optimizer iteration budget")
	flags.Float64("cognitive-coeff", d.Cognitive, "pull toward a particle's personal best")
	flags.Float64("social-coeff", d.Social, "pull toward the global best")
	flags.Float64("inertia-weight", d.Inertia, "probability of reconsidering a VM's host per iteration")
	flags.Float64("scaling-factor", d.ScalingFactor, "multiplier on predicted execution time")
	flags.Float64("sla-cost-factor", d.SLACostFactor, "cost per second of predicted deadline overrun")
	flags.Float64("lb-weight", d.LoadBalanceWeight, "weight on utilization variance across hosts")
	flags.Int64("seed", d.Seed, "random seed (0 selects a time-based seed)")
	flags.Bool("parallel", d.Parallel, "evaluate particles concurrently")
	flags.String("demand-csv", d.DemandCSV, "export generated VM specs to this CSV path")
	flags.String("placement-csv", d.PlacementCSV, "export the final placement to this CSV path")
	flags.String("metrics-addr", d.MetricsAddr, "serve Prometheus metrics on this address (e.g. :9090)")

	for key, flag := range map[string]string{
		"numVMs":            "num-vms",
		"numHosts":          "num-hosts",
		"landscape":         "landscape",
		"swarmSize":         "swarm-size",
		"iterations":        "iterations",
		"cognitiveCoeff":    "cognitive-coeff",
		"socialCoeff":       "social-coeff",
		"inertiaWeight":     "inertia-weight",
		"scalingFactor":     "scaling-factor",
		"slaCostFactor":     "sla-cost-factor",
		"loadBalanceWeight": "lb-weight",
		"seed":              "seed",
		"parallel":          "parallel",
		"demandCSV":         "demand-csv",
		"placementCSV":      "placement-csv",
		"metricsAddr":       "metrics-addr",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func serveMetrics(addr string, rec *metrics.Recorder, log logr.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	log.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error(err, "metrics server stopped")
	}
}
