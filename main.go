package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/David-Antunes/upf-flow/internal/application"
	"github.com/David-Antunes/upf-flow/internal/config"
	"github.com/David-Antunes/upf-flow/internal/daemon"
	"github.com/David-Antunes/upf-flow/internal/render"
	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var mainLog = logrus.WithField("component", "main")

var envFile = config.DefaultEnvFile

func addSimulationFlags(flags *pflag.FlagSet) {
	flags.Int("tick-ms", 50, "animation tick cadence in milliseconds")
	flags.Float64("base-speed", 0.02, "marker advance per tick before multipliers")
	flags.Bool("dpdk", true, "start with DPDK enabled")
	flags.Bool("sriov", true, "start with SR-IOV enabled")
	flags.Int("vf-count", 2, "SR-IOV virtual functions (1-8)")
	flags.Int("packet-count", 3, "markers per active link (1-10)")
	flags.Int("traffic-load", 50, "traffic load percentage (0-100)")
	flags.String("log-level", "info", "logrus level")
}

func setup(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	if err := config.Load(v, envFile, cmd.Flags()); err != nil {
		return nil, err
	}
	if err := config.ConfigureLogging(v); err != nil {
		return nil, err
	}
	return v, nil
}

func serve(cmd *cobra.Command, _ []string) error {
	v, err := setup(cmd)
	if err != nil {
		return err
	}
	config.PrintVariables(v)
	if v.GetBool(config.WriteEnv) {
		if err := config.Persist(v, envFile); err != nil {
			mainLog.WithError(err).Warn("could not write env file")
		}
	}

	sim := application.NewSimulator(config.SimulatorConfig(v))
	d := daemon.CreateDaemon(sim, render.NewRenderer(), daemon.Options{Metrics: v.GetBool(config.Metrics)})
	if err := d.Listen(config.Address(v)); err != nil {
		sim.Close()
		return err
	}
	if err := sim.Start(); err != nil {
		return err
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		mainLog.Info("shutting down")
		sim.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			mainLog.WithError(err).Warn("shutdown")
		}
	}()

	return d.Serve()
}

func snapshot(cmd *cobra.Command, _ []string) error {
	v, err := setup(cmd)
	if err != nil {
		return err
	}
	ticks, _ := cmd.Flags().GetInt("ticks")
	format, _ := cmd.Flags().GetString("format")
	selected, _ := cmd.Flags().GetString("select")

	sim := application.NewSimulator(config.SimulatorConfig(v))
	defer sim.Close()
	if selected != "" {
		if _, err := sim.SelectNode(selected); err != nil {
			return err
		}
	}
	sim.Step(ticks)
	return writeSnapshot(cmd.OutOrStdout(), sim, format)
}

func writeSnapshot(w io.Writer, sim *application.Simulator, format string) error {
	snap := sim.Snapshot()
	switch format {
	case "json":
		out, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encode json")
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		out, err := yaml.Marshal(snap)
		if err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		_, err = w.Write(out)
		return err
	case "svg":
		return render.NewRenderer().SVG(w, http.StatusOK, snap)
	default:
		return errors.Errorf("unknown format %q", format)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "upf-flow",
		Short:         "Animated 5G UPF data path with SR-IOV and DPDK",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "env file holding the configuration")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the widget over HTTP",
		RunE:  serve,
	}
	serveCmd.Flags().String("ip", "0.0.0.0", "listen address")
	serveCmd.Flags().String("port", "3000", "listen port")
	serveCmd.Flags().Bool("metrics", true, "expose /metrics")
	serveCmd.Flags().Bool("write-env", false, "write the effective configuration back to the env file")
	addSimulationFlags(serveCmd.Flags())

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the widget state after a number of ticks",
		RunE:  snapshot,
	}
	snapshotCmd.Flags().Int("ticks", 0, "ticks to run before printing")
	snapshotCmd.Flags().String("format", "json", "json, yaml or svg")
	snapshotCmd.Flags().String("select", "", "node to select before printing")
	addSimulationFlags(snapshotCmd.Flags())

	root.AddCommand(serveCmd, snapshotCmd)
	root.RunE = serveCmd.RunE
	root.Flags().AddFlagSet(serveCmd.Flags())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		mainLog.WithError(err).Fatal("exited")
	}
}
