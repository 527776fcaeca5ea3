package config

import (
	"os"
	"sort"
	"time"

	"github.com/David-Antunes/upf-flow/internal"
	"github.com/David-Antunes/upf-flow/internal/application"
	"github.com/David-Antunes/upf-flow/internal/simulation"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ServerIp    = "SERVER_IP"
	ServerPort  = "SERVER_PORT"
	TickMs      = "TICK_MS"
	BaseSpeed   = "BASE_SPEED"
	Dpdk        = "DPDK"
	Sriov       = "SRIOV"
	VfCount     = "VF_COUNT"
	PacketCount = "PACKET_COUNT"
	TrafficLoad = "TRAFFIC_LOAD"
	LogLevel    = "LOG_LEVEL"
	Metrics     = "METRICS"
	WriteEnv    = "WRITE_ENV"
)

const DefaultEnvFile = ".env"

var configLog = logrus.WithField("component", "config")

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"ip":           ServerIp,
	"port":         ServerPort,
	"tick-ms":      TickMs,
	"base-speed":   BaseSpeed,
	"dpdk":         Dpdk,
	"sriov":        Sriov,
	"vf-count":     VfCount,
	"packet-count": PacketCount,
	"traffic-load": TrafficLoad,
	"log-level":    LogLevel,
	"metrics":      Metrics,
	"write-env":    WriteEnv,
}

func SetDefaults(v *viper.Viper) {
	def := simulation.DefaultParameters()
	v.SetDefault(ServerIp, "0.0.0.0")
	v.SetDefault(ServerPort, "3000")
	v.SetDefault(TickMs, int(internal.TickInterval/time.Millisecond))
	v.SetDefault(BaseSpeed, internal.BaseSpeed)
	v.SetDefault(Dpdk, def.DpdkEnabled)
	v.SetDefault(Sriov, def.SriovEnabled)
	v.SetDefault(VfCount, def.VfCount)
	v.SetDefault(PacketCount, def.PacketCount)
	v.SetDefault(TrafficLoad, def.TrafficLoad)
	v.SetDefault(LogLevel, "info")
	v.SetDefault(Metrics, true)
	v.SetDefault(WriteEnv, false)
}

// Load reads envFile if present, then lets the environment and bound flags
// override it. A missing file is not an error.
func Load(v *viper.Viper, envFile string, flags *pflag.FlagSet) error {
	SetDefaults(v)
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(envFile); statErr == nil {
			return errors.Wrapf(err, "read %s", envFile)
		}
		configLog.WithField("file", envFile).Debug("no env file, using defaults")
	}
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}
	return nil
}

// Persist writes the effective settings back to envFile.
func Persist(v *viper.Viper, envFile string) error {
	return errors.Wrapf(v.WriteConfigAs(envFile), "write %s", envFile)
}

func ConfigureLogging(v *viper.Viper) error {
	level, err := logrus.ParseLevel(v.GetString(LogLevel))
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

func PrintVariables(v *viper.Viper) {
	settings := v.AllSettings()
	sortedList := make([]string, 0, len(settings))
	for id := range settings {
		sortedList = append(sortedList, id)
	}

	sort.Strings(sortedList)

	for _, id := range sortedList {
		configLog.WithField("key", id).WithField("value", settings[id]).Info("setting")
	}
}

func Address(v *viper.Viper) string {
	return v.GetString(ServerIp) + ":" + v.GetString(ServerPort)
}

func SimulatorConfig(v *viper.Viper) application.Config {
	return application.Config{
		Parameters: simulation.Parameters{
			DpdkEnabled:  v.GetBool(Dpdk),
			SriovEnabled: v.GetBool(Sriov),
			VfCount:      v.GetInt(VfCount),
			PacketCount:  v.GetInt(PacketCount),
			TrafficLoad:  v.GetInt(TrafficLoad),
		},
		BaseSpeed:    v.GetFloat64(BaseSpeed),
		TickInterval: time.Duration(v.GetInt(TickMs)) * time.Millisecond,
	}
}
