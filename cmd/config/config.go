package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/api"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/api/http"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/store"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/store/sqlite"
	"github.com/meshbridge/meshbridge/internal/app/subsystems/upstream"
	"github.com/meshbridge/meshbridge/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// default destination of transfer bound link tokens in the sandbox
const SandboxReceivingAddress = "0x0000000000000000F0F000000000ffFf00f0F0f0"

type Config struct {
	Http        http.Config         `flag:"http"`
	Mesh        upstream.Config     `flag:"mesh"`
	Transfers   api.Config          `flag:"transfers"`
	Store       Store               `flag:"store"`
	Janitor     store.JanitorConfig `flag:"janitor"`
	MetricsAddr string              `flag:"metrics-addr" desc:"prometheus metrics server address" default:":9090"`
	LogLevel    string              `flag:"log-level" desc:"can be one of: debug, info, warn, error" default:"info"`
	LogFormat   string              `flag:"log-format" desc:"can be one of: text, json" default:"text"`
}

type Store struct {
	Kind   string        `flag:"kind" desc:"can be one of: memory, sqlite" default:"memory"`
	Ttl    time.Duration `flag:"ttl" desc:"time to live of correlation records, 0 disables expiry" default:"1h"`
	Sqlite sqlite.Config `flag:"sqlite"`
}

// Bind registers a flag for every config field on cmd and binds the flag,
// and the env var named by the env tag if any, to vip.
func Bind(cfg any, cmd *cobra.Command, vip *viper.Viper) {
	if err := bind(cmd, vip, cfg, "", ""); err != nil {
		panic(err)
	}
}

// Load reads the config file named by the config flag, falling back to
// meshbridge.yaml in the working or home directory.
func Load(cmd *cobra.Command, vip *viper.Viper) error {
	if file, _ := cmd.Flags().GetString("config"); file != "" {
		vip.SetConfigFile(file)
	} else {
		vip.SetConfigName("meshbridge")
		vip.AddConfigPath(".")
		vip.AddConfigPath("$HOME")
	}

	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vip.AutomaticEnv()

	if err := vip.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return nil
}

func Hooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

func (c *Config) Parse(vip *viper.Viper) error {
	if err := vip.Unmarshal(&c, viper.DecodeHook(Hooks())); err != nil {
		return err
	}

	// complex defaults
	if c.Transfers.ReceivingAddress == "" && c.Mesh.Sandbox {
		c.Transfers.ReceivingAddress = SandboxReceivingAddress
	}

	return c.Validate()
}

func (c *Config) Validate() error {
	switch c.Store.Kind {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("unrecognized store kind: %s", c.Store.Kind)
	}

	if _, err := util.ParseCron(c.Janitor.Schedule); err != nil {
		return fmt.Errorf("invalid janitor schedule %q: %w", c.Janitor.Schedule, err)
	}

	return nil
}

// Helper functions

func bind(cmd *cobra.Command, vip *viper.Viper, cfg any, fPrefix string, kPrefix string) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		flag := field.Tag.Get("flag")
		desc := field.Tag.Get("desc")
		value := field.Tag.Get("default")

		var n string
		if fPrefix == "" {
			n = flag
		} else if flag == "-" {
			n = fPrefix
		} else {
			n = fmt.Sprintf("%s-%s", fPrefix, flag)
		}

		var k string
		if kPrefix == "" {
			k = field.Name
		} else {
			k = fmt.Sprintf("%s.%s", kPrefix, field.Name)
		}

		switch field.Type.Kind() {
		case reflect.String:
			cmd.Flags().String(n, value, desc)
		case reflect.Bool:
			cmd.Flags().Bool(n, value == "true", desc)
		case reflect.Int:
			v, _ := strconv.Atoi(value)
			cmd.Flags().Int(n, v, desc)
		case reflect.Int64:
			if field.Type == reflect.TypeOf(time.Duration(0)) {
				v, _ := time.ParseDuration(value)
				cmd.Flags().Duration(n, v, desc)
			} else {
				v, _ := strconv.ParseInt(value, 10, 64)
				cmd.Flags().Int64(n, v, desc)
			}
		case reflect.Float64:
			v, _ := strconv.ParseFloat(value, 64)
			cmd.Flags().Float64(n, v, desc)
		case reflect.Slice:
			if field.Type.Elem().Kind() != reflect.String {
				panic(fmt.Sprintf("unsupported slice type: %s", field.Type.Elem().Kind()))
			}
			cmd.Flags().StringSlice(n, util.SplitTrim(value), desc)
		case reflect.Struct:
			if err := bind(cmd, vip, v.Field(i).Addr().Interface(), n, k); err != nil {
				return err
			}
			continue
		default:
			panic(fmt.Sprintf("unsupported type %s", field.Type.Kind()))
		}

		if err := vip.BindPFlag(k, cmd.Flags().Lookup(n)); err != nil {
			return err
		}

		if env := field.Tag.Get("env"); env != "" {
			if err := vip.BindEnv(k, env); err != nil {
				return err
			}
		}
	}

	return nil
}
