package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"runtime"
	"time"

	"github.com/brandontheis/oio-sds/internal/client"
	"github.com/brandontheis/oio-sds/internal/config"
	"github.com/mdouchement/logger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	flagNamespace string
	flagAccount   string
	flagProxy     string
	flagConfig    string
	flagTimeout   time.Duration
	flagVerbose   bool
)

func main() {
	c := &cobra.Command{
		Use:          "oio",
		Short:        "Command-line client for an OpenIO SDS namespace",
		Version:      fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
	}
	c.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Version for oio",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(c.Version)
		},
	})

	flags := c.PersistentFlags()
	flags.StringVar(&flagNamespace, "oio-ns", "", "Namespace name (default $OIO_NS)")
	flags.StringVar(&flagAccount, "oio-account", "", "Account name (default $OIO_ACCOUNT)")
	flags.StringVar(&flagProxy, "oio-proxy", "", "Proxy URL (default $OIO_PROXY)")
	flags.StringVar(&flagConfig, "config", "", "Configuration file (default $OIO_CONFIG, ~/.oio/sds.yml, /etc/oio/sds.yml)")
	flags.DurationVar(&flagTimeout, "timeout", 0, "Request timeout")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose output")

	c.AddCommand(newContainerCommand())
	c.AddCommand(newServerCommand())

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

// newLogger builds the CLI logger. Verbose mode turns debug logging on.
func newLogger() logger.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logger.LogrusTextFormatter{
		DisableColors:   false,
		ForceColors:     true,
		ForceFormatting: true,
		PrefixRE:        regexp.MustCompile(`^(\[.*?\])\s`),
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if flagVerbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return logger.WrapLogrus(l)
}

// resolve merges configuration file, environment and flags into the
// namespace settings of this invocation.
func resolve() (config.Namespace, error) {
	ns := flagNamespace
	if ns == "" {
		ns = envORdefault("OIO_NS", "OPENIO")
	}

	var (
		cfg config.Namespace
		err error
	)
	if flagConfig != "" {
		cfg, err = config.LoadFile(flagConfig, ns)
	} else {
		cfg, err = config.Load(ns)
	}
	if err != nil {
		return cfg, err
	}

	cfg = cfg.Merge(config.Namespace{
		Proxy:   envORdefault("OIO_PROXY", ""),
		Account: envORdefault("OIO_ACCOUNT", ""),
	})
	cfg = cfg.Merge(config.Namespace{
		Proxy:   flagProxy,
		Account: flagAccount,
		Timeout: flagTimeout,
	})

	err = cfg.Validate()
	return cfg, err
}

// newClient resolves the configuration and returns the proxy client along
// with the account every container command operates on.
func newClient() (*client.Client, string, error) {
	cfg, err := resolve()
	if err != nil {
		return nil, "", err
	}
	if cfg.Account == "" {
		return nil, "", errors.New("no account configured, use --oio-account or OIO_ACCOUNT")
	}

	c := client.New(client.Config{
		Namespace: cfg.Namespace,
		Proxy:     cfg.Proxy,
		Timeout:   cfg.Timeout,
		Logger:    newLogger(),
	})
	return c, cfg.Account, nil
}

func envORdefault(name, fallback string) string {
	p := os.Getenv(name)
	if len(p) == 0 {
		return fallback
	}
	return p
}
