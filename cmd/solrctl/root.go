package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/solr"
	"github.com/kailas-cloud/solr/internal/config"
	"github.com/kailas-cloud/solr/internal/logger"
)

// app carries the state shared by all commands once the root pre-run has
// loaded the configuration.
type app struct {
	cfgFile  string
	env      string
	url      string
	logLevel string

	cfg    config.Config
	logger *zap.Logger
	client *solr.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "solrctl",
		Short: "Search engine core client",
		Long: `solrctl queries, updates and administers a search engine core.

The core URL comes from config/<env>.yaml, from --config, or from --url.

Example usage:
  solrctl ping
  solrctl search 'title:go' --rows 5 --fl id,title
  solrctl add docs.json
  solrctl delete --query 'type:draft'
  solrctl core status`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: config/<env>.yaml)")
	pf.StringVar(&a.env, "env", config.GetEnv(), "environment: "+logger.EnvLocal+", "+logger.EnvDev+", "+logger.EnvProd)
	pf.StringVar(&a.url, "url", "", "core URL, overrides solr.url")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		a.pingCmd(),
		a.searchCmd(),
		a.mltCmd(),
		a.termsCmd(),
		a.addCmd(),
		a.deleteCmd(),
		a.commitCmd(),
		a.optimizeCmd(),
		a.extractCmd(),
		a.coreCmd(),
		newVersionCmd(),
	)
	return root
}

func (a *app) init() error {
	var err error
	switch {
	case a.cfgFile != "":
		a.cfg, err = config.LoadFile(a.cfgFile)
	case a.url == "":
		a.cfg, err = config.Load(a.env)
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.url != "" {
		a.cfg.Solr.URL = a.url
		a.cfg.ApplyDefaults()
		if err := a.cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}

	level := a.cfg.Logging.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.logger, err = logger.NewLogger(a.env, level)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	opts := []solr.Option{
		solr.WithTimeout(time.Duration(a.cfg.Solr.TimeoutSec) * time.Second),
		solr.WithMaxQueryLength(a.cfg.Solr.MaxQueryLength),
		solr.WithLogger(a.logger),
	}
	if a.cfg.Solr.AdminURL != "" {
		opts = append(opts, solr.WithAdminURL(a.cfg.Solr.AdminURL))
	}
	a.client, err = solr.New(a.cfg.Solr.URL, opts...)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	a.logger.Debug("configuration loaded",
		zap.String("env", a.env),
		zap.String("url", a.cfg.Solr.URL),
		zap.Int("timeout_sec", a.cfg.Solr.TimeoutSec),
	)
	return nil
}

// parseParams turns repeated key=value flags into request parameters.
func parseParams(pairs []string) (url.Values, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	v := url.Values{}
	for _, p := range pairs {
		k, val, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("parameter %q must be key=value", p)
		}
		v.Add(k, val)
	}
	return v, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRaw(w io.Writer, body []byte) error {
	if _, err := w.Write(body); err != nil {
		return err
	}
	if len(body) > 0 && body[len(body)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
