package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/beanpull-dev/beanpull/internal/config"
	"github.com/beanpull-dev/beanpull/internal/ynab"
)

const sinceFormat = "2006-01-02"

// session is the shared setup every network-facing command needs: config,
// environment, a stderr logger, and an API client.
type session struct {
	cfg    *config.Config
	env    *config.Env
	log    *log.Logger
	client *ynab.Client
}

// newSession loads config and environment and builds the client. A missing
// config file falls back to defaults; a missing token is an error.
func newSession(configPath string) (*session, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	if env.Token == "" {
		return nil, fmt.Errorf("YNAB_TOKEN is required (set it in the environment or a .env file)")
	}

	logger, err := newLogger(env.LogLevel)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("no config file, using defaults", "path", configPath)
		cfg = config.Default()
	} else if err != nil {
		return nil, err
	}

	return &session{
		cfg:    cfg,
		env:    env,
		log:    logger,
		client: ynab.NewClient(env.BaseURL, env.Token, logger),
	}, nil
}

// newLogger builds the stderr diagnostics logger. Stdout is reserved for
// ledger text, so redirecting it to a file never captures diagnostics.
func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{Level: lvl}), nil
}

// parseSince parses the --since flag; empty means no date filter.
func parseSince(since string) (time.Time, error) {
	if since == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(sinceFormat, since)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing --since %q (want YYYY-MM-DD): %w", since, err)
	}
	return t, nil
}
