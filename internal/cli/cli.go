package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sentree/pkg/buildinfo"
	serrors "github.com/matzehuels/sentree/pkg/errors"
	"github.com/matzehuels/sentree/pkg/history"
	"github.com/matzehuels/sentree/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "sentree"

	// prefsFile is the preferences file name inside the config directory.
	prefsFile = "preferences.toml"

	// defaultRedisAddr is used when --redis-addr is not given.
	defaultRedisAddr = "localhost:6379"

	// storeTimeout bounds a single store command.
	storeTimeout = 30 * time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // command output; defaults to stdout

	prefsPath    string
	storeBackend string
	redisAddr    string
}

// New creates a new CLI instance logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Sentree edits layered sentence annotations",
		Long: `Sentree inspects and rewrites sentence annotation documents: ordered layers
of words linked into a reading chain, with grammatical relations between words
and layers nested beneath the words they expand.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.prefsPath, "prefs", "", "preferences file (default $XDG_CONFIG_HOME/sentree/preferences.toml)")

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// runE adapts a command body so that returned errors carry an error code.
func (c *CLI) runE(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := serrors.Classify(fn(cmd, args))
		if err != nil {
			c.Logger.Debug("command failed", "cmd", cmd.Name(), "code", serrors.GetCode(err))
		}
		return err
	}
}

// =============================================================================
// Editor & Store Factories
// =============================================================================

// newEditor creates an editor carrying the user's preferences.
func (c *CLI) newEditor() (*history.Editor, error) {
	prefs, err := c.loadPreferences()
	if err != nil {
		return nil, err
	}
	return history.NewEditor(prefs, history.WithLogger(c.Logger)), nil
}

// loadPreferences decodes the preferences file. A missing file yields an
// empty map; the editor treats preferences as opaque.
func (c *CLI) loadPreferences() (map[string]any, error) {
	path := c.prefsPath
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return map[string]any{}, nil
		}
		path = filepath.Join(dir, prefsFile)
	}

	prefs := map[string]any{}
	if _, err := toml.DecodeFile(path, &prefs); err != nil {
		if os.IsNotExist(err) && c.prefsPath == "" {
			return prefs, nil
		}
		return nil, serrors.Wrap(serrors.ErrCodeInvalidInput, err, "load preferences %s", path)
	}
	c.Logger.Debug("loaded preferences", "path", path, "keys", len(prefs))
	return prefs, nil
}

// openStore opens the document store selected by the store flags.
func (c *CLI) openStore(ctx context.Context) (*store.Documents, func(), error) {
	cfg := store.Config{Backend: c.storeBackend, RedisAddr: c.redisAddr}
	if cfg.Backend == "" || cfg.Backend == store.BackendFile {
		dir, err := cacheDir()
		if err != nil {
			return nil, nil, serrors.Wrap(serrors.ErrCodeStorage, err, "locate store directory")
		}
		cfg.Dir = filepath.Join(dir, "documents")
	}

	backend, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Debug("opened store", "backend", c.storeBackend, "dir", cfg.Dir, "addr", cfg.RedisAddr)
	return store.NewDocuments(backend, 0), func() { _ = backend.Close() }, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/sentree/).
func configDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// cacheDir returns the cache directory using XDG standard (~/.cache/sentree/).
func cacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}
