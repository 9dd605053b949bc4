package pyrt

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

// Config holds the settings of a Runtime. It is read once by NewRuntime and
// never changes afterward.
type Config struct {
	// Argv is the argument list exposed as sys.argv.
	Argv []string `yaml:"argv"`
	// Encoding is the codec used by the standard streams and by open when no
	// encoding is given.
	Encoding string `yaml:"encoding"`
	// LogLevel is a zerolog level name. LoadConfig uses it to build Logger
	// when it is set.
	LogLevel string `yaml:"log_level"`

	// Stdin, Stdout, and Stderr are the standard streams.
	Stdin  io.Reader `yaml:"-"`
	Stdout io.Writer `yaml:"-"`
	Stderr io.Writer `yaml:"-"`

	// Logger receives runtime diagnostics. If nil, nothing is logged.
	Logger *zerolog.Logger `yaml:"-"`
}

// DefaultConfig returns a Config using the process's arguments and standard
// streams.
func DefaultConfig() Config {
	return Config{
		Argv:     append([]string(nil), os.Args...),
		Encoding: DefaultEncoding,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// LoadConfig reads a YAML configuration document over DefaultConfig. Unknown
// keys are an error. If log_level is set, the result logs to Stderr at that
// level.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	b, err := io.ReadAll(r)
	if err != nil {
		return cfg, ioError(err)
	}
	if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
		return cfg, &Exception{Kind: ValueError, Msg: "invalid configuration: " + err.Error(), Err: err}
	}
	if _, _, err := lookupEncoding(cfg.Encoding); err != nil {
		return cfg, err
	}
	if cfg.LogLevel != "" {
		lvl, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return cfg, &Exception{Kind: ValueError, Msg: "invalid log level: " + cfg.LogLevel, Err: err}
		}
		l := zerolog.New(zerolog.ConsoleWriter{Out: cfg.Stderr}).Level(lvl).With().Timestamp().Logger()
		cfg.Logger = &l
	}
	return cfg, nil
}

// withDefaults fills zero fields of cfg from DefaultConfig.
func (cfg Config) withDefaults() Config {
	d := DefaultConfig()
	if cfg.Argv == nil {
		cfg.Argv = d.Argv
	}
	if cfg.Encoding == "" {
		cfg.Encoding = d.Encoding
	}
	if cfg.Stdin == nil {
		cfg.Stdin = d.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = d.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = d.Stderr
	}
	if cfg.Logger == nil {
		l := zerolog.Nop()
		cfg.Logger = &l
	}
	return cfg
}
