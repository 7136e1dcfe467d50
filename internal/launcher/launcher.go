package launcher

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rtsp-agents/cameras-backend/internal/lib/sl"
)

// Config carries the runtime overrides forwarded to the packaged Java
// backend. Defaults mirror the historical start script.
type Config struct {
	Root             string `yaml:"root" env-default:"."`
	Port             int    `yaml:"port" env-default:"80"`
	Host             string `yaml:"host" env-default:"localhost"`
	DatabaseHost     string `yaml:"database_host" env-default:"localhost"`
	DatabasePort     int    `yaml:"database_port" env-default:"3306"`
	DatabaseName     string `yaml:"database_name" env-default:"cameras_db"`
	DatabaseUser     string `yaml:"database_user" env-default:"rtsp"`
	DatabasePassword string `yaml:"database_password" env-default:"changeme3"`
}

func DefaultConfig() Config {
	return Config{
		Root:             ".",
		Port:             80,
		Host:             "localhost",
		DatabaseHost:     "localhost",
		DatabasePort:     3306,
		DatabaseName:     "cameras_db",
		DatabaseUser:     "rtsp",
		DatabasePassword: "changeme3",
	}
}

func (c Config) DatasourceURL() string {
	return fmt.Sprintf("jdbc:mariadb://%s:%d/%s", c.DatabaseHost, c.DatabasePort, c.DatabaseName)
}

type Launcher struct {
	log *slog.Logger
	cfg Config
}

func New(log *slog.Logger, cfg Config) *Launcher {
	return &Launcher{
		log: log,
		cfg: cfg,
	}
}

// Command is the argument vector of the Maven run command, with every
// configuration value forwarded as a Spring property override.
func (l *Launcher) Command() []string {
	overrides := strings.Join([]string{
		fmt.Sprintf("--server.port=%d", l.cfg.Port),
		fmt.Sprintf("--server.address=%s", l.cfg.Host),
		fmt.Sprintf("--spring.datasource.url=%s", l.cfg.DatasourceURL()),
		fmt.Sprintf("--spring.datasource.username=%s", l.cfg.DatabaseUser),
		fmt.Sprintf("--spring.datasource.password=%s", l.cfg.DatabasePassword),
	}, " ")

	return []string{
		"mvn",
		"spring-boot:run",
		"-Dspring-boot.run.arguments=" + overrides,
	}
}

// Dir is the working directory of the spawned process: the java
// subdirectory of the configured root.
func (l *Launcher) Dir() string {
	return filepath.Join(l.cfg.Root, "java")
}

// Start spawns the backend process in the background and returns without
// waiting for it. Failures past the spawn itself are whatever the child
// reports on the inherited stdout/stderr.
func (l *Launcher) Start() (*exec.Cmd, error) {
	const op = "launcher.Start"

	args := l.Command()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = l.Dir()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	l.log.Info("starting backend",
		slog.String("dir", cmd.Dir),
		slog.Int("port", l.cfg.Port),
		slog.String("host", l.cfg.Host),
		slog.String("database", l.cfg.DatabaseName),
	)

	if err := cmd.Start(); err != nil {
		l.log.Error("failed to start backend", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cmd, nil
}
