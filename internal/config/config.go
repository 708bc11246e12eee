package config

import (
	"errors"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"todolist/internal/storage"
)

const (
	DefaultConfigFileName = "todo.toml"
	DefaultLogFileName    = "todo.log"
	DefaultLogLevel       = "info"
	DefaultListHeight     = 10
)

type Keymap struct {
	Quit     string `toml:"quit"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	Next     string `toml:"next"`
	Prev     string `toml:"prev"`
	Confirm  string `toml:"confirm"`
	Cancel   string `toml:"cancel"`
	Complete string `toml:"complete"`
	Delete   string `toml:"delete"`
}

type Config struct {
	TasksFile  string `toml:"tasks_file"`
	LogFile    string `toml:"log_file"`
	LogLevel   string `toml:"log_level"`
	ListHeight int    `toml:"list_height"`
	Keys       Keymap `toml:"keys"`
}

// LoadOrCreate reads the config at path. A missing file is created with the
// defaults.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.backfill()
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return Config{
		TasksFile:  storage.DefaultFileName,
		LogFile:    DefaultLogFileName,
		LogLevel:   DefaultLogLevel,
		ListHeight: DefaultListHeight,
		Keys:       defaultKeymap(),
	}
}

func defaultKeymap() Keymap {
	return Keymap{
		Quit:     "q",
		Up:       "k",
		Down:     "j",
		Next:     "tab",
		Prev:     "shift+tab",
		Confirm:  "enter",
		Cancel:   "esc",
		Complete: "c",
		Delete:   "d",
	}
}

// backfill restores defaults for values a hand-edited file blanked out. The
// log file is left alone: an empty value disables logging.
func (c *Config) backfill() {
	if c.TasksFile == "" {
		c.TasksFile = storage.DefaultFileName
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.ListHeight <= 0 {
		c.ListHeight = DefaultListHeight
	}
	def := defaultKeymap()
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&c.Keys.Quit, def.Quit)
	fill(&c.Keys.Up, def.Up)
	fill(&c.Keys.Down, def.Down)
	fill(&c.Keys.Next, def.Next)
	fill(&c.Keys.Prev, def.Prev)
	fill(&c.Keys.Confirm, def.Confirm)
	fill(&c.Keys.Cancel, def.Cancel)
	fill(&c.Keys.Complete, def.Complete)
	fill(&c.Keys.Delete, def.Delete)
}
