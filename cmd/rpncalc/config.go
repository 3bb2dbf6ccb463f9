package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// appConfig — содержимое rpncalc.toml. Файл ищется вверх от текущей
// директории; любое поле опционально, флаги командной строки сильнее.
type appConfig struct {
	Output outputConfig `toml:"output"`
	Cache  cacheConfig  `toml:"cache"`
	Eval   evalConfig   `toml:"eval"`
}

type outputConfig struct {
	Format string `toml:"format"` // pretty|json
	Color  string `toml:"color"`  // auto|on|off
}

type cacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type evalConfig struct {
	Jobs   int    `toml:"jobs"`
	Locale string `toml:"locale"`
}

type configFile struct {
	Path   string
	Root   string
	Config appConfig
}

func findConfigToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "rpncalc.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig возвращает (nil, nil), когда rpncalc.toml не найден: отсутствие
// конфига не ошибка.
func loadConfig(startDir string) (*configFile, error) {
	path, ok, err := findConfigToml(startDir)
	if err != nil || !ok {
		return nil, err
	}
	var cfg appConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if f := cfg.Output.Format; f != "" && f != "pretty" && f != "json" {
		return nil, fmt.Errorf("%s: [output].format must be pretty or json, got %q", path, f)
	}
	if c := cfg.Output.Color; c != "" && c != "auto" && c != "on" && c != "off" {
		return nil, fmt.Errorf("%s: [output].color must be auto, on or off, got %q", path, c)
	}
	return &configFile{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}
