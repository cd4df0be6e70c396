package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"arcade/game"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

var (
	cfgFile = "arcade/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

type GameConfig struct {
	Variant string `json:"variant"`
	// Human is the side played from stdin: "a", "b", "both" or "none".
	Human string `json:"human"`
}

type SearchConfig struct {
	Depth      int  `json:"depth"`
	Goroutines int  `json:"goroutines"`
	Pruning    bool `json:"pruning"`
}

type ExperimentConfig struct {
	Games     int    `json:"games"` // per matchup
	Depths    []int  `json:"depths"`
	Seed      uint64 `json:"seed"`
	OutputDir string `json:"output_dir"`
}

type Config struct {
	LogLevel   string           `json:"log_level"`
	Game       GameConfig       `json:"game"`
	Search     SearchConfig     `json:"search"`
	Experiment ExperimentConfig `json:"experiment"`
}

// InitConfig returns the defaults overlaid with the user's config file, if any.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	config.Experiment.Depths = append([]int(nil), DefaultConfig.Experiment.Depths...)
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if _, err := game.ParseVariant(c.Game.Variant); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if _, err := c.HumanSides(); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if c.Search.Depth < 1 || c.Search.Depth > MaxDepth {
		return &InvalidConfig{fmt.Sprintf("search depth must be between 1 and %d", MaxDepth)}
	}
	if c.Search.Goroutines < 1 {
		return &InvalidConfig{"at least one search goroutine is required"}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.LogLevel)}
	}
	if c.Experiment.Games < 1 {
		return &InvalidConfig{"experiments need at least one game per matchup"}
	}
	for _, depth := range c.Experiment.Depths {
		if depth < 1 || depth > MaxDepth {
			return &InvalidConfig{fmt.Sprintf("experiment depth %d out of range", depth)}
		}
	}
	return nil
}

func (c *Config) Variant() game.Variant {
	v, _ := game.ParseVariant(c.Game.Variant)
	return v
}

// HumanSides returns the sides played from stdin, none when both sides are
// computer-controlled.
func (c *Config) HumanSides() ([]game.Side, error) {
	switch c.Game.Human {
	case "", "none":
		return nil, nil
	case "both":
		return []game.Side{game.SideA, game.SideB}, nil
	}
	side, err := game.ParseSide(c.Game.Human)
	if err != nil {
		return nil, err
	}
	return []game.Side{side}, nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	configReader, err := os.ReadFile(filePath)
	if err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	if err = json.Unmarshal(configReader, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
