package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel     string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	ResumeGameID string `yaml:"resume-game-id" env:"GAME_ID" env-default:""`

	Game   Game   `yaml:"game"`
	Engine Engine `yaml:"engine"`
	Redis  Redis  `yaml:"redis"`
}

type Game struct {
	BoardSize  int    `yaml:"board-size" env-default:"3"`
	HumanMark  string `yaml:"human-mark" env-default:"X"`
	HumanColor string `yaml:"human-color" env-default:"blue"`
	AIMark     string `yaml:"ai-mark" env-default:"O"`
	AIColor    string `yaml:"ai-color" env-default:"green"`
}

// Engine holds the search depth constants. The bound for one search is
// base-depth + floor(filled/total * depth-growth).
type Engine struct {
	BaseDepth   int `yaml:"base-depth" env-default:"2"`
	DepthGrowth int `yaml:"depth-growth" env-default:"2"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env-default:"false"`
	Host    string `yaml:"host" env-default:"localhost"`
	Port    string `yaml:"port" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
