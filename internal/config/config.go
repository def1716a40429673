package config

import (
	"time"
)

// Config is the root configuration of the poet binaries.
type Config struct {
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Server     ServerConfig     `yaml:"server"`
	Datamuse   DatamuseConfig   `yaml:"datamuse"`
	Storage    StorageConfig    `yaml:"storage"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Log        LogConfig        `yaml:"log"`
}

// DictionaryConfig points at the lexicon files. The user dictionary is optional, and bad lines in
// it are skipped.
type DictionaryConfig struct {
	CMUDictPath  string `yaml:"cmudict_path"  env:"POET_CMUDICT_PATH"  env-default:"./cmudict.dict"`
	UserDictPath string `yaml:"userdict_path" env:"POET_USERDICT_PATH" env-default:"./userdict.dict"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"POET_SERVER_ADDR"             env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"POET_SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"POET_SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"POET_SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	Frontend        bool          `yaml:"frontend"         env:"POET_SERVER_FRONTEND"         env-default:"true"`
}

// DatamuseConfig controls the remote lookup of words missing from the lexicon.
type DatamuseConfig struct {
	Enabled           bool          `yaml:"enabled"             env:"POET_DATAMUSE_ENABLED"   env-default:"false"`
	BaseURL           string        `yaml:"base_url"            env:"POET_DATAMUSE_BASE_URL"  env-default:"https://api.datamuse.com"`
	Timeout           time.Duration `yaml:"timeout"             env:"POET_DATAMUSE_TIMEOUT"   env-default:"5s"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"POET_DATAMUSE_RPS"       env-default:"5"`
}

// StorageConfig selects where the poem library is kept. Driver is one of none, json, yaml or
// sqlite. For yaml, Path is a directory.
type StorageConfig struct {
	Driver   string `yaml:"driver"    env:"POET_STORAGE_DRIVER"    env-default:"none"`
	Path     string `yaml:"path"      env:"POET_STORAGE_PATH"      env-default:"./poems.json"`
	ReadOnly bool   `yaml:"read_only" env:"POET_STORAGE_READ_ONLY" env-default:"false"`
}

type AnalysisConfig struct {
	MaxInterpretations int `yaml:"max_interpretations" env:"POET_MAX_INTERPRETATIONS" env-default:"10000"`
}

type LogConfig struct {
	Level       string `yaml:"level"       env:"POET_LOG_LEVEL"       env-default:"info"`
	Development bool   `yaml:"development" env:"POET_LOG_DEVELOPMENT" env-default:"false"`
}
