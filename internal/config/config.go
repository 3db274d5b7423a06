package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Port            int           `yaml:"port"`
	LogLevel        string        `yaml:"log_level"`
	LogJSON         bool          `yaml:"log_json"`
	DefaultSections []string      `yaml:"default_sections"` // sections assigned to boards created without an explicit set
	MaxEntryTextLen int           `yaml:"max_entry_text_len"`
	TxMaxRetries    int           `yaml:"tx_max_retries"`   // attempts before a serialization failure surfaces as 409
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // seconds, multiplied at use
}

type Private struct {
	Pg Pg `yaml:"pg"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func (p *Public) validate() {
	if p.Port == 0 {
		panic("config: port is required")
	}
	if len(p.DefaultSections) == 0 {
		panic("config: default_sections is required")
	}
	if p.MaxEntryTextLen == 0 {
		panic("config: max_entry_text_len is required")
	}
	if p.TxMaxRetries == 0 {
		panic("config: tx_max_retries is required")
	}
}

func (p *Private) validate() {
	if p.Pg.Host == "" || p.Pg.Dbname == "" {
		panic(fmt.Sprintf("config: incomplete pg section: %+v", Pg{Host: p.Pg.Host, Dbname: p.Pg.Dbname}))
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	public.validate()

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)
	private.validate()

	return &Config{public, private}
}
