package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	StaticDir  string `yaml:"static-dir" env:"STATIC_DIR" env-default:"./static"`
	Admin      Admin  `yaml:"admin"`
	Gate       Gate   `yaml:"gate"`
	Game       Game   `yaml:"game"`
}

type Admin struct {
	Password string `yaml:"password" env:"ADMIN_PASSWORD" env-default:"admin"`
}

// Gate is the one-time access check a client passes before the session
// protocol begins. An empty answer disables the gate.
type Gate struct {
	Question string `yaml:"question" env-default:""`
	Answer   string `yaml:"answer" env:"GATE_ANSWER" env-default:""`
}

type Game struct {
	Capacity     int `yaml:"capacity" env-default:"10"`
	TurnSeconds  int `yaml:"turn-seconds" env-default:"30"`
	TotalSeconds int `yaml:"total-seconds" env-default:"0"`
	PauseSeconds int `yaml:"pause-seconds" env-default:"60"`
	PauseCredits int `yaml:"pause-credits" env-default:"3"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}
