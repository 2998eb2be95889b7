package main

import (
	"io"

	yaml "gopkg.in/yaml.v2"
)

type OAuthConfig struct {
	AppID     string `yaml:"appId"`
	AppSecret string `yaml:"appSecret"`
	Scope     string `yaml:"scope"`
	Endpoint  string `yaml:"endpoint"`
}

type Config struct {
	OAuth       OAuthConfig `yaml:"oauth"`
	APIEndpoint string      `yaml:"apiEndpoint"`
	CallbackURL string      `yaml:"callbackUrl"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
