package main

import (
	"bytes"
	"testing"

	"github.com/matryer/is"
)

const configFile string = `
oauth:
  appId: app-id
  appSecret: app-secret
  scope: SCOPE_EMAIL
apiEndpoint: https://connect.symfony.com/api
callbackUrl: https://example.com/callback
`

func TestLoadConfiguration(t *testing.T) {
	is := is.New(t)

	cfg, err := LoadConfiguration(bytes.NewBufferString(configFile))
	is.NoErr(err)

	is.Equal(cfg.OAuth.AppID, "app-id")
	is.Equal(cfg.OAuth.AppSecret, "app-secret")
	is.Equal(cfg.OAuth.Scope, "SCOPE_EMAIL")
	is.Equal(cfg.OAuth.Endpoint, "")
	is.Equal(cfg.APIEndpoint, "https://connect.symfony.com/api")
	is.Equal(cfg.CallbackURL, "https://example.com/callback")
}

func TestLoadConfigurationRejectsInvalidYaml(t *testing.T) {
	is := is.New(t)

	_, err := LoadConfiguration(bytes.NewBufferString("{{nope"))
	is.True(err != nil)
}
