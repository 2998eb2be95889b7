// connect-demo runs the three-legged OAuth2 flow locally and fetches the
// authenticated user through the hypermedia API, exercising the SDK end to
// end.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/google/uuid"
	"github.com/symfonycorp/connect-go/internal/pkg/infrastructure/router"
	"github.com/symfonycorp/connect-go/pkg/connect/client"
	"github.com/symfonycorp/connect-go/pkg/connect/oauth"
)

const appName string = "connect-demo"

type stateStore struct {
	mu     sync.Mutex
	states map[string]struct{}
}

func (s *stateStore) issue() string {
	state := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = struct{}{}

	return state
}

func (s *stateStore) redeem(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.states[state]
	delete(s.states, state)

	return ok
}

func main() {
	appVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), appName, appVersion, "json")
	defer cleanup()

	configPath := env.GetVariableOrDefault(ctx, "CONNECT_DEMO_CONFIG", "config.yaml")
	configFile, err := os.Open(configPath)
	if err != nil {
		log.Error("failed to open configuration file", "err", err.Error())
		os.Exit(1)
	}

	cfg, err := LoadConfiguration(configFile)
	configFile.Close()
	if err != nil {
		log.Error("failed to load configuration", "err", err.Error())
		os.Exit(1)
	}

	consumerOptions := []func(*oauth.Consumer){}
	if cfg.OAuth.Endpoint != "" {
		consumerOptions = append(consumerOptions, oauth.Endpoint(cfg.OAuth.Endpoint))
	}
	consumer := oauth.NewConsumer(cfg.OAuth.AppID, cfg.OAuth.AppSecret, cfg.OAuth.Scope, consumerOptions...)

	states := &stateStore{states: map[string]struct{}{}}

	r := router.New(appName)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/login", func(w http.ResponseWriter, req *http.Request) {
		state := states.issue()
		http.Redirect(w, req, consumer.AuthorizationURL(cfg.CallbackURL, state), http.StatusFound)
	})

	r.Get("/callback", func(w http.ResponseWriter, req *http.Request) {
		if !states.redeem(req.URL.Query().Get("state")) {
			http.Error(w, "unknown state", http.StatusBadRequest)
			return
		}

		token, err := consumer.RequestAccessToken(req.Context(), cfg.CallbackURL, req.URL.Query().Get("code"))
		if err != nil {
			log.Error("access token exchange failed", "err", err.Error())
			http.Error(w, "access token exchange failed", http.StatusBadGateway)
			return
		}

		api := client.NewConnectClient(
			client.Endpoint(cfg.APIEndpoint),
			client.AccessToken(token.Token),
		)

		root, err := api.Root(req.Context())
		if err != nil {
			log.Error("failed to fetch the api root", "err", err.Error())
			http.Error(w, "failed to fetch the api root", http.StatusBadGateway)
			return
		}

		user := root.CurrentUser()
		if user == nil {
			fmt.Fprintln(w, "authenticated, but the api root exposes no user")
			return
		}

		fmt.Fprintf(w, "hello %s (%s)\n", user.Name(), user.Username())
	})

	port := env.GetVariableOrDefault(ctx, "SERVICE_PORT", "8080")
	log.Info("starting to listen for connections", "port", port)

	err = http.ListenAndServe(":"+port, r)
	if err != nil {
		log.Error("failed to listen for connections", "err", err.Error())
		os.Exit(1)
	}
}
