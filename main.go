package main

import (
	"context"

	"github.com/rs/zerolog/log"

	registryx "github.com/voicelab-go/agentkit/agent/registry"
	configx "github.com/voicelab-go/agentkit/pkg/config"
	_ "github.com/voicelab-go/agentkit/pkg/logger/autoload"
)

func main() {
	cfg := configx.MustNew[registryx.Config]("AGENTKIT")

	reg, err := registryx.New(context.Background(), *cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build agent registry")
	}

	for _, t := range reg.Types() {
		a, err := reg.Agent(t)
		if err != nil {
			log.Fatal().Err(err).Str("agent", string(t)).Msg("missing agent")
		}
		log.Info().Str("agent", string(t)).Int("tools", len(a.Tools)).Msg("agent ready")
	}
}
