// Package autoload initializes the global logger from the LOG_* environment
// on import.
package autoload

import (
	configx "github.com/voicelab-go/agentkit/pkg/config"
	logx "github.com/voicelab-go/agentkit/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
