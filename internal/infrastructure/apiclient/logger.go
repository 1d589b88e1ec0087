package apiclient

import (
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

var _ retryablehttp.LeveledLogger = leveledLogger{}

// leveledLogger adapta zerolog a retryablehttp. Los mensajes por intento van a debug;
// los fallos de transporte a warn (el error final lo reporta Do).
type leveledLogger struct {
	log zerolog.Logger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.log.Warn().Fields(kv).Msg(msg) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.log.Debug().Fields(kv).Msg(msg) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.log.Debug().Fields(kv).Msg(msg) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.log.Warn().Fields(kv).Msg(msg) }
