package mcts

import "github.com/rs/zerolog"

// lumberjack logs the progress of the search. It discards everything unless a logger is set.
type lumberjack struct {
	logger zerolog.Logger
}

func makeLumberJack() lumberjack { return lumberjack{logger: zerolog.Nop()} }

func (l *lumberjack) log(msg string, args ...interface{}) { l.logger.Debug().Msgf(msg, args...) }

// SetLogger sets the logger the search reports to. Search events are logged at debug level.
func (l *lumberjack) SetLogger(logger zerolog.Logger) {
	l.logger = logger.With().Str("component", "mcts").Logger()
}
