package obs

import (
	"time"

	"github.com/rs/zerolog"
)

// Time logs an operation's duration (and error, if any) when the returned
// func runs. Usage:
//
//	defer obs.Time(log, "distance.resolve")(&err)
func Time(log zerolog.Logger, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)

		ev := log.Debug()
		if errp != nil && *errp != nil {
			ev = log.Warn().Err(*errp)
		}
		ev.Str("op", name).Dur("dur", dur).Msg("op finished")
	}
}
