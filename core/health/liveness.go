package health

import (
	"github.com/Arokeji/Nailted-Back/core/handler"
	"github.com/Arokeji/Nailted-Back/core/response"
)

// Liveness always answers 200 "ALIVE". It checks nothing beyond the process.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}
