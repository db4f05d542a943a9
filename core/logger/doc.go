// Package logger builds slog loggers for the service and provides attribute
// helpers so log lines use the same keys everywhere.
//
//	log := logger.New(
//		logger.WithProduction("nailted-quizz"),
//		logger.WithContextExtractors(middleware.RequestIDExtractor),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "results sent",
//		logger.Component("session"),
//		logger.SessionID(id),
//		logger.QuizVersion(version),
//	)
//
// Development presets use the text handler at debug level; staging and
// production use JSON at info level. Context extractors run on every record
// and append request scoped attributes such as the request id.
//
// Attribute helpers return an empty slog.Attr for nil or empty input, which
// slog drops, so callers never need nil checks.
package logger
