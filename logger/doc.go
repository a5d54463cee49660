// Package logger provides leveled, component-filtered logging for ytlinks.
//
// Usage:
//
//	log := logger.WithComponent(logger.ComponentResolver)
//	log.Info("resolving", map[string]interface{}{
//		"url": "https://www.youtube.com/watch?v=odN890XAfek",
//	})
//
//	config := logger.DefaultConfig()
//	config.Level = logger.DEBUG
//	config.Format = logger.FormatJSON
//	logger.SetGlobalLogger(logger.New(config))
//
// Components:
//   - ComponentApp: demo entry point
//   - ComponentResolver: resolve calls and their outcome
//   - ComponentExtractor: output relayed from the extraction tool
//   - ComponentReport: console rendering
package logger
