package record

import "go.uber.org/zap"

// Option alters the behavior of a Parser
type Option func(*Parser)

// Logger injects a logging facility into the parser
func Logger(l *zap.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.l = l
		}
	}
}

// WithSchemaCheck enables the round-trip schema-support check: parsed
// records are re-serialized and compared against their input, and
// divergences reported through the diagnostic callback. Divergences are
// never fatal: they flag lossy or unsupported configuration patterns
// without aborting a bulk sync.
func WithSchemaCheck(enabled bool) Option {
	return func(p *Parser) {
		p.schemaCheck = enabled
	}
}

// Diagnostics overrides the destination for schema-support reports
// (defaults to a warning on the parser logger)
func Diagnostics(report func(SupportReport)) Option {
	return func(p *Parser) {
		p.report = report
	}
}
