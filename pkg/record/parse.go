// Package record turns raw configuration payloads into validated,
// structured records.
package record

import (
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/metacat-io/metacat/pkg/model"
	"github.com/metacat-io/metacat/pkg/record/status"
)

// New builds a Parser
func New(opts ...Option) *Parser {
	p := &Parser{
		l: zap.NewNop(),
	}
	for _, apply := range opts {
		apply(p)
	}
	if p.report == nil {
		p.report = func(r SupportReport) {
			p.l.Warn("record configuration not fully supported",
				zap.String("file_identifier", r.Identifier),
				zap.Strings("divergent", r.Divergent),
			)
		}
	}
	return p
}

// Parser validates raw record configurations and binds them to the
// remote revision they were read at
type Parser struct {
	l           *zap.Logger
	schemaCheck bool
	report      func(SupportReport)
}

// Parse decodes and validates one raw configuration.
//
// Fails with status.ErrValidation when required fields are absent
// (file identifier, revision, at least one metadata contact) or the
// payload does not decode, and with status.ErrSchemaVersion when the
// payload declares an unsupported schema.
func (p *Parser) Parse(raw []byte, revision string) (model.RecordRevision, error) {
	var rec model.Record
	if err := jsoniter.Unmarshal(raw, &rec); err != nil {
		return model.RecordRevision{}, status.ErrValidation.Wrap(err)
	}
	if !model.SupportedSchema(rec.Schema) {
		return model.RecordRevision{}, status.ErrSchemaVersion.WrapMessage("schema %q", rec.Schema)
	}
	rev, err := model.NewRecordRevision(rec, revision)
	if err != nil {
		return model.RecordRevision{}, status.ErrValidation.Wrap(err)
	}

	if p.schemaCheck {
		if divergent := roundTripDivergence(raw, rec); len(divergent) > 0 {
			p.report(SupportReport{
				Identifier: rec.FileIdentifier,
				Divergent:  divergent,
			})
		}
	}
	return rev, nil
}
