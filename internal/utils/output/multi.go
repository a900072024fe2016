package output

import (
	"context"
	"errors"

	"github.com/law-makers/fototeca/pkg/models"
)

// Emitter is anything that accepts a page of records
type Emitter interface {
	Emit(ctx context.Context, page int, records []models.PhotoRecord) error
}

// MultiSink hands every page to each emitter in order. All emitters run even
// when an earlier one fails; the failures are joined.
type MultiSink []Emitter

// Emit implements Emitter
func (m MultiSink) Emit(ctx context.Context, page int, records []models.PhotoRecord) error {
	var errs []error
	for _, e := range m {
		if err := e.Emit(ctx, page, records); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
