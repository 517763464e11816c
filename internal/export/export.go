// Package export writes the report as a set of static JSON documents
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"logbook/internal/report"
)

// Sink receives exported documents
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
	String() string
}

// Document is one exported file
type Document struct {
	Name    string
	Payload any
}

// Documents splits a report into the files of a static export
func Documents(r *report.Report) []Document {
	return []Document{
		{Name: "flights.json", Payload: r.Flights},
		{Name: "stats.json", Payload: r.Stats},
		{Name: "charts.json", Payload: r.Charts},
		{Name: "leaderboards.json", Payload: r.Leaderboards},
		{Name: "aircraft.json", Payload: r.Aircraft},
		{Name: "people.json", Payload: r.People},
		{Name: "routes.json", Payload: r.Routes},
	}
}

// Exporter builds a report and hands every document to each sink
type Exporter struct {
	builder *report.Builder
	sinks   []Sink
	logger  *zap.Logger
}

// NewExporter creates an exporter writing to the given sinks
func NewExporter(builder *report.Builder, logger *zap.Logger, sinks ...Sink) *Exporter {
	return &Exporter{builder: builder, sinks: sinks, logger: logger}
}

// Run exports the pilot's report as of the given date and returns the
// names of the written documents
func (e *Exporter) Run(ctx context.Context, pilotID uuid.UUID, asOf time.Time) ([]string, error) {
	if len(e.sinks) == 0 {
		return nil, fmt.Errorf("no export target configured")
	}

	start := time.Now()
	r, err := e.builder.Build(ctx, pilotID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	docs := Documents(r)
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		data, err := json.MarshalIndent(doc.Payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", doc.Name, err)
		}
		for _, sink := range e.sinks {
			if err := sink.Put(ctx, doc.Name, data); err != nil {
				return nil, fmt.Errorf("failed to write %s to %s: %w", doc.Name, sink, err)
			}
		}
		names = append(names, doc.Name)
	}

	e.logger.Info("Export complete",
		zap.String("pilot", r.Pilot.Name()),
		zap.String("as_of", r.AsOf),
		zap.Int("flights", len(r.Flights)),
		zap.Int("documents", len(names)),
		zap.Duration("took", time.Since(start)))
	return names, nil
}
