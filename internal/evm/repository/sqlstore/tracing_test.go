package sqlstore

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func (s *RepositorySuite) TestBlockTxSpans() {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	defer func() {
		otel.SetTracerProvider(previous)
		s.Require().NoError(provider.Shutdown(context.Background()))
	}()

	s.Require().NoError(s.appendBlock(newBlock(0, 0)))

	tx, err := s.repo.BeginBlockTx(s.ctx)
	s.Require().NoError(err)
	s.Require().Error(tx.InsertBlock(s.ctx, newBlock(0, 0)))
	s.Require().NoError(tx.Rollback())

	var names []string
	spans := recorder.Ended()
	for _, span := range spans {
		names = append(names, span.Name())
		s.Contains(span.Attributes(), attribute.String("db.system", string(SQLite)))
	}
	s.Equal([]string{
		"sqlstore.BeginBlockTx",
		"sqlstore.InsertBlock",
		"sqlstore.Commit",
		"sqlstore.BeginBlockTx",
		"sqlstore.InsertBlock",
		"sqlstore.Rollback",
	}, names)

	s.Contains(spans[1].Attributes(), attribute.String("block.number", "0"))
	s.Equal(codes.Error, spans[4].Status().Code)
	s.Equal(codes.Unset, spans[5].Status().Code)
}
