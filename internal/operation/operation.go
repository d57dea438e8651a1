// Package operation wraps application service calls with telemetry and
// transactions.
package operation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry is the per-service telemetry handle.
type Telemetry struct {
	Module  string
	Logger  *slog.Logger
	Metrics *observability.Metrics
	Tracer  trace.Tracer
}

// NewTelemetry scopes obs to a module.
func NewTelemetry(module string, obs observability.Observability) Telemetry {
	return Telemetry{
		Module:  module,
		Logger:  obs.Logger.With(slog.String(observability.FieldModule, module)),
		Metrics: obs.Metrics,
		Tracer:  obs.Tracer,
	}
}

// Func is the signature of a wrapped service operation.
type Func[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// Run wraps op with a span, operation metrics, logging and panic recovery.
// Errors are wrapped with the operation name; failures are logged at warn.
func Run[S any, F any](
	ctx context.Context,
	t Telemetry,
	operationName string,
	attrs []attribute.KeyValue,
	op Func[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := t.Tracer.Start(ctx, t.Module+"."+operationName, trace.WithAttributes(
		append([]attribute.KeyValue{attribute.String("operation", operationName)}, attrs...)...,
	))
	defer span.End()

	logArgs := make([]any, 0, len(attrs)+1)
	logArgs = append(logArgs, slog.String(observability.FieldOperation, operationName))
	for _, a := range attrs {
		logArgs = append(logArgs, slog.String(string(a.Key), a.Value.Emit()))
	}

	t.Metrics.RecordOperationAttempt(t.Module, operationName)

	startTime := time.Now()
	defer func() {
		t.Metrics.RecordOperationDuration(t.Module, operationName, time.Since(startTime))
	}()

	t.Logger.DebugContext(ctx, operationName+" triggered", logArgs...)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			t.Logger.ErrorContext(ctx, "Critical panic recovered",
				append(logArgs, slog.Any(observability.FieldError, err))...,
			)
			t.Metrics.RecordOperationFailure(t.Module, operationName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		t.Logger.ErrorContext(ctx, "Operation failed with error",
			append(logArgs, slog.Any(observability.FieldError, wrappedErr))...,
		)
		t.Metrics.RecordOperationFailure(t.Module, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		t.Logger.WarnContext(ctx, "Operation returned failure result",
			append(logArgs, slog.Any("failure", *result.Failure))...,
		)
		t.Metrics.RecordOperationFailure(t.Module, operationName)
	}

	if result.IsSuccess() {
		t.Logger.InfoContext(ctx, operationName+" completed successfully", logArgs...)
		t.Metrics.RecordOperationSuccess(t.Module, operationName)
	}

	return result, nil
}

// RunInTx runs fn inside a transaction on db. A nil db runs fn with a nil
// handle so repositories fall back to their own connection.
//
// The transaction is rolled back when fn returns an error or a failure
// result, so a rejected mutation leaves nothing behind.
func RunInTx[S any, F any](
	ctx context.Context,
	db *bun.DB,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		if txErr != nil {
			return txErr
		}
		if result.IsFailure() {
			return errRollback
		}
		return nil
	})
	if errors.Is(err, errRollback) {
		return result, nil
	}

	return result, err
}

// errRollback aborts a transaction whose operation returned a failure.
var errRollback = errors.New("operation: rollback on failure result")

// Attr is shorthand for a string span attribute.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}
