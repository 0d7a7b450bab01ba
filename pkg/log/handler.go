package log

import (
	"context"
	"log/slog"

	cerrors "github.com/cockroachdb/errors"

	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
)

// ErrFmtHandler は ErrAttrKey 属性にエラーを持つレコードを補強する slog ハンドラです。
//
// 追加される属性:
//   - StacktraceAttrKey: cockroachdb/errors が記録したスタックトレース
//   - FoldKey, StageKey: エラーチェーンに FoldError がある場合、
//     失敗したフォールド (1 始まり) と段階
type ErrFmtHandler struct {
	handler slog.Handler
}

// WrapByErrFmtHandler wraps handler with ErrFmtHandler.
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{handler: handler}
}

func (eh *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return eh.handler.Enabled(ctx, l)
}

func (eh *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrAttrKey {
			return true
		}
		err, _ = attr.Value.Any().(error)
		return false
	})
	if err == nil {
		return eh.handler.Handle(ctx, r)
	}

	if stack := stacktrace(err); stack != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, stack))
	}
	var foldErr *errors.FoldError
	if errors.As(err, &foldErr) {
		r.AddAttrs(slog.Int(FoldKey, foldErr.Fold+1), slog.String(StageKey, foldErr.Stage))
	}
	return eh.handler.Handle(ctx, r)
}

func (eh *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithAttrs(attrs)}
}

func (eh *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithGroup(g)}
}

// stacktrace returns the first safe detail recorded by cockroachdb/errors,
// which holds the stack of the innermost WithStack.
func stacktrace(err error) string {
	if details := cerrors.GetSafeDetails(err).SafeDetails; len(details) > 0 {
		return details[0]
	}
	return ""
}
