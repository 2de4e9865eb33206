package preview_recurrence

import (
	"context"

	previewRecurrence "github.com/Skymx82/autosoft-sub001/internal/usecase/preview_recurrence"
)

type PreviewRecurrenceUseCase interface {
	Execute(ctx context.Context, req *previewRecurrence.Request) (*previewRecurrence.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
