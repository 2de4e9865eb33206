package preview_recurrence

import (
	"context"
	"fmt"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/internal/service/recurrence"
)

// UseCase use case предпросмотра серии занятий, ничего не записывает
type UseCase struct {
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(logger Logger) *UseCase {
	return &UseCase{logger: logger}
}

// Execute разворачивает правило повторения
func (uc *UseCase) Execute(_ context.Context, req *Request) (*Response, error) {
	occurrences, err := recurrence.Expand(req.Base, req.Pattern, req.IsRecurring)
	if err != nil {
		uc.logger.Warn("PreviewRecurrence: expansion failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	uc.logger.Info("PreviewRecurrence: user=%d, %d occurrences from %s",
		req.Session.UserID, len(occurrences), req.Base.Date.Format(domain.DateFormat))

	return &Response{Occurrences: occurrences}, nil
}
