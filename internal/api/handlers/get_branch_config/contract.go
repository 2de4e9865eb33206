package get_branch_config

import (
	"context"

	"github.com/Skymx82/autosoft-sub001/internal/service/config/models"
)

type ConfigService interface {
	Get(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
