package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	configRepo "github.com/Skymx82/autosoft-sub001/internal/infra/storage/config"
	"github.com/Skymx82/autosoft-sub001/internal/service/config/models"
)

// Service сервис для работы с конфигурацией планинга
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// Get получает действующую конфигурацию бюро
// Приоритет: бюро > автошкола > встроенные значения по умолчанию
func (s *Service) Get(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Get: fetching config for school=%d, branch=%d by user=%d", req.SchoolID, req.BranchID, req.Session.UserID)

	if !req.Session.CanAccess(req.SchoolID, req.BranchID) {
		s.logger.Warn("Get: access denied for user=%d to branch=%d", req.Session.UserID, req.BranchID)
		return nil, ErrAccessDenied
	}

	config, err := s.configRepo.GetConfigWithHierarchy(ctx, req.SchoolID, req.BranchID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("Get: no stored config for school=%d, branch=%d, using defaults", req.SchoolID, req.BranchID)
			return models.FromDomainConfig(domain.DefaultBranchScheduleConfig(req.SchoolID, req.BranchID), models.LevelDefault), nil
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	level := models.LevelOf(config)
	s.logger.Info("Get: successfully fetched config id=%d (level: %s)", config.ID, level)
	return models.FromDomainConfig(config, level), nil
}

// Upsert сохраняет конфигурацию бюро или, при SchoolWide, общую конфигурацию автошколы
// Не переданные поля берутся из конфигурации, которая действовала до сохранения
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: saving config for school=%d, branch=%d, schoolWide=%t by user=%d",
		req.SchoolID, req.BranchID, req.SchoolWide, req.Session.UserID)

	// 1. Проверяем права доступа
	if !req.Session.CanAccess(req.SchoolID, req.BranchID) {
		s.logger.Warn("Upsert: access denied for user=%d to branch=%d", req.Session.UserID, req.BranchID)
		return nil, ErrAccessDenied
	}

	// 2. Получаем базовую конфигурацию
	config, err := s.baseConfig(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Применяем изменения
	if err := req.ApplyToConfig(config); err != nil {
		s.logger.Warn("Upsert: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	config.SchoolID = req.SchoolID
	if req.SchoolWide {
		config.BranchID = nil
	} else {
		branchID := req.BranchID
		config.BranchID = &branchID
	}

	// 4. Валидируем итоговую конфигурацию
	if err := validateConfig(config); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 5. Сохраняем
	saved, err := s.configRepo.Upsert(ctx, config)
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	level := models.LevelOf(saved)
	s.logger.Info("Upsert: successfully saved config id=%d (level: %s)", saved.ID, level)
	return models.FromDomainConfig(saved, level), nil
}

// baseConfig возвращает копию конфигурации, на которую накладываются изменения
func (s *Service) baseConfig(ctx context.Context, req *models.UpsertConfigRequest) (*domain.BranchScheduleConfig, error) {
	var (
		config *domain.BranchScheduleConfig
		err    error
	)
	if req.SchoolWide {
		config, err = s.configRepo.GetBySchoolAndBranch(ctx, req.SchoolID, nil)
	} else {
		config, err = s.configRepo.GetConfigWithHierarchy(ctx, req.SchoolID, req.BranchID)
	}

	switch {
	case errors.Is(err, configRepo.ErrConfigNotFound):
		return domain.DefaultBranchScheduleConfig(req.SchoolID, req.BranchID), nil
	case err != nil:
		s.logger.Error("Upsert: failed to get current config: %v", err)
		return nil, fmt.Errorf("%w: failed to get current config: %v", ErrInternal, err)
	}

	base := *config
	base.DurationChoices = append([]int(nil), config.DurationChoices...)
	return &base, nil
}

// validateConfig валидирует параметры конфигурации
func validateConfig(c *domain.BranchScheduleConfig) error {
	if !c.OpenTime.IsBefore(c.CloseTime) {
		return invalid("closeTime", "must be after openTime")
	}

	if c.SlotGranularityMinutes < domain.MinSlotGranularityMinutes || c.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return invalid("slotGranularityMinutes", fmt.Sprintf("must be between %d and %d",
			domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes))
	}

	if c.MaxBookingMinutes < domain.MinBookingMinutes || c.MaxBookingMinutes > domain.MaxBookingMinutes {
		return invalid("maxBookingMinutes", fmt.Sprintf("must be between %d and %d",
			domain.MinBookingMinutes, domain.MaxBookingMinutes))
	}

	if len(c.DurationChoices) == 0 {
		return invalid("durationChoices", "must not be empty")
	}
	seen := make(map[int]struct{}, len(c.DurationChoices))
	for i, d := range c.DurationChoices {
		if d < domain.MinBookingMinutes || d > c.MaxBookingMinutes {
			return invalid(fmt.Sprintf("durationChoices[%d]", i), fmt.Sprintf("must be between %d and %d",
				domain.MinBookingMinutes, c.MaxBookingMinutes))
		}
		if _, ok := seen[d]; ok {
			return invalid(fmt.Sprintf("durationChoices[%d]", i), "is duplicated")
		}
		seen[d] = struct{}{}
	}

	if c.AdvanceBookingDays < domain.MinAdvanceBookingDays || c.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return invalid("advanceBookingDays", fmt.Sprintf("must be between %d and %d",
			domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays))
	}

	return nil
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError(field, reason))
}
