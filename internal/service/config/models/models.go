package models

import (
	"time"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
)

// Уровни конфигурации
const (
	LevelBranch  = "branch"
	LevelSchool  = "school"
	LevelDefault = "default"
)

// Request модели

// GetConfigRequest запрос на получение действующей конфигурации бюро
type GetConfigRequest struct {
	Session  domain.SessionContext
	SchoolID int64
	BranchID int64
}

// UpsertConfigRequest запрос на сохранение конфигурации
// Все поля опциональны - не переданные берутся из действующей конфигурации
type UpsertConfigRequest struct {
	Session    domain.SessionContext `json:"-"`
	SchoolID   int64                 `json:"-"`
	BranchID   int64                 `json:"-"`
	SchoolWide bool                  `json:"-"` // Сохранить общую конфигурацию автошколы

	OpenTime               *string `json:"openTime,omitempty"`
	CloseTime              *string `json:"closeTime,omitempty"`
	SlotGranularityMinutes *int    `json:"slotGranularityMinutes,omitempty"` // 0 = по началам занятий
	MaxBookingMinutes      *int    `json:"maxBookingMinutes,omitempty"`
	DurationChoices        []int   `json:"durationChoices,omitempty"`
	AdvanceBookingDays     *int    `json:"advanceBookingDays,omitempty"` // 0 = без ограничений
}

// ApplyToConfig применяет обновления к конфигурации
// Обновляются только непустые (not nil) поля из request
func (r *UpsertConfigRequest) ApplyToConfig(config *domain.BranchScheduleConfig) error {
	if r.OpenTime != nil {
		t, err := domain.ParseTime("openTime", *r.OpenTime)
		if err != nil {
			return err
		}
		config.OpenTime = t
	}
	if r.CloseTime != nil {
		t, err := domain.ParseTime("closeTime", *r.CloseTime)
		if err != nil {
			return err
		}
		config.CloseTime = t
	}
	if r.SlotGranularityMinutes != nil {
		config.SlotGranularityMinutes = *r.SlotGranularityMinutes
	}
	if r.MaxBookingMinutes != nil {
		config.MaxBookingMinutes = *r.MaxBookingMinutes
	}
	if r.DurationChoices != nil {
		config.DurationChoices = append([]int(nil), r.DurationChoices...)
	}
	if r.AdvanceBookingDays != nil {
		config.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	return nil
}

// Response модели

// ConfigResponse ответ с данными конфигурации планинга
type ConfigResponse struct {
	ID                     int64     `json:"id,omitempty"`
	SchoolID               int64     `json:"schoolId"`
	BranchID               *int64    `json:"branchId,omitempty"`
	Level                  string    `json:"level"`
	OpenTime               string    `json:"openTime"`
	CloseTime              string    `json:"closeTime"`
	SlotGranularityMinutes int       `json:"slotGranularityMinutes"`
	MaxBookingMinutes      int       `json:"maxBookingMinutes"`
	DurationChoices        []int     `json:"durationChoices"`
	AdvanceBookingDays     int       `json:"advanceBookingDays"`
	CreatedAt              time.Time `json:"createdAt,omitempty"`
	UpdatedAt              time.Time `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.BranchScheduleConfig, level string) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                     c.ID,
		SchoolID:               c.SchoolID,
		BranchID:               c.BranchID,
		Level:                  level,
		OpenTime:               c.OpenTime.String(),
		CloseTime:              c.CloseTime.String(),
		SlotGranularityMinutes: c.SlotGranularityMinutes,
		MaxBookingMinutes:      c.MaxBookingMinutes,
		DurationChoices:        c.DurationChoices,
		AdvanceBookingDays:     c.AdvanceBookingDays,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

// LevelOf возвращает уровень конфигурации; несохранённая (ID = 0) - встроенная
func LevelOf(c *domain.BranchScheduleConfig) string {
	if c.ID == 0 {
		return LevelDefault
	}
	if c.IsSchoolWide() {
		return LevelSchool
	}
	return LevelBranch
}
