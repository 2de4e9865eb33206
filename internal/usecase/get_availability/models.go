package get_availability

import (
	"time"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
)

// Каналы запросов доступности: запросы разных каналов друг друга не вытесняют
const (
	ChannelView    = "view"
	ChannelOptions = "options"
)

// Request модель запроса доступности на дату
type Request struct {
	Session  domain.SessionContext
	SchoolID int64
	BranchID int64
	Date     time.Time // Дата без времени
	Channel  string    // Пусто = ChannelView
}

// trackerKey ключ поколений запроса: сессия и канал
func (r *Request) trackerKey() string {
	channel := r.Channel
	if channel == "" {
		channel = ChannelView
	}
	return r.Session.Key() + ":" + channel
}

// Response модель ответа с доступностью инструкторов и машин
type Response struct {
	Date        time.Time
	SchoolID    int64
	BranchID    int64
	Config      *domain.BranchScheduleConfig
	Slots       []domain.AvailabilitySlot
	Instructors []*domain.Instructor
	Vehicles    []*domain.Vehicle
	Busy        []domain.BusyInterval
}
