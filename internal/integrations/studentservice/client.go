package studentservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с сервисом учеников
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса учеников
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetStudent получает ученика автошколы
func (c *Client) GetStudent(ctx context.Context, schoolID, studentID int64) (*Student, error) {
	url := fmt.Sprintf("%s/internal/schools/%d/students/%d", c.baseURL, schoolID, studentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid student ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrStudentNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var student Student
	if err := json.NewDecoder(resp.Body).Decode(&student); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &student, nil
}

// GetStudentWithGracefulDegradation получает ученика с graceful degradation
// ErrStudentNotFound пробрасывается как есть; при недоступности сервиса возвращается
// ErrServiceDegraded, и вызывающий код пропускает проверки, зависящие от ученика
func (c *Client) GetStudentWithGracefulDegradation(ctx context.Context, schoolID, studentID int64) (*Student, error) {
	student, err := c.GetStudent(ctx, schoolID, studentID)
	if err != nil {
		if errors.Is(err, ErrStudentNotFound) {
			c.log.Info("Student id=%d not found in school id=%d", studentID, schoolID)
			return nil, err
		}

		c.log.Error("StudentService unavailable, applying graceful degradation for student_id=%d: %v", studentID, err)
		return nil, fmt.Errorf("%w: student_id=%d, error=%v", ErrServiceDegraded, studentID, err)
	}

	return student, nil
}
