package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-pathtracer/pkg/log"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// Console keeps the most recent render events for the browser and mirrors them
// to the server log
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	limit    int
	logger   log.Logger
}

// NewConsole creates a console holding at most limit messages
func NewConsole(limit int, logger log.Logger) *Console {
	return &Console{limit: limit, logger: logger}
}

// Infof records an informational message
func (c *Console) Infof(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	c.logger.Info(message)
	c.add("info", message)
}

// Warningf records a warning
func (c *Console) Warningf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	c.logger.Warning(message)
	c.add("warning", message)
}

// Errorf records an error
func (c *Console) Errorf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	c.logger.Error(message)
	c.add("error", message)
}

// Messages returns a copy of the retained messages, oldest first
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	messages := make([]ConsoleMessage, len(c.messages))
	copy(messages, c.messages)
	return messages
}

func (c *Console) add(level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	})
	if over := len(c.messages) - c.limit; over > 0 {
		c.messages = append(c.messages[:0:0], c.messages[over:]...)
	}
}
