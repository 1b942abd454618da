package server

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RequestID string    `json:"requestId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// Console keeps the most recent messages of all renders
type Console struct {
	mu       sync.Mutex
	capacity int
	messages []ConsoleMessage
}

// NewConsole creates a console holding up to capacity messages
func NewConsole(capacity int) *Console {
	return &Console{capacity: capacity}
}

// Add appends a message, dropping the oldest when full
func (c *Console) Add(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, msg)
	if over := len(c.messages) - c.capacity; over > 0 {
		c.messages = append(c.messages[:0:0], c.messages[over:]...)
	}
}

// Messages returns a copy of the retained messages, oldest first
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ConsoleMessage{}, c.messages...)
}

// WebLogger implements core.Logger for one request: lines go to glog and the console
type WebLogger struct {
	requestID string
	console   *Console
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(requestID string, console *Console) core.Logger {
	return &WebLogger{
		requestID: requestID,
		console:   console,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")

	glog.Infof("[%s] %s", wl.requestID, message)

	if wl.console != nil {
		wl.console.Add(ConsoleMessage{
			RequestID: wl.requestID,
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		})
	}
}
