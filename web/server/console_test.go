package server

import (
	"bytes"
	"testing"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	// Create a channel to receive console messages
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-123", messageChan)

	logger.Printf("%s\n", "Test log message")

	select {
	case msg := <-messageChan:
		if msg.Message != "Test log message" {
			t.Errorf("Expected message 'Test log message', got '%s'", msg.Message)
		}
		if msg.RenderID != "test-render-123" {
			t.Errorf("Expected render ID 'test-render-123', got '%s'", msg.RenderID)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}
}

func TestWebLogger_ProgressLines(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-456", messageChan)

	// The renderer's terminal-style progress output
	logger.Printf("\rScanlines remaining: %d ", 3)
	logger.Printf("\rDone.                 \n")
	logger.Printf("\r \n")

	expected := []string{"Scanlines remaining: 3", "Done."}
	for i, want := range expected {
		select {
		case msg := <-messageChan:
			if msg.Message != want {
				t.Errorf("Message %d: expected '%s', got '%s'", i, want, msg.Message)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("Timeout waiting for message %d", i+1)
		}
	}

	// Whitespace-only output is dropped
	select {
	case msg := <-messageChan:
		t.Errorf("Expected no message for blank output, got '%s'", msg.Message)
	default:
	}
}

func TestWebLogger_ChannelFull(t *testing.T) {
	// Create a small channel that will fill up
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render-789", messageChan)

	logger.Printf("Message 1\n")

	// Send more messages - these should not block even though channel is full
	logger.Printf("Message 2\n")
	logger.Printf("Message 3\n")

	msg := <-messageChan
	if msg.Message != "Message 1" {
		t.Errorf("Expected the first message to be kept, got '%s'", msg.Message)
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	// Test logger with nil channel (should not panic)
	logger := NewWebLogger("test-render-nil", nil)
	logger.Printf("Test message with nil channel\n")
}

func TestWebLogger_FormattedMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-format", messageChan)

	logger.Printf("Render completed in %v (%dx%d)\n", 1500*time.Millisecond, 400, 225)

	select {
	case msg := <-messageChan:
		expected := "Render completed in 1.5s (400x225)"
		if msg.Message != expected {
			t.Errorf("Expected formatted message '%s', got '%s'", expected, msg.Message)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for formatted message")
	}
}

func TestWebLogger_FallbackWithoutConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := &WebLogger{renderID: "render-1", fallback: renderer.NewWriterLogger(&buf)}

	logger.Printf("\rScanlines remaining: %d ", 2)
	logger.Printf("\r \n")

	if buf.String() != "[render-1] Scanlines remaining: 2\n" {
		t.Errorf("Unexpected fallback output %q", buf.String())
	}
}
