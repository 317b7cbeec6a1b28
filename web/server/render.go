package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ProgressMessage is a single message on the progress websocket
type ProgressMessage struct {
	Type      string          `json:"type"` // "console", "progress", "complete", "error"
	RenderID  string          `json:"renderId"`
	Done      int             `json:"done,omitempty"`  // Completed scanlines
	Total     int             `json:"total,omitempty"` // Total scanlines
	ElapsedMs int64           `json:"elapsedMs,omitempty"`
	Console   *ConsoleMessage `json:"console,omitempty"`
	ImageData string          `json:"imageData,omitempty"` // Base64 encoded PNG
	Stats     *Stats          `json:"stats,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// handleProgress upgrades to a websocket, renders the requested scene and
// streams scanline progress followed by the finished image
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	events := make(chan ProgressMessage, 100)

	// Single writer goroutine, websocket connections allow one concurrent writer
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeProgressMessages(conn, events, cancel)
	}()

	// The reader notices client disconnects and stops the render
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.runProgressRender(ctx, req, renderID, events)

	close(events)
	<-writerDone
}

// runProgressRender renders req and queues progress messages on events
func (s *Server) runProgressRender(ctx context.Context, req *RenderRequest, renderID string, events chan<- ProgressMessage) {
	send := func(msg ProgressMessage) {
		msg.RenderID = renderID
		select {
		case events <- msg:
		case <-ctx.Done():
		}
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		send(ProgressMessage{Type: "error", Error: err.Error()})
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	var consoleWG sync.WaitGroup
	consoleWG.Add(1)
	go func() {
		defer consoleWG.Done()
		s.streamConsoleMessages(ctx, consoleChan, events)
	}()

	raytracer, err := sceneObj.NewRaytracer(NewWebLogger(renderID, consoleChan))
	if err != nil {
		close(consoleChan)
		consoleWG.Wait()
		send(ProgressMessage{Type: "error", Error: err.Error()})
		return
	}

	startTime := time.Now()
	var buf bytes.Buffer
	writer := output.NewPNGWriter(&buf)

	stats, err := raytracer.Render(ctx, writer, func(done, total int) {
		send(ProgressMessage{
			Type:      "progress",
			Done:      done,
			Total:     total,
			ElapsedMs: time.Since(startTime).Milliseconds(),
		})
	})
	if err == nil {
		err = writer.Close()
	}

	// The logger is only used by Render, so the console can be closed now
	close(consoleChan)
	consoleWG.Wait()

	if err != nil {
		log.Printf("Render %s stopped: %v", renderID, err)
		send(ProgressMessage{Type: "error", Error: fmt.Sprintf("Render error: %v", err)})
		return
	}

	renderStats := newStats(stats)
	send(ProgressMessage{
		Type:      "complete",
		ElapsedMs: time.Since(startTime).Milliseconds(),
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Stats:     &renderStats,
	})
}

// streamConsoleMessages forwards logger output to the progress stream
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, events chan<- ProgressMessage) {
	for consoleMsg := range consoleChan {
		msg := consoleMsg
		select {
		case events <- ProgressMessage{Type: "console", RenderID: msg.RenderID, Console: &msg}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// writeProgressMessages is the only goroutine that writes to conn.
// A failed write cancels the render.
func (s *Server) writeProgressMessages(conn *websocket.Conn, events <-chan ProgressMessage, cancel context.CancelFunc) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	failed := false
	for {
		select {
		case msg, ok := <-events:
			if !ok {
				if !failed {
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					_ = conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, "render finished"))
				}
				return
			}
			if failed {
				// Drain so senders never block on a dead connection
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("websocket write error: %v", err)
				failed = true
				cancel()
			}
		case <-ticker.C:
			if failed {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				failed = true
				cancel()
			}
		}
	}
}
