package logger

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log = logrus.New()

type Config struct {
	Level     string
	File      string
	FileSize  int
	FileCount int
	Compress  bool
}

// Init configures Log to write to stdout and, when File is set, to a
// rotating log file.
func Init(cfg Config) {
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if cfg.File == "" {
		Log.SetOutput(os.Stdout)
		return
	}
	Log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.FileSize, // megabytes
		MaxBackups: cfg.FileCount,
		MaxAge:     28, // days
		Compress:   cfg.Compress,
	}))
}

// Middleware logs one entry per request. It must run after chi's RequestID.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		entry := Log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     status,
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
			"htmx":       r.Header.Get("HX-Request") == "true",
		})
		switch {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}
	})
}

// Leveled adapts a logrus entry to the key/value logger interface used by
// retrying HTTP clients.
type Leveled struct {
	Entry *logrus.Entry
}

func (l Leveled) Error(msg string, kv ...interface{}) { l.Entry.WithFields(Fields(kv...)).Error(msg) }
func (l Leveled) Warn(msg string, kv ...interface{})  { l.Entry.WithFields(Fields(kv...)).Warn(msg) }
func (l Leveled) Info(msg string, kv ...interface{})  { l.Entry.WithFields(Fields(kv...)).Info(msg) }
func (l Leveled) Debug(msg string, kv ...interface{}) { l.Entry.WithFields(Fields(kv...)).Debug(msg) }

// Fields turns alternating keys and values into logrus fields. A trailing
// key without a value is kept under "extra".
func Fields(kv ...interface{}) logrus.Fields {
	out := make(logrus.Fields, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		out[fmt.Sprint(kv[i])] = kv[i+1]
	}
	if len(kv)%2 == 1 {
		out["extra"] = kv[len(kv)-1]
	}
	return out
}
