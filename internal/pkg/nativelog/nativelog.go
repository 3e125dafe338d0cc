// Package nativelog builds the server's zap logger: console output plus one
// append-only file per day under the log directory.
package nativelog

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvLogDir   = "CRM_LOG_DIR"
	filePrefix  = "crm-admin_"
	filePerm    = 0o644
	dirPerm     = 0o755
	timeLayout  = "2006-01-02 15:04:05.000"
	fileDateFmt = "2006-01-02"
)

// Options configure NewZapLogger.
type Options struct {
	// Dir overrides the log directory. Empty means ResolveDir("").
	Dir string
	// Development lowers the level to debug and colours the console.
	Development bool
}

// ResolveDir picks the log directory: configured, then CRM_LOG_DIR, then the
// first existing candidate, then ./logs.
func ResolveDir(configured string) string {
	if dir := strings.TrimSpace(configured); dir != "" {
		return dir
	}
	if dir := strings.TrimSpace(os.Getenv(EnvLogDir)); dir != "" {
		return dir
	}

	var candidates []string
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		candidates = append(candidates, filepath.Join(home, ".crm-admin", "log"))
	}
	candidates = append(candidates, filepath.Join(".", "logs"), filepath.Join(".", "tmp", "log"))
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return filepath.Join(".", "logs")
}

// TodayFilename names the file that receives lines written on now's date.
func TodayFilename(now time.Time) string {
	return filePrefix + now.Format(fileDateFmt) + ".log"
}

// Writer appends to the file of the current day, rolling over at midnight.
type Writer struct {
	mu  sync.Mutex
	dir string
	now func() time.Time
}

// NewWriter creates dir if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, err
	}
	return &Writer{dir: dir, now: time.Now}, nil
}

// Dir is the directory the writer appends to.
func (w *Writer) Dir() string { return w.dir }

func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(filepath.Join(w.dir, TodayFilename(w.now())), os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return 0, err
	}
	n, err := f.Write(p)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func (w *Writer) Sync() error { return nil }

// NewZapLogger tees console and daily-file output. The resolved directory is
// exported as CRM_LOG_DIR so the health module lists the same files.
func NewZapLogger(opts Options) (*zap.Logger, error) {
	w, err := NewWriter(ResolveDir(opts.Dir))
	if err != nil {
		return nil, err
	}
	_ = os.Setenv(EnvLogDir, w.Dir())

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	consoleCfg := zap.NewProductionEncoderConfig()
	if opts.Development {
		level.SetLevel(zap.DebugLevel)
		consoleCfg = zap.NewDevelopmentEncoderConfig()
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	consoleCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	fileCfg := zap.NewProductionEncoderConfig()
	fileCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stdout), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(w), level),
	)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	_ = zap.RedirectStdLog(logger)
	return logger, nil
}
