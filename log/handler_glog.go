package log

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// errVmoduleSyntax is returned when a user vmodule pattern is invalid.
var errVmoduleSyntax = errors.New("expect comma-separated list of package=N")

// GlogHandler is a log handler that mimics the filtering features of Google's
// glog logger: setting a global log level and overriding it per package, e.g.
// "rpc=5,eth/filters=4" traces the provider manager while the codec stays quiet.
// GlogHandler 模仿 glog 的过滤功能：全局级别加按包覆盖。
type GlogHandler struct {
	origin slog.Handler

	level    atomic.Int32
	override atomic.Bool

	lock      sync.RWMutex
	patterns  []pattern
	siteCache map[uintptr]slog.Level
}

type pattern struct {
	pkg   string
	level slog.Level
}

// NewGlogHandler creates a new log handler with filtering functionality similar
// to Google's glog logger. The returned handler implements Handler.
func NewGlogHandler(h slog.Handler) *GlogHandler {
	g := &GlogHandler{origin: h, siteCache: make(map[uintptr]slog.Level)}
	g.level.Store(int32(LevelInfo))
	return g
}

// Verbosity sets the glog verbosity ceiling.
func (h *GlogHandler) Verbosity(level slog.Level) {
	h.level.Store(int32(level))
}

// Vmodule sets the per-package verbosity overrides. Each rule is
// "<package path>=<legacy level>"; the package path is matched against the
// directory suffix of the logging call site.
func (h *GlogHandler) Vmodule(ruleset string) error {
	var filter []pattern
	for _, rule := range strings.Split(ruleset, ",") {
		if len(rule) == 0 {
			continue
		}
		pkg, lvl, ok := strings.Cut(rule, "=")
		pkg, lvl = strings.Trim(strings.TrimSpace(pkg), "/"), strings.TrimSpace(lvl)
		if !ok || pkg == "" || lvl == "" {
			return errVmoduleSyntax
		}
		l, err := strconv.Atoi(lvl)
		if err != nil {
			return errVmoduleSyntax
		}
		filter = append(filter, pattern{pkg: pkg, level: FromLegacyLevel(l)})
	}
	h.lock.Lock()
	defer h.lock.Unlock()
	h.patterns = filter
	h.siteCache = make(map[uintptr]slog.Level)
	h.override.Store(len(filter) != 0)
	return nil
}

// Enabled implements slog.Handler, reporting whether the handler handles records
// at the given level.
func (h *GlogHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	// fast-track skipping logging if override not enabled and the provided verbosity is above the set one.
	return h.override.Load() || slog.Level(h.level.Load()) <= lvl
}

// WithAttrs implements slog.Handler, returning a new Handler whose attributes
// consist of both the receiver's attributes and the arguments.
func (h *GlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.lock.RLock()
	patterns := append([]pattern(nil), h.patterns...)
	h.lock.RUnlock()

	res := &GlogHandler{
		origin:    h.origin.WithAttrs(attrs),
		patterns:  patterns,
		siteCache: make(map[uintptr]slog.Level),
	}
	res.level.Store(h.level.Load())
	res.override.Store(h.override.Load())
	return res
}

// WithGroup implements slog.Handler, returning a new Handler with the given
// group appended to the receiver's existing groups.
func (h *GlogHandler) WithGroup(name string) slog.Handler {
	panic("not implemented")
}

// Handle implements slog.Handler, filtering a log record through the global,
// local and backtrace filters, finally emitting it if either allow it through.
func (h *GlogHandler) Handle(_ context.Context, r slog.Record) error {
	if slog.Level(h.level.Load()) <= r.Level {
		return h.origin.Handle(context.Background(), r)
	}
	h.lock.RLock()
	lvl, ok := h.siteCache[r.PC]
	h.lock.RUnlock()

	if !ok {
		h.lock.Lock()
		lvl = LevelCrit + 1
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		dir := path.Dir(frame.File)
		for _, rule := range h.patterns {
			if dir == rule.pkg || strings.HasSuffix(dir, "/"+rule.pkg) {
				lvl = rule.level
			}
		}
		h.siteCache[r.PC] = lvl
		h.lock.Unlock()
	}
	if lvl <= r.Level {
		return h.origin.Handle(context.Background(), r)
	}
	return nil
}
