package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/ZebulonRouseFrantzich/bvm/internal/logging"
	"github.com/ZebulonRouseFrantzich/bvm/internal/platform"
	"github.com/ZebulonRouseFrantzich/bvm/internal/version"
)

// Parser represents a Lua config parser with platform detection.
type Parser struct {
	detector platform.Detector
	logger   logging.Logger
}

// NewParser creates a new config parser with the given platform detector.
// A nil detector skips injection of the platform table.
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector, logger: logging.Noop()}
}

// WithLogger sets the parser's logger.
func (p *Parser) WithLogger(l logging.Logger) *Parser {
	p.logger = logging.OrNoop(l)
	return p
}

// ParseFile reads and parses a project config file.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat config: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, &ValidationError{
			Message: fmt.Sprintf("%s is too large (%d bytes, max %d)", path, info.Size(), MaxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	p.logger.Debug("parsing project config", "path", path, "bytes", len(data))
	cfg, err := p.ParseString(ctx, string(data))
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.File = path
			return nil, parseErr
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// ParseString parses a Lua config from a string.
// This is useful for testing and in-memory config generation.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	// Detect platform and inject platform table
	if p.detector != nil {
		platformInfo, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, platformInfo); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("evaluate config: %w", ctxErr)
		}
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	cfg, err := extractConfig(L)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("parsed project config", "binaries", len(cfg.Binaries))
	return cfg, nil
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	File    string // Config file, when parsed from disk
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// extractConfig extracts the config from a Lua state.
// It expects a global "bvm" table with the config structure.
func extractConfig(L *lua.LState) (*Config, error) {
	root := L.GetGlobal(luaGlobalBvm)
	if root.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: fmt.Sprintf("missing or invalid '%s' table", luaGlobalBvm),
			Detail:  fmt.Sprintf("expected table, got %s", root.Type()),
		}
	}

	cfg := &Config{}
	if binariesVal := root.(*lua.LTable).RawGetString(luaFieldBinaries); binariesVal.Type() == lua.LTTable {
		binaries, err := extractBinaries(binariesVal.(*lua.LTable))
		if err != nil {
			return nil, &ParseError{Message: "invalid binary entry", Detail: err.Error()}
		}
		cfg.Binaries = binaries
	} else if binariesVal.Type() != lua.LTNil {
		return nil, &ParseError{
			Message: fmt.Sprintf("invalid '%s' field", luaFieldBinaries),
			Detail:  fmt.Sprintf("expected table, got %s", binariesVal.Type()),
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{
			Message: "config validation failed",
			Detail:  err.Error(),
		}
	}

	return cfg, nil
}

// extractBinaries extracts the binaries array in declaration order. Entries
// are either a path string or a table with path and optional version. nil
// values from platform conditionals are skipped but still count as a
// position, so error fields name the entry as written. Keys other than array
// positions are rejected.
func extractBinaries(table *lua.LTable) ([]Binary, error) {
	n := table.MaxN()

	var badKey lua.LValue
	table.ForEach(func(key, _ lua.LValue) {
		if badKey != nil {
			return
		}
		if num, ok := key.(lua.LNumber); ok {
			if i := int(num); lua.LNumber(i) == num && i >= 1 && i <= n {
				return
			}
		}
		badKey = key
	})
	if badKey != nil {
		return nil, &ValidationError{
			Field:   luaFieldBinaries,
			Message: fmt.Sprintf("must be a list, found key %s", badKey.String()),
		}
	}

	var binaries []Binary
	seen := make(map[string]int, n)
	for i := 1; i <= n; i++ {
		value := table.RawGetInt(i)
		field := binaryField(i - 1)

		var b Binary
		switch value.Type() {
		case lua.LTNil:
			continue
		case lua.LTString:
			b = Binary{Path: value.String()}
		case lua.LTTable:
			var err error
			if b, err = extractBinaryTable(value.(*lua.LTable)); err != nil {
				return nil, &ValidationError{Field: field, Message: err.Error()}
			}
		default:
			return nil, &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("expected string or table, got %s", value.Type()),
			}
		}

		if err := checkBinary(i-1, b, seen); err != nil {
			return nil, err
		}
		binaries = append(binaries, b)
	}

	return binaries, nil
}

func extractBinaryTable(table *lua.LTable) (Binary, error) {
	b := Binary{}

	if pathVal := table.RawGetString(luaFieldPath); pathVal.Type() == lua.LTString {
		b.Path = pathVal.String()
	}

	versionVal := table.RawGetString(luaFieldVersion)
	switch versionVal.Type() {
	case lua.LTNil:
	case lua.LTString:
		sel, err := version.ParseSelector(versionVal.String())
		if err != nil {
			return Binary{}, err
		}
		b.Version = &sel
	default:
		return Binary{}, fmt.Errorf("version must be a string, got %s", versionVal.Type())
	}

	return b, nil
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		return err.Error()
	}

	prefix := parseErr.Message
	if parseErr.File != "" {
		prefix = parseErr.File + ": " + prefix
	}
	if verbose {
		return fmt.Sprintf("%s\n\nDetails:\n%s", prefix, parseErr.Detail)
	}
	// Extract the most relevant part of the error
	detail := parseErr.Detail
	if idx := strings.Index(detail, "stack traceback"); idx > 0 {
		detail = strings.TrimSpace(detail[:idx])
	}
	return fmt.Sprintf("%s: %s", prefix, detail)
}
