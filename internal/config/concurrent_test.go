package config

import (
	"context"
	"sync"
	"testing"

	"github.com/ZebulonRouseFrantzich/bvm/internal/platform"
)

// TestParser_Concurrent tests that the parser is safe for concurrent use.
func TestParser_Concurrent(t *testing.T) {
	parser := NewParser(nil)
	luaCode := `bvm = { binaries = {
		"https://plugins.example.com/acme/fmt.json",
		{ path = "https://plugins.example.com/acme/lint.json", version = "^0.3" },
	} }`

	const numGoroutines = 100
	var wg sync.WaitGroup
	errs := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cfg, err := parser.ParseString(context.Background(), luaCode)
			if err != nil {
				errs <- err
				return
			}
			if len(cfg.Binaries) != 2 {
				t.Errorf("got %d binaries, want 2", len(cfg.Binaries))
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent parse failed: %v", err)
	}
}

// TestParser_ConcurrentWithPlatform tests concurrent parsing where each VM
// gets its own platform table.
func TestParser_ConcurrentWithPlatform(t *testing.T) {
	detector := platform.StaticDetector{Info: &platform.Info{
		OS:      "linux",
		Arch:    "amd64",
		ArchRaw: "x86_64",
	}}
	parser := NewParser(detector)
	luaCode := `
		local bins = { "https://plugins.example.com/acme/fmt.json" }
		if platform.is_linux then
			table.insert(bins, "https://plugins.example.com/acme/linux-only.json")
		end
		bvm = { binaries = bins }
	`

	const numGoroutines = 50
	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cfg, err := parser.ParseString(context.Background(), luaCode)
			if err != nil {
				t.Errorf("ParseString() error = %v", err)
				return
			}
			if len(cfg.Binaries) != 2 {
				t.Errorf("got %d binaries, want 2", len(cfg.Binaries))
			}
		}()
	}
	wg.Wait()
}
