package common

import (
	"runtime"
	"testing"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.MaxFontSize = 120
	return cfg
}

func TestFitLabel(t *testing.T) {
	tests := []struct {
		name        string
		label       Label
		wantDone    bool
		wantFloored bool
		wantMax     int
	}{
		{
			name:     "Short text fits easily",
			label:    Label{Text: "Test", Box: Rect{W: 100, H: 50}},
			wantDone: true,
			wantMax:  46,
		},
		{
			name: "Long text needs shrinking",
			label: Label{Text: "This text should shrink",
				Box: Rect{W: 200, H: 50}},
			wantDone: true,
			wantMax:  20,
		},
		{
			name:        "Hits the floor",
			label:       Label{Text: "Nothing fits in here", Box: Rect{W: 8, H: 50}, MinFontSize: 9},
			wantDone:    true,
			wantFloored: true,
			wantMax:     9,
		},
		{
			name:    "No height",
			label:   Label{Text: "Hidden", Box: Rect{W: 100, H: 4}},
			wantMax: 120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := NewLog()
			result, err := FitLabel(tt.label, testConfig(), NewFontFaceCache(), log)
			if err != nil {
				t.Fatalf("FitLabel() error %v", err)
			}
			if result.Done != tt.wantDone || result.Floored != tt.wantFloored {
				t.Errorf("Done %v Floored %v, want %v %v", result.Done, result.Floored,
					tt.wantDone, tt.wantFloored)
			}
			if result.FontSize > tt.wantMax {
				t.Errorf("FontSize %d, want <= %d", result.FontSize, tt.wantMax)
			}
			prev := 121
			for _, s := range result.Steps {
				if s >= prev {
					t.Errorf("Steps not decreasing: %v", result.Steps)
					break
				}
				prev = s
			}
			if len(result.Steps) > 0 && result.Steps[len(result.Steps)-1] != result.FontSize {
				t.Errorf("Last step %v, want %d", result.Steps, result.FontSize)
			}
			if (tt.wantFloored || !tt.wantDone) && len(log.Entries) == 0 {
				t.Error("Expected the outcome to be logged")
			}
		})
	}
}

func TestFitLabel_UnknownFont(t *testing.T) {
	label := Label{Text: "Test", Box: Rect{W: 100, H: 50}, Font: BuiltinFontPrefix + "nope"}
	if _, err := FitLabel(label, testConfig(), NewFontFaceCache(), NewLog()); err == nil {
		t.Error("Expected error for unknown font")
	}
}

func TestFitLabel_Case(t *testing.T) {
	cfg := testConfig()
	transformed := Label{Text: "fire weapons", Case: "upper", Box: Rect{W: 90, H: 200}}
	literal := Label{Text: "FIRE WEAPONS", Box: Rect{W: 90, H: 200}}
	a, _ := FitLabel(transformed, cfg, NewFontFaceCache(), NewLog())
	b, _ := FitLabel(literal, cfg, NewFontFaceCache(), NewLog())
	if a.FontSize != b.FontSize || len(a.Steps) != len(b.Steps) {
		t.Errorf("Case transform not applied: %d vs %d", a.FontSize, b.FontSize)
	}
}

func TestLabelArea(t *testing.T) {
	cfg := testConfig()
	cfg.PixelXInset, cfg.PixelYInset = 3, 5
	if w, h := labelArea(Label{Box: Rect{W: 50, H: 20}}, cfg); w != 44 || h != 10 {
		t.Errorf("labelArea() = %d, %d", w, h)
	}
	if w, h := labelArea(Label{Box: Rect{W: 2, H: 2}}, cfg); w != 0 || h != 0 {
		t.Errorf("labelArea() = %d, %d, want 0, 0", w, h)
	}
}

func TestFitLabel_LargeMaximum(t *testing.T) {
	cfg := DefaultConfig()
	cache := NewFontFaceCache()
	label := Label{Text: "Throttle", Box: Rect{W: 300, H: 60}}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	result, err := FitLabel(label, cfg, cache, NewLog())
	runtime.ReadMemStats(&after)
	if err != nil {
		t.Fatalf("FitLabel() error %v", err)
	}
	if !result.Done || result.FontSize > 56 {
		t.Errorf("Unexpected result %+v", result)
	}
	if cache.Len() != 0 {
		t.Errorf("Descent faces were cached: %d", cache.Len())
	}
	if alloc := after.TotalAlloc - before.TotalAlloc; alloc > 1<<30 {
		t.Errorf("Descent from %d allocated %d bytes", cfg.MaxFontSize, alloc)
	}
}

func TestReplayLabel(t *testing.T) {
	label := Label{Text: "Fire Weapons", Box: Rect{W: 200, H: 50}}
	tests := []struct {
		name    string
		config  func(*Config)
		event   FitEvent
		compare func(initial, got int) bool
	}{
		{
			name:    "Resize narrower shrinks",
			event:   FitEvent{Type: EventResize, Width: 100, Height: 50},
			compare: func(initial, got int) bool { return got < initial },
		},
		{
			name:    "Resize ignored when not activated",
			config:  func(c *Config) { c.ActivateOnResize = false },
			event:   FitEvent{Type: EventResize, Width: 100, Height: 50},
			compare: func(initial, got int) bool { return got == initial },
		},
		{
			name:    "Shorter input grows",
			event:   FitEvent{Type: EventInput, Text: "Fire"},
			compare: func(initial, got int) bool { return got > initial },
		},
		{
			name:    "Input ignored when not activated",
			config:  func(c *Config) { c.ActivateOnInput = false },
			event:   FitEvent{Type: EventInput, Text: "Fire"},
			compare: func(initial, got int) bool { return got == initial },
		},
		{
			name:    "Longer text shrinks",
			event:   FitEvent{Type: EventText, Text: "Fire Weapons and Countermeasures"},
			compare: func(initial, got int) bool { return got < initial },
		},
		{
			name:    "Update after done changes nothing",
			event:   FitEvent{Type: EventUpdate},
			compare: func(initial, got int) bool { return got == initial },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			if tt.config != nil {
				tt.config(cfg)
			}
			initial, results, err := ReplayLabel(label, []FitEvent{tt.event}, cfg,
				NewFontFaceCache(), NewLog())
			if err != nil {
				t.Fatalf("ReplayLabel() error %v", err)
			}
			if len(results) != 1 {
				t.Fatalf("Expected 1 result, got %d", len(results))
			}
			got := results[0]
			if !tt.compare(initial.FontSize, got.FontSize) {
				t.Errorf("Initial %d, after %s %d", initial.FontSize, tt.event.Type,
					got.FontSize)
			}
			if got.FontSize == initial.FontSize && len(got.Steps) != 0 {
				t.Errorf("Unchanged size reported steps %v", got.Steps)
			}
			if !got.Done {
				t.Errorf("Result not done: %+v", got)
			}
		})
	}
}

func TestReplayLabel_Sequence(t *testing.T) {
	label := Label{Text: "fire", Case: "upper", Box: Rect{W: 200, H: 50}}
	events := []FitEvent{
		{Type: EventText, Text: "fire weapons"},
		{Type: EventResize, Width: 120, Height: 50},
		{Type: EventInput, Text: "fire weapons now"},
		{Type: EventUpdate},
	}
	_, results, err := ReplayLabel(label, events, testConfig(), NewFontFaceCache(), NewLog())
	if err != nil {
		t.Fatalf("ReplayLabel() error %v", err)
	}
	if len(results) != len(events) {
		t.Fatalf("Expected %d results, got %d", len(events), len(results))
	}
	for i := 1; i < 3; i++ {
		if results[i].FontSize >= results[i-1].FontSize {
			t.Errorf("Event %d did not shrink: %d then %d", i, results[i-1].FontSize,
				results[i].FontSize)
		}
	}
	if results[3].FontSize != results[2].FontSize {
		t.Errorf("Update changed %d to %d", results[2].FontSize, results[3].FontSize)
	}
}

func TestReplayLabel_Errors(t *testing.T) {
	label := Label{Text: "Test", Box: Rect{W: 100, H: 50}}
	_, results, err := ReplayLabel(label, []FitEvent{{Type: EventUpdate}, {Type: "scroll"}},
		testConfig(), NewFontFaceCache(), NewLog())
	if err == nil || len(results) != 1 {
		t.Errorf("Expected error after 1 result, got %v with %d", err, len(results))
	}

	label.Font = BuiltinFontPrefix + "nope"
	if _, _, err := ReplayLabel(label, nil, testConfig(), NewFontFaceCache(),
		NewLog()); err == nil {
		t.Error("Expected error for unknown font")
	}
}
