package config

import "testing"

func TestDefaults(t *testing.T) {
	c := Default()
	if c.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", c.LogLevel)
	}
	if c.ScoreFloor != 0.5 {
		t.Errorf("ScoreFloor = %v, want 0.5", c.ScoreFloor)
	}
	if c.PatternCacheCapacity != defaultPatternCacheCapacity {
		t.Errorf("PatternCacheCapacity = %d, want %d", c.PatternCacheCapacity, defaultPatternCacheCapacity)
	}
}

func TestApplyOptions(t *testing.T) {
	c := Apply(WithLogLevel("debug"), WithPatternCacheCapacity(10))
	if c.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", c.LogLevel)
	}
	if c.PatternCacheCapacity != 10 {
		t.Errorf("PatternCacheCapacity = %d, want 10", c.PatternCacheCapacity)
	}
}
