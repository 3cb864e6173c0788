package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryNamesInCycleOrder(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"default", "dark", "light", "monochrome", "ocean", "sunset"}, r.Names())
	assert.Equal(t, "default", r.Active().Name)
}

func TestRegistrySetActive(t *testing.T) {
	r := NewRegistry()
	assert.True(t, r.SetActive("ocean"))
	assert.Equal(t, "ocean", r.Active().Name)
	assert.False(t, r.SetActive("neon"))
	assert.Equal(t, "ocean", r.Active().Name, "unknown name leaves the selection alone")
}

func TestRegistryCycleWraps(t *testing.T) {
	r := NewRegistry()
	seen := map[string]bool{}
	for i := 0; i < len(r.Names()); i++ {
		seen[r.Active().Name] = true
		r.Cycle()
	}
	assert.Len(t, seen, len(r.Names()), "cycle visits every theme once")
	assert.Equal(t, "default", r.Active().Name, "full cycle returns to the start")
}

func TestHintMasksMiddle(t *testing.T) {
	assert.Equal(t, "a_____e (7 letters)", hintFor("ambigue"))
	assert.Equal(t, "of", hintFor("of"))
	assert.Equal(t, "a", hintFor("a"))
}
