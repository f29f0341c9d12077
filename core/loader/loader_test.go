package loader

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (f *stubFeature) Name() string    { return f.name }
func (f *stubFeature) IsEnabled() bool { return f.enabled }
func (f *stubFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.loadErr
}

func TestManager_LoadAll(t *testing.T) {
	app := fiber.New()
	m := NewManager()

	on := &stubFeature{name: "on", enabled: true}
	off := &stubFeature{name: "off", enabled: false}
	m.Register(on)
	m.Register(off)

	err := m.LoadAll(app)
	assert.NoError(t, err)
	assert.True(t, on.loaded)
	assert.False(t, off.loaded)
}

func TestManager_LoadAllError(t *testing.T) {
	app := fiber.New()
	m := NewManager()
	m.Register(&stubFeature{name: "broken", enabled: true, loadErr: fmt.Errorf("boom")})

	err := m.LoadAll(app)
	assert.ErrorContains(t, err, `feature "broken"`)
}
