package loader_test

import (
	"errors"
	"testing"

	"card-vault/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type fakeFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(_ fiber.Router) error {
	f.loaded = true
	return f.loadErr
}

func TestLoadAll(t *testing.T) {
	app := fiber.New()

	t.Run("SkipsDisabled", func(t *testing.T) {
		mgr := loader.NewManager()
		on := &fakeFeature{name: "article", enabled: true}
		off := &fakeFeature{name: "deck", enabled: false}
		mgr.Register(on)
		mgr.Register(off)

		err := mgr.LoadAll(app)
		assert.NoError(t, err)
		assert.True(t, on.loaded)
		assert.False(t, off.loaded)
	})

	t.Run("StopsOnFailure", func(t *testing.T) {
		mgr := loader.NewManager()
		bad := &fakeFeature{name: "category", enabled: true, loadErr: errors.New("boom")}
		after := &fakeFeature{name: "deck", enabled: true}
		mgr.Register(bad)
		mgr.Register(after)

		err := mgr.LoadAll(app)
		assert.ErrorContains(t, err, "failed to load feature category")
		assert.False(t, after.loaded)
	})
}
