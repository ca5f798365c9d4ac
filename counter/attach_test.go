package counter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/clickcounter/config"
	"github.com/vcrobe/clickcounter/dom/memdom"
	"github.com/vcrobe/clickcounter/events"
	"github.com/vcrobe/clickcounter/web"
)

type result struct {
	calls int
	c     *Controller
	err   error
}

func (r *result) done(c *Controller, err error) {
	r.calls++
	r.c, r.err = c, err
}

func parseIndex(t *testing.T, edit func(string) string) *memdom.Document {
	t.Helper()
	markup := string(web.Index)
	if edit != nil {
		markup = edit(markup)
	}
	doc, err := memdom.Parse(bytes.NewReader([]byte(markup)))
	require.NoError(t, err)
	return doc
}

func TestAttach_WaitsForReady(t *testing.T) {
	// Arrange
	doc := parseIndex(t, nil)
	var r result

	// Act
	Attach(doc, config.Default(), r.done)

	// Assert
	assert.Zero(t, r.calls, "nothing binds before the document is ready")
	assert.Zero(t, doc.Node(config.DefaultTriggerID).Click())

	doc.Load()
	require.Equal(t, 1, r.calls)
	require.NoError(t, r.err)
	assert.True(t, r.c.Bound())
}

func TestAttach_Cancelled(t *testing.T) {
	doc := parseIndex(t, nil)
	var r result

	sub := Attach(doc, config.Default(), r.done)
	sub.Unsubscribe()
	doc.Load()

	assert.Zero(t, r.calls)
}

// TestAttach_FirstClick loads the page, checks the static display, and
// clicks once.
func TestAttach_FirstClick(t *testing.T) {
	// Arrange
	doc := parseIndex(t, nil)
	var r result
	Attach(doc, config.Default(), r.done)
	display := doc.Node(config.DefaultDisplayID)
	before := display.TextContent()

	// Act
	doc.Load()
	afterLoad := display.TextContent()
	doc.Node(config.DefaultTriggerID).Click()

	// Assert
	require.NoError(t, r.err)
	assert.Equal(t, before, afterLoad)
	assert.Equal(t, "1", display.TextContent())
}

func TestAttach_RapidClicks(t *testing.T) {
	doc := parseIndex(t, nil)
	var r result
	Attach(doc, config.Default(), r.done)
	doc.Load()

	btn := doc.Node(config.DefaultTriggerID)
	for i := 0; i < 5; i++ {
		btn.Click()
	}

	require.NoError(t, r.err)
	assert.Equal(t, 5, r.c.Value())
	assert.Equal(t, "5", doc.Node(config.DefaultDisplayID).TextContent())
}

// TestAttach_MissingTrigger removes the trigger from the markup before
// load: initialization fails and clicking elsewhere changes nothing.
func TestAttach_MissingTrigger(t *testing.T) {
	// Arrange
	doc := parseIndex(t, func(s string) string {
		return strings.Replace(s, `<button id="increment-btn" type="button">Increment</button>`, "", 1)
	})
	var r result
	Attach(doc, config.Default(), r.done)

	// Act
	doc.Load()
	display := doc.Node(config.DefaultDisplayID)
	display.Click()
	doc.Body().Click()

	// Assert
	require.Equal(t, 1, r.calls)
	assert.Nil(t, r.c)
	assert.True(t, errors.Is(r.err, ErrMissingElement))
	assert.Equal(t, "0", display.TextContent())
}

func TestAttach_MountRendersView(t *testing.T) {
	// Arrange
	doc, err := memdom.ParseString(`<main id="app"></main>`)
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Mount = "app"
	var r result

	// Act
	Attach(doc, cfg, r.done)
	doc.Load()
	doc.Node(cfg.TriggerID).Click()

	// Assert
	require.NoError(t, r.err)
	app := doc.Node("app").Children()
	require.Len(t, app, 1)
	view := app[0].Children()
	require.Len(t, view, 2)
	assert.Equal(t, "p", view[0].Tag())
	assert.Equal(t, cfg.DisplayID, view[0].ID())
	assert.Equal(t, "1", view[0].TextContent())
	assert.Equal(t, "button", view[1].Tag())
	assert.Equal(t, cfg.TriggerID, view[1].ID())
}

func TestAttach_TwiceWithMount(t *testing.T) {
	doc, err := memdom.ParseString(`<main id="app"></main>`)
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Mount = "app"
	var first, second result
	Attach(doc, cfg, first.done)
	doc.Load()

	Attach(doc, cfg, second.done)
	doc.Node(cfg.TriggerID).Click()

	require.NoError(t, first.err)
	assert.True(t, errors.Is(second.err, ErrAlreadyBound))
	assert.Equal(t, 1, doc.CountByID(cfg.TriggerID), "the view is rendered once")
	assert.Equal(t, "1", doc.Node(cfg.DisplayID).TextContent())
}

func TestAttach_MissingMount(t *testing.T) {
	doc := memdom.New()
	doc.Load()
	cfg := config.Default()
	cfg.Mount = "app"
	var r result

	Attach(doc, cfg, r.done)

	require.Equal(t, 1, r.calls)
	assert.True(t, errors.Is(r.err, ErrMissingElement))
	assert.Contains(t, r.err.Error(), `mount "app"`)
	_, ok := doc.ElementByID(cfg.TriggerID)
	assert.False(t, ok)
}

func TestAttach_InvalidConfig(t *testing.T) {
	doc := parseIndex(t, nil)
	doc.Load()
	var r result

	Attach(doc, config.Config{}, r.done)

	assert.True(t, errors.Is(r.err, config.ErrInvalid))
}

// TestAttach_Twice re-runs initialization on a loaded page. The trigger
// keeps a single handler and the display keeps counting up.
func TestAttach_Twice(t *testing.T) {
	// Arrange
	doc := parseIndex(t, nil)
	var first, second result
	Attach(doc, config.Default(), first.done)
	doc.Load()
	btn := doc.Node(config.DefaultTriggerID)
	for i := 0; i < 3; i++ {
		btn.Click()
	}

	// Act
	Attach(doc, config.Default(), second.done)
	btn.Click()

	// Assert
	require.NoError(t, first.err)
	require.Equal(t, 1, second.calls)
	assert.True(t, errors.Is(second.err, ErrAlreadyBound))
	assert.Nil(t, second.c)
	assert.Equal(t, 1, btn.ListenerCount(events.Click))
	assert.Equal(t, 4, first.c.Value())
	assert.Equal(t, "4", doc.Node(config.DefaultDisplayID).TextContent())
}
