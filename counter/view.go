package counter

import (
	"github.com/vcrobe/clickcounter/config"
	"github.com/vcrobe/clickcounter/vdom"
)

// View returns the counter markup for pages that do not ship their own:
// a display paragraph showing 0 and the trigger button.
func View(cfg config.Config) *vdom.VNode {
	return vdom.Div(map[string]any{"class": "counter"},
		vdom.Paragraph("0", map[string]any{"id": cfg.DisplayID}),
		vdom.Button("Increment", map[string]any{"id": cfg.TriggerID, "type": "button"}),
	)
}
