package domfill

import (
	"context"
	"fmt"

	"github.com/hazyhaar/formfill/fill"
)

// eventJS replays the notification sequence frameworks listen for after a
// programmatic write: input, click, change, blur, in that order.
const eventJS = `() => {
	for (const type of ["input", "click", "change", "blur"]) {
		this.dispatchEvent(new Event(type, { bubbles: true, cancelable: true }));
	}
}`

// EventNotifier fires DOM events on filled controls so reactive frameworks
// pick up the written values. Controls from other adapters are ignored.
type EventNotifier struct{}

func (EventNotifier) Notify(ctx context.Context, c fill.Control) error {
	dc, ok := c.(*control)
	if !ok {
		return nil
	}
	if _, err := dc.el.Context(ctx).Eval(eventJS); err != nil {
		return fmt.Errorf("domfill: dispatch events: %w", err)
	}
	return nil
}
