package tools

import (
	"context"

	"github.com/Malekse21/Senior-Voice/internal/model"
)

// memoryReader returns a read-only profile slice. Absent or unrecognized
// types return everything.
func (r *Registry) memoryReader(ctx context.Context, p Params) (interface{}, error) {
	switch p.String("type") {
	case "contacts":
		return map[string]interface{}{"contacts": r.store.Contacts(ctx)}, nil
	case "medications":
		return map[string]interface{}{"medications": r.store.Medications(ctx)}, nil
	case "appointments":
		return map[string]interface{}{"appointments": r.store.Appointments(ctx)}, nil
	default:
		return model.MemorySnapshot{
			Name:         r.store.User(ctx).Name,
			Contacts:     r.store.Contacts(ctx),
			Medications:  r.store.Medications(ctx),
			Appointments: r.store.Appointments(ctx),
			History:      r.store.History(ctx),
			Preferences:  r.store.Preferences(ctx),
		}, nil
	}
}
