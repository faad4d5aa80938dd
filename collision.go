package skiff

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/skiffworks/skiff/vmath"
)

// Contact describes one touching vehicle pair. Normal points from A toward
// B and is zero when the two centers coincide; Depth is the proxy overlap.
type Contact struct {
	A      VehicleID
	B      VehicleID
	Normal mgl64.Vec3
	Depth  float64
}

// findContacts runs the broad phase over the proxy boxes, then the exact
// sphere check per surviving pair. Pairs come out of the grid in
// deterministic order, so the contact list is reproducible run to run.
func (w *World) findContacts() []Contact {
	if len(w.snapshot) < 2 {
		return nil
	}

	pairs := w.grid.FindPairs(w.boxes)

	contacts := make([]Contact, 0, len(pairs))
	for _, pair := range pairs {
		if contact, ok := contactBetween(w.snapshot[pair[0]], w.snapshot[pair[1]]); ok {
			contacts = append(contacts, contact)
		}
	}
	return contacts
}

// contactBetween performs the narrow-phase sphere test between two vehicle
// proxies.
func contactBetween(a, b *Vehicle) (Contact, bool) {
	delta := b.Body.Transform.Position.Sub(a.Body.Transform.Position)
	radiusSum := a.Config.Radius + b.Config.Radius

	distSq := delta.LenSqr()
	if distSq > radiusSum*radiusSum {
		return Contact{}, false
	}

	return Contact{
		A:      a.id,
		B:      b.id,
		Normal: vmath.SafeNormalize(delta),
		Depth:  radiusSum - math.Sqrt(distSq),
	}, true
}
