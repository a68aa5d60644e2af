// Package layout computes the static spherical placement of gallery items.
package layout

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultRadius is the wall sphere radius used by the host.
const DefaultRadius = 10.0

// Entry is the static target transform for one item. The set of entry ids
// always equals the set of collection ids.
type Entry struct {
	ID          string
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// up is the world up axis used for the look-at orientation.
var up = mgl64.Vec3{0, 1, 0}

// Sphere places n items on a sphere of the given radius using an
// equal-area spiral:
//
//	phi_i   = acos(-1 + 2i/n)
//	theta_i = sqrt(n*pi) * phi_i
//
// Each item is oriented to face the sphere's center. The computation is
// pure: identical ids and radius always produce identical entries.
func Sphere(ids []string, radius float64) []Entry {
	n := len(ids)
	entries := make([]Entry, n)

	for i, id := range ids {
		phi := math.Acos(-1 + 2*float64(i)/float64(n))
		theta := math.Sqrt(float64(n)*math.Pi) * phi

		position := mgl64.Vec3{
			radius * math.Sin(phi) * math.Cos(theta),
			radius * math.Sin(phi) * math.Sin(theta),
			radius * math.Cos(phi),
		}

		entries[i] = Entry{
			ID:          id,
			Position:    position,
			Orientation: lookAtOrigin(position),
		}
	}

	return entries
}

// lookAtOrigin returns the rotation that points an item's local forward
// axis (-Z) from its position toward the sphere center, with roll fixed
// against the world up axis.
func lookAtOrigin(position mgl64.Vec3) mgl64.Quat {
	if position.Len() == 0 {
		return mgl64.QuatIdent()
	}
	direction := position.Mul(-1).Normalize()

	rotDir := mgl64.QuatBetweenVectors(mgl64.Vec3{0, 0, -1}, direction)

	// Correct the roll: rotate the object's rotated up axis onto the
	// world up projected perpendicular to the view direction, so the
	// forward axis stays fixed.
	right := direction.Cross(up)
	if right.Len() < 1e-9 {
		// Looking straight along the up axis; any roll is valid.
		return rotDir.Normalize()
	}
	desiredUp := right.Cross(direction).Normalize()
	currentUp := rotDir.Rotate(up)

	return mgl64.QuatBetweenVectors(currentUp, desiredUp).Mul(rotDir).Normalize()
}

// Layout caches the computed entries for the current collection. It is
// recomputed only when the id set changes; re-renders against an unchanged
// collection see identical transforms.
type Layout struct {
	radius  float64
	ids     []string
	entries []Entry
	byID    map[string]Entry
}

// New creates an empty Layout with the given sphere radius.
func New(radius float64) *Layout {
	return &Layout{radius: radius, byID: make(map[string]Entry)}
}

// Update recomputes the layout if ids differ from the cached collection.
func (l *Layout) Update(ids []string) {
	if sameIDs(l.ids, ids) {
		return
	}

	l.ids = append([]string(nil), ids...)
	l.entries = Sphere(l.ids, l.radius)
	l.byID = make(map[string]Entry, len(l.entries))
	for _, e := range l.entries {
		l.byID[e.ID] = e
	}
}

// Entries returns the cached entries in collection order.
func (l *Layout) Entries() []Entry {
	return l.entries
}

// Get returns the entry for an item id.
func (l *Layout) Get(id string) (Entry, bool) {
	e, ok := l.byID[id]
	return e, ok
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
