package physics

import "github.com/ByteArena/box2d"

// contactRecorder buffers post-solve impulses while the world steps.
// It never touches the world itself.
type contactRecorder struct {
	contacts []Contact
}

func (r *contactRecorder) BeginContact(contact box2d.B2ContactInterface) {}

func (r *contactRecorder) EndContact(contact box2d.B2ContactInterface) {}

func (r *contactRecorder) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {}

func (r *contactRecorder) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {
	if impulse == nil {
		return
	}
	a, okA := bodyID(contact.GetFixtureA())
	b, okB := bodyID(contact.GetFixtureB())
	if !okA || !okB {
		return
	}
	r.contacts = append(r.contacts, Contact{
		A:             a,
		B:             b,
		NormalImpulse: impulse.NormalImpulses[0],
	})
}

func bodyID(f *box2d.B2Fixture) (BodyID, bool) {
	if f == nil || f.GetBody() == nil {
		return NoBody, false
	}
	id, ok := f.GetBody().GetUserData().(BodyID)
	return id, ok
}
