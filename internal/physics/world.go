// Package physics wraps a Box2D world with the bodies the slingshot game
// needs: a permanent ground edge, blocks, targets and the projectile.
// Contacts resolved during a step are returned as a batch instead of being
// delivered through callbacks.
package physics

import (
	"sort"

	"github.com/ByteArena/box2d"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/config"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/core"
)

// BodyID identifies a body for the lifetime of a World. IDs are never reused.
type BodyID int

// NoBody is the zero BodyID; no body ever has it.
const NoBody BodyID = 0

// Kind classifies a body.
type Kind int

const (
	KindGround Kind = iota
	KindBox
	KindTarget
	KindProjectile
)

func (k Kind) String() string {
	switch k {
	case KindGround:
		return "ground"
	case KindBox:
		return "box"
	case KindTarget:
		return "target"
	case KindProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// Contact is one contact resolved by the solver during a step.
type Contact struct {
	A, B          BodyID
	NormalImpulse float64
}

// BodyState is a read-only snapshot of a body.
type BodyState struct {
	ID              BodyID
	Kind            Kind
	Position        core.Vec
	Angle           float64
	Velocity        core.Vec
	AngularVelocity float64
	Radius          float64    // circles only
	Vertices        []core.Vec // polygons only, in body-local space
}

// WorldPoint returns a body-local point in world space.
func (s BodyState) WorldPoint(local core.Vec) core.Vec {
	return local.Rotate(s.Angle).Add(s.Position)
}

// Params configures a World.
type Params struct {
	Gravity            core.Vec
	TimeStep           float64
	VelocityIterations int
	PositionIterations int
	GroundHalfWidth    float64
	GroundFriction     float64
}

// ParamsFromConfig extracts world parameters from the tuning config.
func ParamsFromConfig(cfg config.WorldConfig) Params {
	return Params{
		Gravity:            core.V(cfg.GravityX, cfg.GravityY),
		TimeStep:           cfg.TimeStep,
		VelocityIterations: cfg.VelocityIterations,
		PositionIterations: cfg.PositionIterations,
		GroundHalfWidth:    cfg.GroundHalfWidth,
		GroundFriction:     cfg.GroundFriction,
	}
}

type body struct {
	b        *box2d.B2Body
	kind     Kind
	radius   float64
	vertices []core.Vec
}

// World owns a Box2D world and every body in it.
type World struct {
	params   Params
	world    box2d.B2World
	recorder *contactRecorder

	bodies map[BodyID]*body
	nextID BodyID
	ground BodyID
}

// NewWorld creates a world containing only the ground.
func NewWorld(p Params) *World {
	w := &World{
		params:   p,
		world:    box2d.MakeB2World(vec(p.Gravity)),
		recorder: &contactRecorder{},
		bodies:   make(map[BodyID]*body),
	}
	w.world.SetContactListener(w.recorder)
	w.ground = w.createGround()
	return w
}

// Params returns the parameters the world was created with.
func (w *World) Params() Params {
	return w.params
}

// Ground returns the permanent ground body.
func (w *World) Ground() BodyID {
	return w.ground
}

func (w *World) createGround() BodyID {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_staticBody
	b := w.world.CreateBody(&bd)

	edge := box2d.MakeB2EdgeShape()
	edge.Set(box2d.MakeB2Vec2(-w.params.GroundHalfWidth, 0), box2d.MakeB2Vec2(w.params.GroundHalfWidth, 0))

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &edge
	fd.Friction = w.params.GroundFriction
	b.CreateFixtureFromDef(&fd)

	return w.register(b, &body{kind: KindGround})
}

func (w *World) register(b *box2d.B2Body, entry *body) BodyID {
	w.nextID++
	id := w.nextID
	entry.b = b
	b.SetUserData(id)
	w.bodies[id] = entry
	return id
}

// CreateBox adds a rectangular block centered at center.
func (w *World) CreateBox(center core.Vec, width, height float64, m config.Material, static bool) BodyID {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_dynamicBody
	if static {
		bd.Type = box2d.B2BodyType.B2_staticBody
	}
	bd.Position = vec(center)
	b := w.world.CreateBody(&bd)

	hx, hy := width/2, height/2
	shape := box2d.MakeB2PolygonShape()
	shape.SetAsBox(hx, hy)
	attach(b, &shape, m)

	return w.register(b, &body{
		kind:     KindBox,
		vertices: []core.Vec{core.V(-hx, -hy), core.V(hx, -hy), core.V(hx, hy), core.V(-hx, hy)},
	})
}

// CreateTarget adds a destructible circular target.
func (w *World) CreateTarget(pos core.Vec, radius float64, m config.Material) BodyID {
	b := w.createCircle(pos, radius, m)
	return w.register(b, &body{kind: KindTarget, radius: radius})
}

// CreateProjectile adds the launchable circular projectile. It is damped and
// may fall asleep once it comes to rest.
func (w *World) CreateProjectile(pos core.Vec, radius float64, m config.Material) BodyID {
	b := w.createCircle(pos, radius, m)
	b.SetSleepingAllowed(true)
	return w.register(b, &body{kind: KindProjectile, radius: radius})
}

func (w *World) createCircle(pos core.Vec, radius float64, m config.Material) *box2d.B2Body {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_dynamicBody
	bd.Position = vec(pos)
	bd.LinearDamping = m.LinearDamping
	bd.AngularDamping = m.AngularDamping
	b := w.world.CreateBody(&bd)

	shape := box2d.MakeB2CircleShape()
	shape.M_radius = radius
	attach(b, &shape, m)
	return b
}

func attach(b *box2d.B2Body, shape box2d.B2ShapeInterface, m config.Material) {
	fd := box2d.MakeB2FixtureDef()
	fd.Shape = shape
	fd.Density = m.Density
	fd.Friction = m.Friction
	fd.Restitution = m.Restitution
	b.CreateFixtureFromDef(&fd)
}

// Destroy removes a body. The ground cannot be destroyed.
// Returns false if the body does not exist.
func (w *World) Destroy(id BodyID) bool {
	entry, ok := w.bodies[id]
	if !ok || id == w.ground {
		return false
	}
	w.world.DestroyBody(entry.b)
	delete(w.bodies, id)
	return true
}

// Teardown removes every body except the ground.
func (w *World) Teardown() {
	for _, id := range w.ids() {
		if id != w.ground {
			w.Destroy(id)
		}
	}
}

// BodyCount returns the number of live bodies, ground included.
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// CountKind returns the number of live bodies of the given kind.
func (w *World) CountKind(k Kind) int {
	n := 0
	for _, entry := range w.bodies {
		if entry.kind == k {
			n++
		}
	}
	return n
}

// Body returns a snapshot of a body.
func (w *World) Body(id BodyID) (BodyState, bool) {
	entry, ok := w.bodies[id]
	if !ok {
		return BodyState{}, false
	}
	b := entry.b
	return BodyState{
		ID:              id,
		Kind:            entry.kind,
		Position:        toVec(b.GetPosition()),
		Angle:           b.GetAngle(),
		Velocity:        toVec(b.GetLinearVelocity()),
		AngularVelocity: b.GetAngularVelocity(),
		Radius:          entry.radius,
		Vertices:        entry.vertices,
	}, true
}

// Launch stops a body and applies an impulse at its center of mass.
func (w *World) Launch(id BodyID, impulse core.Vec) {
	entry, ok := w.bodies[id]
	if !ok {
		return
	}
	b := entry.b
	b.SetLinearVelocity(box2d.MakeB2Vec2(0, 0))
	b.SetAngularVelocity(0)
	b.ApplyLinearImpulse(vec(impulse), b.GetWorldCenter(), true)
}

// Step advances the world by one fixed time step and returns the contacts
// resolved during it, in solver order.
func (w *World) Step() []Contact {
	w.recorder.contacts = w.recorder.contacts[:0]
	w.world.Step(w.params.TimeStep, w.params.VelocityIterations, w.params.PositionIterations)
	return append([]Contact(nil), w.recorder.contacts...)
}

// ids returns live body IDs in creation order.
func (w *World) ids() []BodyID {
	ids := make([]BodyID, 0, len(w.bodies))
	for id := range w.bodies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func vec(v core.Vec) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(v.X, v.Y)
}

func toVec(v box2d.B2Vec2) core.Vec {
	return core.V(v.X, v.Y)
}
