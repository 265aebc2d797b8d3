package scene

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/corevessel/internal/config"
	"github.com/Faultbox/corevessel/internal/engine/camera"
	"github.com/Faultbox/corevessel/internal/engine/material"
	"github.com/Faultbox/corevessel/internal/engine/mesh"
)

const eps = 1e-4

type drawCall struct {
	handle   MeshHandle
	material material.Name
	model    mgl32.Mat4
}

// fakeBackend records uploads, releases and draws.
type fakeBackend struct {
	next      MeshHandle
	live      map[MeshHandle]*mesh.Mesh
	released  []MeshHandle
	frames    []FrameUniforms
	draws     []drawCall
	failAfter int // uploads allowed before failing; <0 never fails
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{live: map[MeshHandle]*mesh.Mesh{}, failAfter: -1}
}

func (f *fakeBackend) Upload(m *mesh.Mesh) (MeshHandle, error) {
	if f.failAfter == 0 {
		return 0, errors.New("out of memory")
	}
	if f.failAfter > 0 {
		f.failAfter--
	}
	f.next++
	f.live[f.next] = m
	return f.next, nil
}

func (f *fakeBackend) Release(h MeshHandle) {
	if h == 0 {
		return
	}
	delete(f.live, h)
	f.released = append(f.released, h)
}

func (f *fakeBackend) BeginFrame(u FrameUniforms) {
	f.frames = append(f.frames, u)
	f.draws = f.draws[:0]
}

func (f *fakeBackend) Draw(h MeshHandle, m material.Material, model mgl32.Mat4) {
	f.draws = append(f.draws, drawCall{h, m.Name, model})
}

func newTestState() *State {
	return NewState(config.Default())
}

func TestNewState(t *testing.T) {
	s := newTestState()

	want := [ShardCount]float32{0, 90, 180, 270}
	for i, sh := range s.Shards {
		if sh.Angle != want[i] {
			t.Errorf("shard %d angle %f, want %f", i, sh.Angle, want[i])
		}
	}
	if s.Shards[2].YOffset != 0.9 {
		t.Errorf("shard 2 y offset %f", s.Shards[2].YOffset)
	}
	if s.Light.Orbiting {
		t.Error("light should start stationary")
	}
	if s.Projection.Mode != camera.Perspective {
		t.Errorf("projection %v", s.Projection.Mode)
	}
	if s.RadiusFactor != 1 || s.SpeedFactor != 1 {
		t.Errorf("factors %f %f", s.RadiusFactor, s.SpeedFactor)
	}
}

func TestAdvance(t *testing.T) {
	s := newTestState()
	s.Advance(1)

	if !mgl32.FloatEqualThreshold(s.CoreAngle, 0.2, eps) {
		t.Errorf("core angle %f, want 0.2", s.CoreAngle)
	}
	if !mgl32.FloatEqualThreshold(s.PulsePhase, 0.08, eps) {
		t.Errorf("pulse %f, want 0.08", s.PulsePhase)
	}
	if !mgl32.FloatEqualThreshold(s.BobPhase, 0.05, eps) {
		t.Errorf("bob %f, want 0.05", s.BobPhase)
	}
	if !mgl32.FloatEqualThreshold(s.Shards[1].Angle, 90.14, eps) {
		t.Errorf("shard 1 angle %f, want 90.14", s.Shards[1].Angle)
	}
	if s.Light.Angle != 0 {
		t.Errorf("stationary light moved to %f", s.Light.Angle)
	}
}

func TestAdvanceWrapsPhases(t *testing.T) {
	s := newTestState()
	s.TogglePulse()
	s.PulsePhase = 600000
	s.BobPhase = 1100000

	pulsePeriod := 2 * math32.Pi / s.Params.PulseFrequency
	bobPeriod := 2 * math32.Pi / s.Params.BobFrequency
	step := func(before, after, period float32) float32 {
		d := after - before
		if d < 0 {
			d += period
		}
		return d
	}

	s.Advance(1)
	for i := 0; i < 100; i++ {
		pulse, bob := s.PulsePhase, s.BobPhase
		s.Advance(1)
		if s.PulsePhase < 0 || s.PulsePhase >= pulsePeriod {
			t.Fatalf("pulse phase %f outside [0,%f)", s.PulsePhase, pulsePeriod)
		}
		if s.BobPhase < 0 || s.BobPhase >= bobPeriod {
			t.Fatalf("bob phase %f outside [0,%f)", s.BobPhase, bobPeriod)
		}
		if d := step(pulse, s.PulsePhase, pulsePeriod); !mgl32.FloatEqualThreshold(d, s.Params.PulseSpeedAlt, eps) {
			t.Fatalf("frame %d pulse step %f, want %f", i, d, s.Params.PulseSpeedAlt)
		}
		if d := step(bob, s.BobPhase, bobPeriod); !mgl32.FloatEqualThreshold(d, s.Params.BobSpeed, eps) {
			t.Fatalf("frame %d bob step %f, want %f", i, d, s.Params.BobSpeed)
		}
	}
}

func TestAdvanceLightsFrameBeforeMoving(t *testing.T) {
	s := newTestState()
	s.Apply(ActionToggleLight)

	s.Advance(1)
	if want := (mgl32.Vec3{0, s.Light.Height, s.Light.Distance}); !s.LightPos.ApproxEqualThreshold(want, eps) {
		t.Errorf("first frame light %v, want %v", s.LightPos, want)
	}
	if s.Light.Angle != s.Light.Speed {
		t.Errorf("light angle %f after one frame, want %f", s.Light.Angle, s.Light.Speed)
	}

	moved := s.Light.Position()
	s.Advance(1)
	if !s.LightPos.ApproxEqualThreshold(moved, eps) {
		t.Errorf("second frame light %v, want %v", s.LightPos, moved)
	}
}

func TestAdvanceClampsStep(t *testing.T) {
	a, b := newTestState(), newTestState()
	a.Advance(1000)
	b.Advance(a.Params.MaxFrameStep)
	if a.CoreAngle != b.CoreAngle || a.Shards[0].Angle != b.Shards[0].Angle {
		t.Errorf("large step not clamped: %f vs %f", a.CoreAngle, b.CoreAngle)
	}

	c := newTestState()
	c.Advance(-5)
	if c.CoreAngle != 0 || c.PulsePhase != 0 {
		t.Error("negative step moved the animation")
	}
}

func TestShardAnglesWrap(t *testing.T) {
	s := newTestState()
	s.SetSpeedFactor(MaxSpeedFactor)
	for i := 0; i < 5000; i++ {
		s.Advance(1)
		for k, sh := range s.Shards {
			if sh.Angle < 0 || sh.Angle >= 360 {
				t.Fatalf("step %d shard %d angle %f out of [0,360)", i, k, sh.Angle)
			}
		}
	}
}

func TestShardAtQuarterTurn(t *testing.T) {
	s := newTestState()
	s.Shards[0].Angle = 90

	p := mgl32.TransformCoordinate(mgl32.Vec3{}, ShardModel(s, 0))
	if !mgl32.FloatEqualThreshold(p[0], 2.3, eps) {
		t.Errorf("x %f, want 2.3", p[0])
	}
	if !mgl32.FloatEqualThreshold(p[2], 0, eps) {
		t.Errorf("z %f, want 0", p[2])
	}
	if !mgl32.FloatEqualThreshold(p[1], 0.5, eps) {
		t.Errorf("y %f, want 0.5", p[1])
	}

	s.SetRadiusFactor(2)
	p = mgl32.TransformCoordinate(mgl32.Vec3{}, ShardModel(s, 0))
	if !mgl32.FloatEqualThreshold(p[0], 4.6, eps) {
		t.Errorf("doubled radius x %f, want 4.6", p[0])
	}
}

func TestCoreModel(t *testing.T) {
	s := newTestState()
	p := mgl32.TransformCoordinate(mgl32.Vec3{}, CoreModel(s))
	if !p.ApproxEqualThreshold(mgl32.Vec3{0, 0.6, 0}, eps) {
		t.Errorf("core origin %v, want (0,0.6,0)", p)
	}

	s.PulsePhase = math32.Pi / 6 // sin(3*phase) = 1
	top := mgl32.TransformCoordinate(mgl32.Vec3{0, 1, 0}, CoreModel(s))
	if !mgl32.FloatEqualThreshold(top[1], 0.6+1.05, eps) {
		t.Errorf("pulsed pole y %f, want 1.65", top[1])
	}
}

func TestApply(t *testing.T) {
	s := newTestState()

	if !s.Apply(ActionTogglePulse) || s.PulseSpeed != 0.02 {
		t.Errorf("pulse speed %f after toggle", s.PulseSpeed)
	}
	s.Apply(ActionTogglePulse)
	if s.PulseSpeed != 0.08 {
		t.Errorf("pulse speed %f after second toggle", s.PulseSpeed)
	}

	s.Apply(ActionToggleShardSpeed)
	if s.Shards[0].Speed != 2 || s.Shards[3].Speed != 3.5 {
		t.Errorf("fast speeds %v", s.Shards)
	}
	s.Apply(ActionToggleShardSpeed)
	if s.Shards[0].Speed != 1 || s.Shards[3].Speed != 2.2 {
		t.Errorf("normal speeds %v", s.Shards)
	}

	s.Apply(ActionToggleLight)
	if !s.Light.Orbiting {
		t.Error("light not orbiting after toggle")
	}
	s.Apply(ActionToggleProjection)
	if s.Projection.Mode != camera.Orthographic {
		t.Error("projection not toggled")
	}

	s.Apply(ActionMoveForward)
	s.Apply(ActionTurnLeft)
	s.Apply(ActionResetCamera)
	if s.Camera.Eye != (mgl32.Vec3{0, 0, -20}) {
		t.Errorf("camera not reset: %v", s.Camera.Eye)
	}

	for i := 0; i < 50; i++ {
		s.Apply(ActionRadiusUp)
	}
	if s.RadiusFactor != MaxRadiusFactor {
		t.Errorf("radius factor %f not clamped", s.RadiusFactor)
	}
	for i := 0; i < 50; i++ {
		s.Apply(ActionSpeedDown)
	}
	if s.SpeedFactor != MinSpeedFactor {
		t.Errorf("speed factor %f not clamped", s.SpeedFactor)
	}

	for _, a := range []Action{ActionResolutionUp, ActionScreenshot, ActionQuit, ActionNone} {
		if s.Apply(a) {
			t.Errorf("%v should be left to the caller", a)
		}
	}
}

func TestPedestalAdjacency(t *testing.T) {
	tiers := PedestalTiers(config.Default().Pedestal)
	if len(tiers) != 3 {
		t.Fatalf("%d tiers", len(tiers))
	}

	wantCenters := []float32{-3.1, -3.7, -5.2}
	for i, tier := range tiers {
		if !mgl32.FloatEqualThreshold(tier.CenterY, wantCenters[i], eps) {
			t.Errorf("tier %s centre %f, want %f", tier.Name, tier.CenterY, wantCenters[i])
		}
	}

	_, top0 := tiers[0].Bounds()
	if !mgl32.FloatEqualThreshold(top0, -3, eps) {
		t.Errorf("lip top %f, want -3", top0)
	}
	for i := 1; i < len(tiers); i++ {
		bottomAbove, _ := tiers[i-1].Bounds()
		_, top := tiers[i].Bounds()
		if !mgl32.FloatEqualThreshold(bottomAbove, top, eps) {
			t.Errorf("%s bottom %f != %s top %f", tiers[i-1].Name, bottomAbove, tiers[i].Name, top)
		}
	}
}

func TestPedestalAdjacencyCustom(t *testing.T) {
	tiers := PedestalTiers(config.PedestalConfig{
		TopY: -2.5,
		Tiers: []config.TierConfig{
			{Name: "a", Radius: 3, HalfHeight: 0.3},
			{Name: "b", Radius: 2, HalfHeight: 1.7},
			{Name: "c", Radius: 4, HalfHeight: 0.05},
			{Name: "d", Radius: 5, HalfHeight: 0.6},
		},
	})
	for i := 1; i < len(tiers); i++ {
		bottomAbove, _ := tiers[i-1].Bounds()
		_, top := tiers[i].Bounds()
		if !mgl32.FloatEqualThreshold(bottomAbove, top, eps) {
			t.Errorf("gap between %s and %s: %f vs %f", tiers[i-1].Name, tiers[i].Name, bottomAbove, top)
		}
	}
}

func composeDefault(t *testing.T) (*State, Frame) {
	t.Helper()
	cfg := config.Default()
	s := NewState(cfg)
	lib, err := material.NewLibrary(nil)
	if err != nil {
		t.Fatal(err)
	}
	return s, Compose(s, PedestalTiers(cfg.Pedestal), lib, 16.0/9.0)
}

// fadedLibrary overrides the alpha of some materials of a real library.
type fadedLibrary struct {
	lib   *material.Library
	alpha map[material.Name]float32
}

func (f fadedLibrary) Get(name material.Name) (material.Material, error) {
	m, err := f.lib.Get(name)
	if err != nil {
		return m, err
	}
	if a, ok := f.alpha[name]; ok {
		m.Alpha = a
	}
	return m, nil
}

func TestComposeTransparencyFromMaterials(t *testing.T) {
	cfg := config.Default()
	s := NewState(cfg)
	lib, err := material.NewLibrary(nil)
	if err != nil {
		t.Fatal(err)
	}
	mats := fadedLibrary{lib: lib, alpha: map[material.Name]float32{
		material.Core:  0.5,
		material.Glass: 1,
	}}

	f := Compose(s, PedestalTiers(cfg.Pedestal), mats, 1)
	for _, o := range f.Objects {
		switch o.Material {
		case material.Core:
			if !o.Transparent {
				t.Error("faded core not marked transparent")
			}
		case material.Glass:
			if o.Transparent {
				t.Error("opaque glass marked transparent")
			}
		}
	}
	last := f.Objects[len(f.Objects)-1]
	if last.Material != material.Core {
		t.Errorf("last object %s, want the faded core", last.Name)
	}
}

func TestComposeGlassLast(t *testing.T) {
	_, f := composeDefault(t)

	glass := -1
	for i, o := range f.Objects {
		if o.Material == material.Glass {
			glass = i
		}
	}
	if glass < 0 {
		t.Fatal("no glass object")
	}
	for i, o := range f.Objects {
		if !o.Transparent && i > glass {
			t.Errorf("opaque %s drawn at %d after glass at %d", o.Name, i, glass)
		}
	}
	if glass != len(f.Objects)-1 {
		t.Errorf("glass at %d of %d", glass, len(f.Objects))
	}

	// core, 4 shards, 2 collars, 2 caps, 3 tiers x 3 parts, glass
	if want := 1 + 4 + 2 + 2 + 9 + 1; len(f.Objects) != want {
		t.Errorf("%d objects, want %d", len(f.Objects), want)
	}
}

func TestComposeUniforms(t *testing.T) {
	s, f := composeDefault(t)
	if f.Eye != s.Camera.Eye {
		t.Errorf("eye %v", f.Eye)
	}
	if f.LightPos != (mgl32.Vec3{0, 3, 0}) {
		t.Errorf("light %v, want (0,3,0)", f.LightPos)
	}
	if f.View != s.Camera.View() {
		t.Error("view matrix does not come from the camera")
	}
}

func TestComposeCapsCloseGlass(t *testing.T) {
	_, f := composeDefault(t)
	for _, o := range f.Objects {
		var y float32
		switch o.Name {
		case "cap-bottom":
			y = mgl32.TransformCoordinate(mgl32.Vec3{0, -1, 0}, o.Model)[1]
			if !mgl32.FloatEqualThreshold(y, -3, eps) {
				t.Errorf("bottom cap at %f, want -3", y)
			}
		case "cap-top":
			y = mgl32.TransformCoordinate(mgl32.Vec3{0, 1, 0}, o.Model)[1]
			if !mgl32.FloatEqualThreshold(y, 3, eps) {
				t.Errorf("top cap at %f, want 3", y)
			}
		}
	}
}

func TestDrawOrder(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, -20}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	objs := []Object{
		{Name: "near-glass", Transparent: true, Model: mgl32.Translate3D(0, 0, -5)},
		{Name: "a", Model: mgl32.Ident4()},
		{Name: "far-glass", Transparent: true, Model: mgl32.Translate3D(0, 0, 5)},
		{Name: "b", Model: mgl32.Ident4()},
		{Name: "c", Model: mgl32.Ident4()},
	}

	got := DrawOrder(objs, view)
	want := []string{"a", "b", "c", "far-glass", "near-glass"}
	for i, o := range got {
		if o.Name != want[i] {
			t.Fatalf("order %v, want %v", names(got), want)
		}
	}
	if objs[0].Name != "near-glass" {
		t.Error("input slice was modified")
	}
}

func names(objs []Object) []string {
	out := make([]string, len(objs))
	for i, o := range objs {
		out[i] = o.Name
	}
	return out
}

func TestCoreResolution(t *testing.T) {
	b := newFakeBackend()
	r, err := NewCoreResolution(b, 1, 32, 4, 64)
	if err != nil {
		t.Fatal(err)
	}
	if r.Value() != 32 || len(b.live) != 1 {
		t.Fatalf("value %d live %d", r.Value(), len(b.live))
	}

	steps := []struct {
		op      func() (bool, error)
		want    int
		changed bool
	}{
		{r.Increase, 64, true},
		{r.Increase, 64, false},
		{r.Decrease, 32, true},
		{r.Decrease, 16, true},
		{r.Decrease, 8, true},
		{r.Decrease, 4, true},
		{r.Decrease, 4, false},
		{r.Increase, 8, true},
	}
	for i, st := range steps {
		changed, err := st.op()
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if changed != st.changed || r.Value() != st.want {
			t.Errorf("step %d: value %d changed %v, want %d %v", i, r.Value(), changed, st.want, st.changed)
		}
		if len(b.live) != 1 {
			t.Fatalf("step %d: %d live spheres", i, len(b.live))
		}
		if _, ok := b.live[r.Handle()]; !ok {
			t.Fatalf("step %d: current handle %d is not live", i, r.Handle())
		}
		if got := b.live[r.Handle()].VertexCount(); got != mesh.SphereVertexCount(r.Value(), r.Value()) {
			t.Errorf("step %d: live sphere has %d vertices", i, got)
		}
	}

	if _, err := r.Set(1000); err != nil || r.Value() != 64 {
		t.Errorf("Set(1000) -> %d (%v)", r.Value(), err)
	}
	if _, err := r.Set(-3); err != nil || r.Value() != 4 {
		t.Errorf("Set(-3) -> %d (%v)", r.Value(), err)
	}

	r.Release()
	if len(b.live) != 0 {
		t.Errorf("%d meshes live after release", len(b.live))
	}
}

func TestCoreResolutionUploadFailureKeepsOld(t *testing.T) {
	b := newFakeBackend()
	r, err := NewCoreResolution(b, 1, 16, 4, 64)
	if err != nil {
		t.Fatal(err)
	}
	old := r.Handle()

	b.failAfter = 0
	if _, err := r.Increase(); err == nil {
		t.Fatal("expected upload error")
	}
	if r.Handle() != old || r.Value() != 16 {
		t.Errorf("failed rebuild replaced the sphere: handle %d value %d", r.Handle(), r.Value())
	}
	if _, ok := b.live[old]; !ok {
		t.Error("old sphere released after failed rebuild")
	}
}

func TestRender(t *testing.T) {
	cfg := config.Default()
	b := newFakeBackend()

	meshes, err := BuildMeshes(cfg.Scene, b)
	if err != nil {
		t.Fatal(err)
	}
	lib, err := material.NewLibrary(nil)
	if err != nil {
		t.Fatal(err)
	}

	s := NewState(cfg)
	f := Compose(s, PedestalTiers(cfg.Pedestal), lib, 1)
	if err := Render(f, meshes, lib, b); err != nil {
		t.Fatal(err)
	}

	if len(b.frames) != 1 {
		t.Fatalf("%d frames begun", len(b.frames))
	}
	if len(b.draws) != len(f.Objects) {
		t.Fatalf("%d draws for %d objects", len(b.draws), len(f.Objects))
	}
	last := b.draws[len(b.draws)-1]
	if last.material != material.Glass {
		t.Errorf("last draw uses %s, want glass", last.material)
	}
	coreHandle, _ := meshes.Handle(MeshCore)
	if b.draws[0].handle != coreHandle {
		t.Errorf("first draw handle %d, want core %d", b.draws[0].handle, coreHandle)
	}
	for _, d := range b.draws {
		if _, ok := b.live[d.handle]; !ok {
			t.Errorf("draw uses released handle %d", d.handle)
		}
	}

	// The core swap between frames is picked up by the next frame.
	if _, err := meshes.Core.Decrease(); err != nil {
		t.Fatal(err)
	}
	if err := Render(Compose(s, PedestalTiers(cfg.Pedestal), lib, 1), meshes, lib, b); err != nil {
		t.Fatal(err)
	}
	if b.draws[0].handle != meshes.Core.Handle() || b.draws[0].handle == coreHandle {
		t.Errorf("second frame core handle %d", b.draws[0].handle)
	}

	meshes.Release()
	if len(b.live) != 0 {
		t.Errorf("%d meshes live after release", len(b.live))
	}
}

func TestBuildMeshesUploadFailure(t *testing.T) {
	b := newFakeBackend()
	b.failAfter = 3
	if _, err := BuildMeshes(config.Default().Scene, b); err == nil {
		t.Fatal("expected error")
	}
	if len(b.live) != 0 {
		t.Errorf("%d meshes leaked after failed build", len(b.live))
	}
}

func TestNormalMatrix(t *testing.T) {
	// The glass is squashed in Y; a slanted normal must stay perpendicular
	// to the transformed surface tangent.
	model := mgl32.Scale3D(GlassRadius, GlassHalfHeight, GlassRadius)
	view := mgl32.Ident4()

	n := mgl32.Vec3{1, 1, 0}.Normalize()
	tangent := mgl32.Vec3{1, -1, 0}

	nm := NormalMatrix(view, model)
	nw := nm.Mul3x1(n)
	tw := model.Mat3().Mul3x1(tangent)
	if d := nw.Dot(tw); !mgl32.FloatEqualThreshold(d, 0, eps) {
		t.Errorf("transformed normal not perpendicular: dot %f", d)
	}

	// Pure rotation leaves the normal matrix equal to the rotation.
	rot := mgl32.HomogRotate3DY(0.7)
	if !NormalMatrix(view, rot).ApproxEqualThreshold(rot.Mat3(), eps) {
		t.Error("rotation normal matrix differs from rotation")
	}
}
