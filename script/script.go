// Package script builds entity hooks from tengo scripts.
//
// A script defines an update function taking the engine map:
//
//	update := func(engine) {
//		if engine.x > 100 {
//			engine.set_velocity(-engine.vx, engine.vy)
//			engine.transition("walk-left")
//		}
//	}
//
// The engine map exposes the entity's position (x, y), velocity (vx, vy),
// state, kind and id, the tick time in milliseconds, the held and pressed
// button names, and the functions transition, has_state, move_by,
// set_velocity and terminate. Top-level statements run on every tick, so
// values that must survive between ticks go in the per-entity memory map:
//
//	update := func(engine) {
//		n := memory.ticks
//		if is_undefined(n) { n = 0 }
//		memory.ticks = n + 1
//	}
package script

import (
	"fmt"
	"log"
	"strings"

	nature "github.com/oidoid/nature-elsewhere-sub000"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const dispatch = `
update(__engine)
`

// Program is a compiled script. Each entity using it runs its own clone with
// its own memory map.
type Program struct {
	name     string
	compiled *tengo.Compiled
}

// Compile compiles src. The script must define an update function.
func Compile(name string, src []byte) (*Program, error) {
	s := tengo.NewScript([]byte(string(src) + "\n" + dispatch))
	for _, global := range []string{"__engine", "memory"} {
		if err := s.Add(global, map[string]any{}); err != nil {
			return nil, fmt.Errorf("script: compile %s: %w", name, err)
		}
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	// A script without an update function fails here as an unresolved
	// reference in the dispatch line.
	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Program{name: name, compiled: compiled}, nil
}

// Register compiles src and registers it as a hook named name.
func Register(reg *nature.Registry, name string, src []byte) error {
	p, err := Compile(name, src)
	if err != nil {
		return err
	}
	reg.RegisterHook(name, p.Factory())
	return nil
}

// Factory returns a hook factory running the program for each entity.
func (p *Program) Factory() nature.HookFactory {
	return func(*nature.Entity) (nature.Hook, error) {
		r := &runner{
			name:     p.name,
			compiled: p.compiled.Clone(),
			memory:   &tengo.Map{Value: map[string]tengo.Object{}},
		}
		return r.update, nil
	}
}

// runner is one entity's instance of a program.
type runner struct {
	name     string
	compiled *tengo.Compiled
	memory   *tengo.Map

	// set for the duration of one run
	entity *nature.Entity
	status nature.UpdateStatus
}

func (r *runner) update(e *nature.Entity, state *nature.TickState) nature.UpdateStatus {
	r.entity = e
	r.status = nature.StatusUnchanged
	defer func() { r.entity = nil }()

	if err := r.compiled.Set("__engine", r.engine(e, state)); err != nil {
		log.Printf("script: %s: %v", r.name, err)
		return nature.StatusUnchanged
	}
	if err := r.compiled.Set("memory", r.memory); err != nil {
		log.Printf("script: %s: %v", r.name, err)
		return nature.StatusUnchanged
	}
	if err := r.compiled.Run(); err != nil {
		log.Printf("script: %s: entity %q %d: %v", r.name, e.Kind(), e.Handle(), err)
	}
	return r.status
}

func (r *runner) engine(e *nature.Entity, state *nature.TickState) *tengo.ImmutableMap {
	pos := e.Position()
	v := e.Velocity()
	values := map[string]tengo.Object{
		"x":       &tengo.Int{Value: int64(pos.X)},
		"y":       &tengo.Int{Value: int64(pos.Y)},
		"vx":      &tengo.Int{Value: int64(v.X)},
		"vy":      &tengo.Int{Value: int64(v.Y)},
		"state":   &tengo.String{Value: string(e.State())},
		"kind":    &tengo.String{Value: string(e.Kind())},
		"id":      &tengo.String{Value: e.ID},
		"time":    &tengo.Int{Value: int64(state.Time)},
		"held":    buttonArray(state.Input.Held),
		"pressed": buttonArray(state.Input.Pressed),
	}

	values["transition"] = &tengo.UserFunction{Name: "transition", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		name, ok := tengo.ToString(args[0])
		if !ok || !r.entity.Images().Has(nature.State(name)) {
			return tengo.FalseValue, nil
		}
		r.status |= r.entity.Transition(nature.State(name))
		return tengo.TrueValue, nil
	}}

	values["has_state"] = &tengo.UserFunction{Name: "has_state", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		name, _ := tengo.ToString(args[0])
		if r.entity.Images().Has(nature.State(name)) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["move_by"] = &tengo.UserFunction{Name: "move_by", Value: func(args ...tengo.Object) (tengo.Object, error) {
		d, err := xyArgs(args)
		if err != nil {
			return nil, err
		}
		r.status |= r.entity.MoveBy(d)
		return tengo.UndefinedValue, nil
	}}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := xyArgs(args)
		if err != nil {
			return nil, err
		}
		if v != r.entity.Velocity() {
			r.entity.SetVelocity(v)
			r.status |= nature.StatusUpdated
		}
		return tengo.UndefinedValue, nil
	}}

	values["terminate"] = &tengo.UserFunction{Name: "terminate", Value: func(args ...tengo.Object) (tengo.Object, error) {
		r.status |= nature.StatusTerminate
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func xyArgs(args []tengo.Object) (nature.XY, error) {
	if len(args) != 2 {
		return nature.XY{}, tengo.ErrWrongNumArguments
	}
	x, ok := tengo.ToInt(args[0])
	if !ok {
		return nature.XY{}, tengo.ErrInvalidArgumentType{Name: "x", Expected: "int", Found: args[0].TypeName()}
	}
	y, ok := tengo.ToInt(args[1])
	if !ok {
		return nature.XY{}, tengo.ErrInvalidArgumentType{Name: "y", Expected: "int", Found: args[1].TypeName()}
	}
	return nature.XY{X: x, Y: y}, nil
}

func buttonArray(b nature.Buttons) *tengo.ImmutableArray {
	arr := &tengo.ImmutableArray{}
	if b == 0 {
		return arr
	}
	for _, name := range strings.Split(b.String(), "|") {
		arr.Value = append(arr.Value, &tengo.String{Value: name})
	}
	return arr
}
