// Package script builds scenes from zygomys Lisp source.
//
// A script calls the construction builtins in order; each returns the new
// entity id as a string so later calls can refer to it:
//
//	(def a (point 0 0 0))
//	(def b (point 3 4 0))
//	(line a b)
//	(sphere 0 2 0 1.5)
//	(rename (box 0 0 0 1 2 3) "crate")
package script

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/scene"
)

// Builder receives the entity operations a script performs.
// *history.Manager satisfies it, so every builtin call is undoable.
type Builder interface {
	Add(shape scene.Shape) (scene.ID, error)
	Update(id scene.ID, patch scene.Patch) (bool, error)
	Remove(id scene.ID) ([]scene.ID, error)
}

// Error is a parse or evaluation failure in user source.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result lists the entities a script created, in creation order.
type Result struct {
	Created []scene.ID
}

// Run evaluates source in a fresh sandbox against b. Entities created before
// a failure stay in b.
func Run(source string, b Builder) (res Result, err error) {
	if strings.TrimSpace(source) == "" {
		return res, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()

	defer func() {
		if r := recover(); r != nil {
			err = &Error{Message: fmt.Sprintf("panic during evaluation: %v", r)}
		}
	}()

	register(env, b, &res)

	if err := env.LoadString(preprocess(source)); err != nil {
		return res, parseError(err)
	}
	if _, err := env.Run(); err != nil {
		return res, parseError(err)
	}

	slog.Debug("script: done", "created", len(res.Created))
	return res, nil
}

func register(env *zygo.Zlisp, b Builder, res *Result) {
	add := func(name string, shape scene.Shape) (zygo.Sexp, error) {
		id, err := b.Add(shape)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		res.Created = append(res.Created, id)
		return &zygo.SexpStr{S: string(id)}, nil
	}

	// (point x y z)
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := floats(name, args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return add(name, scene.Point{Position: vec(v)})
	})

	// (line start end)
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		refs, err := ids(name, args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return add(name, scene.Line{StartPointID: refs[0], EndPointID: refs[1]})
	})

	// (plane a b c)
	env.AddFunction("plane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		refs, err := ids(name, args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return add(name, scene.Plane{PointIDs: [3]scene.ID{refs[0], refs[1], refs[2]}})
	})

	// (sphere x y z radius)
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := floats(name, args, 4)
		if err != nil {
			return zygo.SexpNull, err
		}
		return add(name, scene.Sphere{Position: vec(v), Radius: v[3]})
	})

	// (cylinder x y z radius height)
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := floats(name, args, 5)
		if err != nil {
			return zygo.SexpNull, err
		}
		return add(name, scene.Cylinder{Position: vec(v), Radius: v[3], Height: v[4]})
	})

	// (box x y z width height depth)
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := floats(name, args, 6)
		if err != nil {
			return zygo.SexpNull, err
		}
		return add(name, scene.Box{Position: vec(v), Size: vec(v[3:])})
	})

	// (rename id "name") and (recolor id "#rrggbb") return the id.
	patcher := func(apply func(string) scene.Patch) zygo.ZlispUserFunction {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
			}
			id, err := toString(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: id: %w", name, err)
			}
			value, err := toString(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			if _, err := b.Update(scene.ID(id), apply(value)); err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return args[0], nil
		}
	}
	env.AddFunction("rename", patcher(func(s string) scene.Patch { return scene.Patch{}.WithName(s) }))
	env.AddFunction("recolor", patcher(func(s string) scene.Patch { return scene.Patch{}.WithColor(s) }))

	// (remove id) returns the number of removed entities.
	env.AddFunction("remove", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		refs, err := ids(name, args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		removed, err := b.Remove(refs[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		return &zygo.SexpInt{Val: int64(len(removed))}, nil
	})
}

func floats(name string, args []zygo.Sexp, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s: expected %d numbers, got %d arguments", name, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

func ids(name string, args []zygo.Sexp, n int) ([]scene.ID, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s: expected %d ids, got %d arguments", name, n, len(args))
	}
	out := make([]scene.ID, n)
	for i, a := range args {
		s, err := toString(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		out[i] = scene.ID(s)
	}
	return out, nil
}

func vec(v []float64) geometry.Vector3 {
	return geometry.NewVector3(v[0], v[1], v[2])
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %s", s.SexpString(nil))
}

// preprocess turns ; line comments into the // comments zygomys reads.
// String literals are copied unchanged.
func preprocess(source string) string {
	var out strings.Builder
	out.Grow(len(source))
	inString := false
	for i := 0; i < len(source); i++ {
		c := source[i]
		switch {
		case inString:
			out.WriteByte(c)
			if c == '\\' && i+1 < len(source) {
				i++
				out.WriteByte(source[i])
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
			out.WriteByte(c)
		case c == ';':
			out.WriteString("//")
			for i+1 < len(source) && source[i+1] == ';' {
				i++
			}
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

func parseError(err error) *Error {
	msg := err.Error()
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return &Error{Line: line, Message: strings.TrimSpace(m[2])}
	}
	return &Error{Message: strings.TrimSpace(msg)}
}
