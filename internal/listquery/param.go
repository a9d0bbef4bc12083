package listquery

import "fmt"

// ParamType is the primitive type a bind value is sent to the database as.
type ParamType uint8

const (
	NullParam ParamType = iota
	StringParam
	IntParam
	FloatParam
)

func (t ParamType) String() string {
	switch t {
	case StringParam:
		return "string"
	case IntParam:
		return "int"
	case FloatParam:
		return "float"
	default:
		return "null"
	}
}

// Param is a single bind value. The type and the value are set together by
// the constructors and cannot drift apart.
type Param struct {
	typ ParamType
	s   string
	i   int64
	f   float64
}

func String(s string) Param { return Param{typ: StringParam, s: s} }

func Int(i int64) Param { return Param{typ: IntParam, i: i} }

func Float(f float64) Param { return Param{typ: FloatParam, f: f} }

func Null() Param { return Param{typ: NullParam} }

func (p Param) Type() ParamType { return p.typ }

// Value returns the driver value for the parameter.
func (p Param) Value() any {
	switch p.typ {
	case StringParam:
		return p.s
	case IntParam:
		return p.i
	case FloatParam:
		return p.f
	default:
		return nil
	}
}

func (p Param) String() string {
	return fmt.Sprintf("%s(%v)", p.typ, p.Value())
}

// Args flattens params into the positional argument list expected by
// database/sql and gorm.
func Args(params []Param) []any {
	args := make([]any, len(params))
	for i, p := range params {
		args[i] = p.Value()
	}
	return args
}
