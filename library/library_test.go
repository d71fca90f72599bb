package library

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/kibt"
	"github.com/npillmayer/kibt/compiler"
	"github.com/npillmayer/kibt/vm"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// values is an argument source over a fixed slice of values.
type values struct {
	v []kibt.Value
}

func args(v ...kibt.Value) *values {
	return &values{v: v}
}

func (a *values) Next() (kibt.Value, bool) {
	if len(a.v) == 0 {
		return nil, false
	}
	next := a.v[0]
	a.v = a.v[1:]
	return next, true
}

type baseEnv struct{}

var env baseEnv

type native func(kibt.ArgSource, baseEnv) kibt.Value

type call struct {
	args []kibt.Value
	want kibt.Value
}

func check(t *testing.T, name string, fn native, calls []call) {
	t.Helper()
	for _, c := range calls {
		got := fn(args(c.args...), env)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("%s %v: result mismatch (-want +got):\n%s", name, c.args, diff)
		}
	}
}

type vs = []kibt.Value

var none = kibt.None{}

func TestConversion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kibt.library")
	defer teardown()
	//
	check(t, "int", Int[baseEnv], []call{
		{vs{kibt.Int(2)}, kibt.Int(2)},
		{vs{kibt.Float(2.5)}, kibt.Int(2)},
		{vs{kibt.Float(-2.7)}, kibt.Int(-2)},
		{vs{kibt.Float(float32(math.NaN()))}, kibt.Int(0)},
		{vs{kibt.Float(1e10)}, kibt.Int(math.MaxInt32)},
		{vs{kibt.Float(-1e10)}, kibt.Int(math.MinInt32)},
		{vs{none}, kibt.Int(0)},
		{vs{kibt.List{}}, kibt.Int(0)},
		{nil, kibt.Int(0)},
	})
	check(t, "flt", Flt[baseEnv], []call{
		{vs{kibt.Float(2.5)}, kibt.Float(2.5)},
		{vs{kibt.Int(2)}, kibt.Float(2)},
		{vs{none}, kibt.Float(0)},
		{nil, kibt.Float(0)},
	})
	check(t, "list", List[baseEnv], []call{
		{nil, kibt.List{}},
		{vs{kibt.Int(1), none, kibt.Float(2)}, kibt.List{kibt.Int(1), none, kibt.Float(2)}},
	})
}

func TestArithmetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kibt.library")
	defer teardown()
	//
	i := func(x int32) kibt.Value { return kibt.Int(x) }
	f := func(x float32) kibt.Value { return kibt.Float(x) }
	check(t, "add", Add[baseEnv], []call{
		{vs{i(1), i(2), i(3)}, i(6)},
		{vs{f(1.5), f(2.5)}, f(4)},
		{vs{i(7)}, i(7)},
		{nil, none},
		{vs{i(1), f(2)}, none},
		{vs{i(1), f(2), i(5)}, i(5)}, // a mismatch restarts the fold
		{vs{i(1), none, i(7)}, i(1)},
		{vs{i(math.MaxInt32), i(1)}, i(math.MinInt32)},
		{vs{kibt.List{}, i(1)}, none},
	})
	check(t, "sub", Sub[baseEnv], []call{
		{vs{i(10), i(3), i(2)}, i(5)},
		{vs{f(1), f(0.5)}, f(0.5)},
		{vs{i(math.MinInt32), i(1)}, i(math.MaxInt32)},
	})
	check(t, "mul", Mul[baseEnv], []call{
		{vs{i(2), i(3), i(4)}, i(24)},
		{vs{f(2), f(0.25)}, f(0.5)},
	})
	check(t, "div", Div[baseEnv], []call{
		{vs{i(7), i(2)}, i(3)},
		{vs{i(-7), i(2)}, i(-3)},
		{vs{i(1), i(0)}, none},
		{vs{i(math.MinInt32), i(-1)}, i(math.MinInt32)},
		{vs{f(1), f(4)}, f(0.25)},
	})
	check(t, "neg", Neg[baseEnv], []call{
		{vs{i(3)}, i(-3)},
		{vs{f(0.5)}, f(-0.5)},
		{vs{i(math.MinInt32)}, i(math.MinInt32)},
		{vs{kibt.List{i(1)}}, kibt.List{i(1)}},
		{nil, none},
	})
	if got := Pi[baseEnv](args(), env); got != kibt.Float(math.Pi) {
		t.Errorf("expected π, got %v", got)
	}
}

func TestLogic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kibt.library")
	defer teardown()
	//
	i := func(x int32) kibt.Value { return kibt.Int(x) }
	f := func(x float32) kibt.Value { return kibt.Float(x) }
	check(t, "cmp", Cmp[baseEnv], []call{
		{vs{i(1), i(2), i(3)}, i(1)},
		{vs{i(1), i(3), i(2)}, i(0)},
		{vs{i(1), i(1)}, i(0)},
		{vs{f(0.5), f(1)}, i(1)},
		{vs{i(1), f(2)}, i(0)},
		{vs{i(1)}, i(1)},
		{nil, i(1)},
		{vs{i(1), i(2), none, i(0)}, i(1)},
	})
	check(t, "not", Not[baseEnv], []call{
		{vs{i(0)}, i(1)},
		{vs{i(5)}, i(0)},
		{vs{f(0)}, i(0)},
		{nil, i(0)},
	})
	check(t, "eq", Eq[baseEnv], []call{
		{vs{i(1), i(1), i(1)}, i(1)},
		{vs{i(1), i(2), i(1)}, i(0)},
		{vs{i(1), f(1)}, i(0)},
		{vs{kibt.List{i(1)}, kibt.List{i(1)}}, i(1)},
		{vs{kibt.NativeRef(0), kibt.NativeRef(0)}, i(0)},
		{vs{i(1)}, i(1)},
	})
}

func TestPullingStops(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kibt.library")
	defer teardown()
	//
	a := args(kibt.Int(1), kibt.Int(3), kibt.Int(2), kibt.Int(9))
	Cmp[baseEnv](a, env)
	if len(a.v) != 1 {
		t.Errorf("cmp should stop after the first pair out of order, %d args left", len(a.v))
	}
	a = args(kibt.Int(1), kibt.Int(2), none, kibt.Int(1))
	Eq[baseEnv](a, env)
	if len(a.v) != 1 {
		t.Errorf("eq should stop at none, %d args left", len(a.v))
	}
	a = args(kibt.Int(1))
	Pi[baseEnv](a, env)
	if len(a.v) != 1 {
		t.Errorf("pi should not pull")
	}
}

func TestPrint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kibt.library")
	defer teardown()
	//
	var buf bytes.Buffer
	console := &Console{Out: &buf}
	if v := Print(args(kibt.Int(0)), console); !kibt.IsNone(v) {
		t.Errorf("print should return none, got %v", v)
	}
	if buf.String() != "0\n" {
		t.Errorf("expected \"0\\n\", got %q", buf.String())
	}
	buf.Reset()
	Print(args(kibt.Float(0.2), none, kibt.List{kibt.Int(1), kibt.List{}}, kibt.NativeRef(1)), console)
	want := "0.2\nnone\n[ 1 [ ] ]\n<native function>\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

type drawEnv struct {
	uv   [2]float32
	px   [2]uint32
	size [2]uint32
}

func (e drawEnv) UV() (float32, float32) { return e.uv[0], e.uv[1] }
func (e drawEnv) Px() (uint32, uint32)   { return e.px[0], e.px[1] }
func (e drawEnv) Size() (uint32, uint32) { return e.size[0], e.size[1] }

func TestDraw(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kibt.library")
	defer teardown()
	//
	e := drawEnv{uv: [2]float32{1, 2}, px: [2]uint32{3, 4}, size: [2]uint32{5, 6}}
	var tests = []struct {
		fn   func(kibt.ArgSource, drawEnv) kibt.Value
		want kibt.Value
	}{
		{UVX[drawEnv], kibt.Float(1)},
		{UVY[drawEnv], kibt.Float(2)},
		{PxX[drawEnv], kibt.Int(3)},
		{PxY[drawEnv], kibt.Int(4)},
		{Width[drawEnv], kibt.Int(5)},
		{Height[drawEnv], kibt.Int(6)},
	}
	for i, test := range tests {
		if got := test.fn(args(), e); got != test.want {
			t.Errorf("accessor #%d: expected %v, got %v", i, test.want, got)
		}
	}
}

func TestTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kibt.library")
	defer teardown()
	//
	standalone := StandaloneTable[*Console]()
	want := []string{"int", "flt", "list", "cmp", "not", "neg", "eq", "add", "sub", "mul", "div", "pi", "print"}
	if diff := cmp.Diff(want, standalone.Names()); diff != "" {
		t.Errorf("standalone table mismatch (-want +got):\n%s", diff)
	}
	draw := DrawTable[drawEnv]()
	want = append(want[:12], "uv_x", "uv_y", "px_x", "px_y", "width", "height")
	if diff := cmp.Diff(want, draw.Names()); diff != "" {
		t.Errorf("draw table mismatch (-want +got):\n%s", diff)
	}
	if BaseTable[baseEnv]().Len() != 12 {
		t.Errorf("expected 12 base natives")
	}
	if standalone.Signature() == draw.Signature() {
		t.Errorf("signatures of different tables should differ")
	}
	if draw.Signature() != DrawTable[drawEnv]().Signature() {
		t.Errorf("signature should be stable")
	}
}

func TestStandaloneProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kibt.library")
	defer teardown()
	//
	lib := StandaloneTable[*Console]()
	src := `{
		let x (add 1 2)
		(print x (list x 2.5) (div x 0))
		(mul (flt x) (pi))
	}`
	code, err := compiler.Compile(src, lib)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	v, err := vm.New(code, lib, &Console{Out: &buf}).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("3\n[ 3 2.5 ]\nnone\n", buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if v != kibt.Float(3*float32(math.Pi)) {
		t.Errorf("expected 3π, got %v", v)
	}
}

func TestDrawProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kibt.library")
	defer teardown()
	//
	lib := DrawTable[drawEnv]()
	e := drawEnv{uv: [2]float32{0.5, 0.25}, px: [2]uint32{2, 1}, size: [2]uint32{4, 4}}
	src := "(list uv_x (uv_y) (add (px_x) (mul (px_y) (width))) (cmp (px_x) (height)))"
	code, err := compiler.Compile(src, lib)
	if err != nil {
		t.Fatal(err)
	}
	v, err := vm.New(code, lib, e).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := kibt.List{kibt.NativeRef(12), kibt.Float(0.25), kibt.Int(6), kibt.Int(1)}
	if diff := cmp.Diff(kibt.Value(want), v); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}
