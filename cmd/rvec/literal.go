package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/chazu/rvec/coerce"
	"github.com/chazu/rvec/vec"
)

// literal is a vector written in TOML:
//
//	kind = "integer"
//	values = [1, 2, "NA"]
//	class = ["factor"]
//
// Lists use [[elems]] tables holding nested literals.
type literal struct {
	Kind   string    `toml:"kind"`
	Values []any     `toml:"values"`
	Class  []string  `toml:"class"`
	Elems  []literal `toml:"elems"`
}

// ParseLiteral decodes a TOML vector literal.
func ParseLiteral(data []byte) (*vec.Vector, error) {
	var lit literal
	if err := toml.Unmarshal(data, &lit); err != nil {
		return nil, err
	}
	return lit.build()
}

func (lit literal) build() (*vec.Vector, error) {
	kind, err := vec.ParseKind(lit.Kind)
	if err != nil {
		return nil, err
	}

	if kind == vec.KindList {
		elems := make([]vec.Value, len(lit.Elems))
		for i, e := range lit.Elems {
			v, err := e.build()
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i+1, err)
			}
			elems[i] = v
		}
		return vec.NewList(elems...).SetClass(lit.Class...), nil
	}

	src := sourceVector(lit.Values)
	out, err := coerce.Table()[kind](src)
	if err != nil {
		return nil, err
	}
	return out.(*vec.Vector).SetClass(lit.Class...), nil
}

// sourceVector picks the narrowest kind holding every TOML value; the host
// coercers then convert it to the requested kind. Bools mixed with numbers
// count as 0 and 1.
func sourceVector(values []any) *vec.Vector {
	allBool, allInt, allNum := true, true, true
	for _, x := range values {
		switch x := x.(type) {
		case bool:
		case int64:
			allBool = false
			if x < -math.MaxInt32 || x > math.MaxInt32 {
				allInt = false
			}
		case float64:
			allBool, allInt = false, false
		default:
			allBool, allInt, allNum = false, false, false
		}
	}

	switch {
	case allBool:
		bs := make([]bool, len(values))
		for i, x := range values {
			bs[i] = x.(bool)
		}
		return vec.NewBool(bs...)
	case allInt:
		xs := make([]int32, len(values))
		for i, x := range values {
			xs[i] = int32(number(x))
		}
		return vec.NewInteger(xs...)
	case allNum:
		xs := make([]float64, len(values))
		for i, x := range values {
			xs[i] = number(x)
		}
		return vec.NewDouble(xs...)
	}

	ss := make([]string, len(values))
	for i, x := range values {
		switch x := x.(type) {
		case string:
			if x == "NA" {
				ss[i] = vec.NACharacter
			} else {
				ss[i] = x
			}
		case bool:
			ss[i] = strings.ToUpper(strconv.FormatBool(x))
		default:
			ss[i] = fmt.Sprint(x)
		}
	}
	return vec.NewCharacter(ss...)
}

func number(x any) float64 {
	switch x := x.(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case int64:
		return float64(x)
	case float64:
		return x
	}
	return math.NaN()
}

// Format renders a vector for the terminal.
func Format(v *vec.Vector) string {
	var b strings.Builder
	b.WriteString(v.String())

	if v.Kind() == vec.KindList {
		for i, e := range v.Elems() {
			ev, ok := e.(*vec.Vector)
			if !ok {
				fmt.Fprintf(&b, "\n[[%d]] %v", i+1, e)
				continue
			}
			fmt.Fprintf(&b, "\n[[%d]] %s", i+1, strings.ReplaceAll(Format(ev), "\n", "\n  "))
		}
		return b.String()
	}

	chr, err := coerce.AsCharacter(v.Clone().SetClass())
	if err != nil {
		return b.String()
	}
	strs := chr.(*vec.Vector).Strings()
	parts := make([]string, len(strs))
	for i, s := range strs {
		switch {
		case s == vec.NACharacter:
			parts[i] = "NA"
		case v.Kind() == vec.KindCharacter:
			parts[i] = strconv.Quote(s)
		default:
			parts[i] = s
		}
	}
	if len(parts) > 0 {
		b.WriteString("\n ")
		b.WriteString(strings.Join(parts, " "))
	}
	return b.String()
}
