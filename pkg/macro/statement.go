package macro

import (
	"fmt"
	"strings"

	"github.com/yaklabco/markconv/pkg/translate"
)

// statement is one parsed macro line.
type statement struct {
	keyword string
	args    []field
	raw     string
	offset  int
	indent  string
}

func (e *expansion) arity(stmt statement, format string, args ...any) error {
	return translate.Malformed(e.doc, stmt.offset, stmt.keyword, format, args...)
}

func (e *expansion) statement(stmt statement) error {
	switch stmt.keyword {
	case kwPoint:
		return e.point(stmt)
	case kwSeg:
		return e.seg(stmt)
	case kwRay:
		return e.ray(stmt)
	case kwPoly:
		return e.poly(stmt)
	case kwCircle:
		return e.circle(stmt)
	case kwCirc:
		return e.circ(stmt)
	case kwFill:
		return e.fill(stmt)
	case kwDot:
		return e.dot(stmt)
	case kwLabel:
		return e.label(stmt)
	case kwUnitsize:
		return e.unitsize(stmt)
	case kwBegin:
		return e.begin(stmt)
	case kwEnd:
		return e.end(stmt)
	default:
		return fmt.Errorf("macro keyword %q has no handler", stmt.keyword)
	}
}

// draw emits draw(path[, pen]) with the explicit pen or the enclosing pen block.
func (e *expansion) draw(stmt statement, path string, pen []field) {
	penExpr := joinFields(pen)
	if penExpr == "" {
		penExpr = e.currentPen()
	}
	if penExpr == "" {
		e.emit(stmt.indent + "draw(" + path + ");")
		return
	}
	e.emit(stmt.indent + "draw(" + path + ", " + penExpr + ");")
}

func (e *expansion) point(stmt statement) error {
	name, expr, found := strings.Cut(stmt.raw, "=")
	name = strings.TrimSpace(name)
	expr = strings.TrimSpace(expr)
	if !found || expr == "" {
		return e.arity(stmt, "point expects NAME = (x, y)")
	}
	if !isIdentifier(name) {
		return e.arity(stmt, "point name %q is not an identifier", name)
	}

	e.points[name] = true
	e.emit(stmt.indent + "pair " + name + " = " + expr + ";")
	return nil
}

func (e *expansion) seg(stmt statement) error {
	if len(stmt.args) < 2 {
		return e.arity(stmt, "seg expects 2 points, got %d", len(stmt.args))
	}
	a, b := stmt.args[0].text, stmt.args[1].text
	e.draw(stmt, a+"--"+b, stmt.args[2:])
	return nil
}

func (e *expansion) ray(stmt statement) error {
	if len(stmt.args) < 2 {
		return e.arity(stmt, "ray expects 2 points, got %d", len(stmt.args))
	}
	a, b := stmt.args[0].text, stmt.args[1].text
	e.draw(stmt, a+"--("+a+"+10*("+b+"-"+a+"))", stmt.args[2:])
	return nil
}

// isPoint reports whether a field names a point: a declared name or a pair literal.
func (e *expansion) isPoint(f field) bool {
	return e.points[f.text] || isPairLiteral(f.text)
}

// splitPoints separates leading point references from the trailing pen.
func (e *expansion) splitPoints(args []field) ([]string, []field) {
	count := 0
	for count < len(args) && e.isPoint(args[count]) {
		count++
	}
	return texts(args[:count]), args[count:]
}

func (e *expansion) poly(stmt statement) error {
	points, pen := e.splitPoints(stmt.args)
	if len(points) < 3 {
		return e.arity(stmt, "poly expects at least 3 declared points, got %d", len(points))
	}
	e.draw(stmt, strings.Join(points, "--")+"--cycle", pen)
	return nil
}

func (e *expansion) circle(stmt statement) error {
	if len(stmt.args) < 2 {
		return e.arity(stmt, "circle expects a center and a radius, got %d argument(s)", len(stmt.args))
	}
	e.draw(stmt, "circle("+stmt.args[0].text+", "+stmt.args[1].text+")", stmt.args[2:])
	return nil
}

func (e *expansion) circ(stmt statement) error {
	if len(stmt.args) < 3 {
		return e.arity(stmt, "circ expects 3 points, got %d", len(stmt.args))
	}
	e.geometry = true
	points := texts(stmt.args[:3])
	e.draw(stmt, "circumcircle("+strings.Join(points, ", ")+")", stmt.args[3:])
	return nil
}

func (e *expansion) fill(stmt statement) error {
	points, color := e.splitPoints(stmt.args)
	if len(points) < 3 {
		return e.arity(stmt, "fill expects at least 3 declared points, got %d", len(points))
	}
	if len(color) == 0 {
		return e.arity(stmt, "fill expects a color after the points")
	}
	e.emit(stmt.indent + "fill(" + strings.Join(points, "--") + "--cycle, " + joinFields(color) + ");")
	return nil
}

func (e *expansion) dot(stmt statement) error {
	if len(stmt.args) == 0 {
		return e.arity(stmt, "dot expects at least 1 point")
	}
	calls := make([]string, len(stmt.args))
	for idx, arg := range stmt.args {
		calls[idx] = "dot(" + arg.text + ", dp);"
	}
	e.emit(stmt.indent + strings.Join(calls, " "))
	return nil
}

func (e *expansion) label(stmt statement) error {
	if len(stmt.args) < 2 || !strings.HasPrefix(stmt.args[1].text, `"`) {
		return e.arity(stmt, `label expects a point and a "quoted" text`)
	}
	if len(stmt.args) > 3 {
		return translate.Malformed(e.doc, stmt.args[3].offset, stmt.keyword,
			"label takes at most a point, a text and a direction")
	}

	dir := "NE"
	if len(stmt.args) == 3 {
		dir = stmt.args[2].text
	}
	e.emit(stmt.indent + "label(" + stmt.args[1].text + ", " + stmt.args[0].text + ", " + dir + " * lsf);")
	return nil
}

func (e *expansion) unitsize(stmt statement) error {
	if len(stmt.args) == 0 {
		return e.arity(stmt, "unitsize expects a length")
	}
	e.emit(stmt.indent + "unitsize(" + joinFields(stmt.args) + ");")
	return nil
}

func (e *expansion) begin(stmt statement) error {
	if len(stmt.args) == 0 {
		return e.arity(stmt, "begin expects a block kind: pen, clip or group")
	}

	kind, rest := stmt.args[0].text, stmt.args[1:]
	switch kind {
	case "pen":
		if len(rest) == 0 {
			return e.arity(stmt, "begin pen expects a pen expression")
		}
		e.stack = append(e.stack, block{kind: blockPen, pen: joinFields(rest), offset: stmt.offset})
	case "clip":
		if len(rest) < 3 {
			return e.arity(stmt, "begin clip expects at least 3 points, got %d", len(rest))
		}
		e.stack = append(e.stack, block{kind: blockClip, points: texts(rest), offset: stmt.offset})
	case "group":
		e.stack = append(e.stack, block{kind: blockGroup, offset: stmt.offset})
		if name := joinFields(rest); name != "" {
			e.emit(stmt.indent + "{ // " + name)
		} else {
			e.emit(stmt.indent + "{")
		}
	default:
		return translate.Malformed(e.doc, stmt.args[0].offset, stmt.keyword,
			"unknown block kind %q, want pen, clip or group", kind)
	}
	return nil
}

func (e *expansion) end(stmt statement) error {
	if len(stmt.args) > 0 {
		return e.arity(stmt, "end takes no arguments")
	}
	if len(e.stack) == 0 {
		return translate.Malformed(e.doc, stmt.offset, stmt.keyword, "end without matching begin")
	}

	open := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]

	switch open.kind {
	case blockClip:
		e.emit(stmt.indent + "clip(" + strings.Join(open.points, "--") + "--cycle);")
	case blockGroup:
		e.emit(stmt.indent + "}")
	case blockPen:
	}
	return nil
}
