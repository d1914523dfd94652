package formjson

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FormElement is a <form> located within a [Document].
type FormElement struct {
	doc  *Document
	node *html.Node
}

// Node returns the underlying <form> node.
func (f *FormElement) Node() *html.Node {
	return f.node
}

// Controls returns the value-bearing controls owned by the form, in tree
// order. A control is owned by the form named by its form attribute, or
// failing that by its nearest ancestor form. Disabled controls are included.
func (f *FormElement) Controls() []Control {
	ids := formIDs(f.doc.root)

	var controls []Control
	walk(f.doc.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || !isListed(n) {
			return true
		}
		if formOwner(n, ids) != f.node {
			return true
		}
		if c, ok := newControl(n); ok {
			controls = append(controls, c)
		}
		return true
	})
	return controls
}

// formIDs maps each id to the first element carrying it.
func formIDs(root *html.Node) map[string]*html.Node {
	ids := make(map[string]*html.Node)
	walk(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		if id, ok := attr(n, "id"); ok && id != "" {
			if _, seen := ids[id]; !seen {
				ids[id] = n
			}
		}
		return true
	})
	return ids
}

func formOwner(n *html.Node, ids map[string]*html.Node) *html.Node {
	if id, ok := attr(n, "form"); ok {
		if owner := ids[id]; owner != nil && owner.DataAtom == atom.Form {
			return owner
		}
		return nil
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == atom.Form {
			return p
		}
	}
	return nil
}

func isListed(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Button, atom.Fieldset, atom.Object, atom.Output, atom.Select, atom.Textarea:
		return true
	case atom.Input:
		return inputType(n) != "image"
	}
	return false
}

// newControl builds the control for a listed element. Fieldsets and objects
// carry no value and are reported as not ok.
func newControl(n *html.Node) (Control, bool) {
	name, _ := attr(n, "name")
	switch n.DataAtom {
	case atom.Input:
		return TextControl{Name: name, Value: inputValue(n)}, true
	case atom.Textarea:
		return TextControl{Name: name, Value: textContent(n)}, true
	case atom.Output:
		return TextControl{Name: name, Value: textContent(n)}, true
	case atom.Button:
		v, _ := attr(n, "value")
		return TextControl{Name: name, Value: v}, true
	case atom.Select:
		return newSelect(n, name), true
	}
	return nil, false
}

func inputType(n *html.Node) string {
	t, ok := attr(n, "type")
	if !ok {
		return "text"
	}
	return strings.ToLower(strings.TrimSpace(t))
}

var (
	floatPattern = regexp.MustCompile(`^-?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?$`)
	colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	newlines     = strings.NewReplacer("\r", "", "\n", "")
)

// inputValue applies the value sanitization a browser performs for the
// input's type.
func inputValue(n *html.Node) string {
	v, has := attr(n, "value")
	switch inputType(n) {
	case "checkbox", "radio":
		if !has {
			return "on"
		}
		return v
	case "file":
		return ""
	case "hidden", "submit", "reset", "button":
		return v
	case "email", "url":
		return strings.TrimFunc(newlines.Replace(v), isASCIISpace)
	case "number":
		if !floatPattern.MatchString(v) {
			return ""
		}
		return v
	case "range":
		return rangeValue(n, v)
	case "color":
		if !colorPattern.MatchString(v) {
			return "#000000"
		}
		return strings.ToLower(v)
	default:
		return newlines.Replace(v)
	}
}

func rangeValue(n *html.Node, v string) string {
	lo := floatAttr(n, "min", 0)
	hi := floatAttr(n, "max", 100)
	if hi < lo {
		hi = lo
	}

	f := lo + (hi-lo)/2
	if floatPattern.MatchString(v) {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			f = math.Max(lo, math.Min(hi, parsed))
		}
	}

	if step, ok := attr(n, "step"); !ok || !strings.EqualFold(strings.TrimSpace(step), "any") {
		s := floatAttr(n, "step", 1)
		prec := 0
		if s <= 0 {
			s = 1
		} else if ok {
			prec = decimals(step)
		}
		if m, ok := attr(n, "min"); ok && floatPattern.MatchString(strings.TrimSpace(m)) {
			prec = max(prec, decimals(m))
		}
		f = lo + math.Round((f-lo)/s)*s
		if f > hi {
			f -= s
		}
		// Round away the binary noise of fractional steps, then drop
		// trailing zeros.
		f, _ = strconv.ParseFloat(strconv.FormatFloat(f, 'f', prec, 64), 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// decimals returns the number of fractional digits a decimal number such as
// "0.25" or "5e-2" carries.
func decimals(s string) int {
	mantissa, exp, _ := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "e")
	d := 0
	if _, frac, ok := strings.Cut(mantissa, "."); ok {
		d = len(frac)
	}
	if exp != "" {
		if e, err := strconv.Atoi(exp); err == nil {
			d -= e
		}
	}
	return max(d, 0)
}

func floatAttr(n *html.Node, key string, def float64) float64 {
	v, ok := attr(n, key)
	if !ok || !floatPattern.MatchString(strings.TrimSpace(v)) {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

func newSelect(n *html.Node, name string) SelectControl {
	s := SelectControl{Name: name, Multiple: hasAttr(n, "multiple")}

	last := -1
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Option:
			s.Options = append(s.Options, newOption(c, false))
		case atom.Optgroup:
			groupDisabled := hasAttr(c, "disabled")
			for o := c.FirstChild; o != nil; o = o.NextSibling {
				if o.Type == html.ElementNode && o.DataAtom == atom.Option {
					s.Options = append(s.Options, newOption(o, groupDisabled))
				}
			}
		}
	}
	if s.Multiple {
		return s
	}

	// A single select keeps only its last selected option, and falls back to
	// the first enabled option when it renders as a drop-down.
	for i, o := range s.Options {
		if o.Selected {
			if last >= 0 {
				s.Options[last].Selected = false
			}
			last = i
		}
	}
	if last == -1 && displaySize(n) == 1 {
		for i := range s.Options {
			if !s.Options[i].Disabled {
				s.Options[i].Selected = true
				break
			}
		}
	}
	return s
}

func newOption(n *html.Node, groupDisabled bool) Option {
	text := collapseSpace(textContent(n))

	o := Option{
		Value:    text,
		Label:    text,
		Selected: hasAttr(n, "selected"),
		Disabled: groupDisabled || hasAttr(n, "disabled"),
	}
	if v, ok := attr(n, "value"); ok {
		o.Value = v
	}
	if l, ok := attr(n, "label"); ok && l != "" {
		o.Label = l
	}
	return o
}

// displaySize returns the rendered row count of a single select.
func displaySize(n *html.Node) int {
	v, ok := attr(n, "size")
	if !ok {
		return 1
	}
	size, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || size <= 0 {
		return 1
	}
	return size
}
