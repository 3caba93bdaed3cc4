package dispatchers

import "strings"

const (
	usageOptionalOpen  = "["
	usageOptionalClose = "]"
	usageRequiredOpen  = "("
	usageRequiredClose = ")"
	usageOr            = "|"
)

// UsageLine pairs a child node with its condensed usage.
type UsageLine[S comparable] struct {
	Node  *Node[S]
	Usage string
}

// AllUsage lists every executable path below node, one per line. Redirects
// are shown as "-> target", or "..." when they lead back to the root. With
// restricted set, nodes the source cannot use are left out.
func (d *Dispatcher[S]) AllUsage(node *Node[S], source S, restricted bool) []string {
	var result []string
	d.allUsage(node, source, &result, "", restricted)
	return result
}

func (d *Dispatcher[S]) allUsage(node *Node[S], source S, result *[]string, prefix string, restricted bool) {
	if restricted && !node.CanUse(source) {
		return
	}
	if node.Command() != nil {
		*result = append(*result, prefix)
	}

	if node.Redirect() != nil {
		redirect := d.redirectUsage(node)
		if prefix == "" {
			*result = append(*result, node.UsageText()+string(ArgumentSeparator)+redirect)
		} else {
			*result = append(*result, prefix+string(ArgumentSeparator)+redirect)
		}
		return
	}

	for _, child := range node.Children() {
		next := child.UsageText()
		if prefix != "" {
			next = prefix + string(ArgumentSeparator) + next
		}
		d.allUsage(child, source, result, next, restricted)
	}
}

// SmartUsage condenses each usable child of node into one line, marking
// optional parts with [] and alternatives with (a|b).
func (d *Dispatcher[S]) SmartUsage(node *Node[S], source S) []UsageLine[S] {
	var result []UsageLine[S]
	optional := node.Command() != nil
	for _, child := range node.Children() {
		if u, ok := d.smartUsage(child, source, optional, false); ok {
			result = append(result, UsageLine[S]{Node: child, Usage: u})
		}
	}
	return result
}

func (d *Dispatcher[S]) smartUsage(node *Node[S], source S, optional, deep bool) (string, bool) {
	if !node.CanUse(source) {
		return "", false
	}

	self := node.UsageText()
	if optional {
		self = usageOptionalOpen + self + usageOptionalClose
	}
	if deep {
		return self, true
	}

	if node.Redirect() != nil {
		return self + string(ArgumentSeparator) + d.redirectUsage(node), true
	}

	childOptional := node.Command() != nil
	opening, closing := usageRequiredOpen, usageRequiredClose
	if childOptional {
		opening, closing = usageOptionalOpen, usageOptionalClose
	}

	var children []*Node[S]
	for _, child := range node.Children() {
		if child.CanUse(source) {
			children = append(children, child)
		}
	}

	switch {
	case len(children) == 1:
		if u, ok := d.smartUsage(children[0], source, childOptional, childOptional); ok {
			return self + string(ArgumentSeparator) + u, true
		}
	case len(children) > 1:
		var distinct []string
		seen := make(map[string]bool)
		for _, child := range children {
			if u, ok := d.smartUsage(child, source, childOptional, true); ok && !seen[u] {
				seen[u] = true
				distinct = append(distinct, u)
			}
		}
		if len(distinct) == 1 {
			u := distinct[0]
			if childOptional {
				u = usageOptionalOpen + u + usageOptionalClose
			}
			return self + string(ArgumentSeparator) + u, true
		}
		if len(distinct) > 1 {
			texts := make([]string, len(children))
			for i, child := range children {
				texts[i] = child.UsageText()
			}
			return self + string(ArgumentSeparator) + opening + strings.Join(texts, usageOr) + closing, true
		}
	}
	return self, true
}

func (d *Dispatcher[S]) redirectUsage(node *Node[S]) string {
	if node.Redirect() == d.root {
		return "..."
	}
	return "-> " + node.Redirect().UsageText()
}
