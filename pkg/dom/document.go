package dom

import (
	"slices"
	"strings"
)

// Document owns a live node tree, its node index and its event router.
type Document struct {
	body      *Node
	nextID    uint64
	nodes     map[uint64]*Node
	observers []observer
	nextObs   int
	router    *Router
}

// NewDocument creates a document with an empty body element.
func NewDocument() *Document {
	d := &Document{
		nodes: make(map[uint64]*Node),
	}
	d.body = d.newNode(ElementNode, "body", "")
	d.nodes[d.body.id] = d.body
	d.router = newRouter(d)
	return d
}

// Body returns the document's root element.
func (d *Document) Body() *Node { return d.body }

// Router returns the document's single event router.
func (d *Document) Router() *Router { return d.router }

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) *Node {
	n := d.newNode(ElementNode, strings.ToLower(tag), "")
	d.emit(Mutation{Op: OpCreate, Target: n.id, Key: n.tag, Node: n})
	return n
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(value string) *Node {
	n := d.newNode(TextNode, "", value)
	d.emit(Mutation{Op: OpCreate, Target: n.id, Key: "#text", Value: value, Node: n})
	return n
}

func (d *Document) newNode(typ NodeType, tag, text string) *Node {
	d.nextID++
	return &Node{id: d.nextID, doc: d, typ: typ, tag: tag, text: text}
}

// NodeByID returns an attached node by identifier.
func (d *Document) NodeByID(id uint64) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// NodeCount returns the number of attached nodes, including the body.
func (d *Document) NodeCount() int { return len(d.nodes) }

// Observe registers fn to receive every mutation. The returned function
// cancels the registration.
func (d *Document) Observe(fn func(Mutation)) (cancel func()) {
	id := d.nextObs
	d.nextObs++
	d.observers = append(d.observers, observer{id: id, fn: fn})
	return func() {
		d.observers = slices.DeleteFunc(d.observers, func(o observer) bool { return o.id == id })
	}
}

type observer struct {
	id int
	fn func(Mutation)
}

func (d *Document) emit(m Mutation) {
	for _, o := range d.observers {
		o.fn(m)
	}
}

// register indexes n and its subtree.
func (d *Document) register(n *Node) {
	d.nodes[n.id] = n
	for _, c := range n.children {
		d.register(c)
	}
}

// unregister drops n and its subtree from the index.
func (d *Document) unregister(n *Node) {
	delete(d.nodes, n.id)
	for _, c := range n.children {
		d.unregister(c)
	}
}
