package scene

// Object is the Graph's Node implementation.
type Object struct {
	style    Style
	scale    float64
	pos      Vec3
	parent   *Object
	children []*Object
	graph    *Graph
	inRoot   bool
}

func (o *Object) Style() Style        { return o.style }
func (o *Object) Scale() float64      { return o.scale }
func (o *Object) Position() Vec3      { return o.pos }
func (o *Object) SetPosition(p Vec3)  { o.pos = p }
func (o *Object) Parent() *Object     { return o.parent }
func (o *Object) Children() []*Object { return o.children }

func (o *Object) WorldPosition() Vec3 {
	p := o.pos
	for cur := o.parent; cur != nil; cur = cur.parent {
		p = p.Add(cur.pos)
	}
	return p
}

// InScene reports whether the object is reachable from the graph root.
func (o *Object) InScene() bool {
	cur := o
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur.inRoot
}

// Graph is a minimal headless scene graph.
type Graph struct {
	root []*Object
}

func NewGraph() *Graph {
	return &Graph{root: make([]*Object, 0, 64)}
}

func (g *Graph) Create(style Style, scale float64) Node {
	if scale <= 0 {
		scale = 1
	}
	return &Object{style: style, scale: scale, graph: g}
}

// Attach adds n to the scene root, detaching it from any previous parent.
func (g *Graph) Attach(n Node) {
	o, ok := n.(*Object)
	if !ok {
		return
	}
	o.unlink()
	o.inRoot = true
	g.root = append(g.root, o)
}

// AttachChild reparents child under parent. The child's position becomes
// relative to the parent.
func (g *Graph) AttachChild(parent, child Node) {
	p, ok := parent.(*Object)
	if !ok {
		return
	}
	c, ok := child.(*Object)
	if !ok || c == p {
		return
	}
	c.unlink()
	c.parent = p
	p.children = append(p.children, c)
}

// Detach removes n (and its subtree) from wherever it hangs. Detaching an
// object that is not in the scene is a no-op.
func (g *Graph) Detach(n Node) {
	o, ok := n.(*Object)
	if !ok {
		return
	}
	o.unlink()
}

func (o *Object) unlink() {
	if o.parent != nil {
		o.parent.children = removeObject(o.parent.children, o)
		o.parent = nil
	}
	if o.inRoot {
		o.graph.root = removeObject(o.graph.root, o)
		o.inRoot = false
	}
}

func removeObject(list []*Object, o *Object) []*Object {
	for i, cur := range list {
		if cur == o {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			return list[:len(list)-1]
		}
	}
	return list
}

// Walk visits every object in the scene, parents before children.
func (g *Graph) Walk(fn func(*Object)) {
	var visit func(o *Object)
	visit = func(o *Object) {
		fn(o)
		for _, c := range o.children {
			visit(c)
		}
	}
	for _, o := range g.root {
		visit(o)
	}
}

// Len returns the number of objects in the scene.
func (g *Graph) Len() int {
	n := 0
	g.Walk(func(*Object) { n++ })
	return n
}
