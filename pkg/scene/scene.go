// Package scene reads the node hierarchy of glTF files into math3d
// transforms.
package scene

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/javelinengine/javelin/pkg/math3d"
)

// ErrCycle is returned when a node is reachable from itself.
var ErrCycle = errors.New("scene: node hierarchy contains a cycle")

// Scene is a flattened glTF node hierarchy.
type Scene struct {
	Name  string
	Nodes []Node
	Roots []int
}

// Node is one glTF node with its resolved transforms.
type Node struct {
	Index    int
	Name     string
	Parent   int // -1 for roots
	Children []int
	Mesh     int // -1 when the node has no mesh

	Translation math3d.Vec3
	Rotation    math3d.Quat
	Scale       math3d.Vec3

	Local math3d.Mat4
	World math3d.Mat4

	// Bounds is the mesh's local bounding box from the POSITION accessor
	// limits, if the file declares them.
	Bounds *Bounds
}

// Bounds is an axis-aligned box.
type Bounds struct {
	Min, Max math3d.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents.
func (b Bounds) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Corners returns the eight corners.
func (b Bounds) Corners() []math3d.Vec3 {
	out := make([]math3d.Vec3, 0, 8)
	for i := range 8 {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		out = append(out, c)
	}
	return out
}

// Transform returns the box enclosing b after m is applied.
func (b Bounds) Transform(m math3d.Mat4) Bounds {
	pts := math3d.NewVec3Batch(b.Corners()).Transform(m).Vec3s()
	out := Bounds{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() math3d.Vec3 {
	return n.World.Translation()
}

// WorldRotation returns the rotation part of the world transform.
func (n *Node) WorldRotation() math3d.Quat {
	_, r, _ := Decompose(n.World)
	return r
}

// WorldBounds returns the mesh bounds in world space, if known.
func (n *Node) WorldBounds() (Bounds, bool) {
	if n.Bounds == nil {
		return Bounds{}, false
	}
	return n.Bounds.Transform(n.World), true
}

// Load opens a .gltf or .glb file.
func Load(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	s, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return s, nil
}

// FromDocument resolves every node of doc. World transforms are computed
// from the hierarchy; nodes outside any scene are still included.
func FromDocument(doc *gltf.Document) (*Scene, error) {
	s := &Scene{Nodes: make([]Node, len(doc.Nodes))}

	for i, gn := range doc.Nodes {
		n := &s.Nodes[i]
		n.Index = i
		n.Name = gn.Name
		n.Parent = -1
		n.Mesh = -1
		n.Children = append([]int(nil), gn.Children...)
		readTransform(gn, n)

		if gn.Mesh != nil {
			if *gn.Mesh < 0 || *gn.Mesh >= len(doc.Meshes) {
				return nil, fmt.Errorf("node %d: mesh index %d out of range", i, *gn.Mesh)
			}
			n.Mesh = *gn.Mesh
			n.Bounds = meshBounds(doc, doc.Meshes[n.Mesh])
		}
	}

	for i := range s.Nodes {
		for _, c := range s.Nodes[i].Children {
			if c < 0 || c >= len(s.Nodes) {
				return nil, fmt.Errorf("node %d: child index %d out of range", i, c)
			}
			if c == i {
				return nil, fmt.Errorf("%w: node %d", ErrCycle, c)
			}
			if s.Nodes[c].Parent != -1 {
				return nil, fmt.Errorf("node %d: has parents %d and %d", c, s.Nodes[c].Parent, i)
			}
			s.Nodes[c].Parent = i
		}
	}

	for i := range s.Nodes {
		if s.Nodes[i].Parent == -1 {
			s.Roots = append(s.Roots, i)
		}
	}
	if len(s.Nodes) > 0 && len(s.Roots) == 0 {
		return nil, ErrCycle
	}

	resolved := 0
	for _, r := range s.Roots {
		resolved += s.resolve(r, math3d.Identity())
	}
	if resolved != len(s.Nodes) {
		return nil, fmt.Errorf("%w: %d nodes unreachable from roots", ErrCycle, len(s.Nodes)-resolved)
	}

	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		s.Name = doc.Scenes[*doc.Scene].Name
	} else if len(doc.Scenes) > 0 {
		s.Name = doc.Scenes[0].Name
	}
	return s, nil
}

func (s *Scene) resolve(i int, parent math3d.Mat4) int {
	n := &s.Nodes[i]
	n.World = parent.Mul(n.Local)
	count := 1
	for _, c := range n.Children {
		count += s.resolve(c, n.World)
	}
	return count
}

// Find returns the first node with the given name.
func (s *Scene) Find(name string) (*Node, bool) {
	for i := range s.Nodes {
		if s.Nodes[i].Name == name {
			return &s.Nodes[i], true
		}
	}
	return nil, false
}

// Bounds returns the world-space box around every mesh in the scene.
func (s *Scene) Bounds() (Bounds, bool) {
	var out Bounds
	found := false
	for i := range s.Nodes {
		b, ok := s.Nodes[i].WorldBounds()
		if !ok {
			continue
		}
		if !found {
			out, found = b, true
			continue
		}
		out.Min = out.Min.Min(b.Min)
		out.Max = out.Max.Max(b.Max)
	}
	return out, found
}

func readTransform(gn *gltf.Node, n *Node) {
	var m math3d.Mat4
	for i, v := range gn.MatrixOrDefault() {
		m[i] = float32(v)
	}
	if m != math3d.Identity() {
		n.Local = m
		n.Translation, n.Rotation, n.Scale = Decompose(m)
		return
	}

	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault()
	sc := gn.ScaleOrDefault()
	n.Translation = math3d.V3(float32(t[0]), float32(t[1]), float32(t[2]))
	n.Rotation = math3d.Quat{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])}
	n.Scale = math3d.V3(float32(sc[0]), float32(sc[1]), float32(sc[2]))
	n.Local = math3d.TRS(n.Translation, n.Rotation, n.Scale)
}

// Decompose splits an affine matrix without shear into translation,
// rotation and scale. A zero scale axis yields the identity rotation.
func Decompose(m math3d.Mat4) (math3d.Vec3, math3d.Quat, math3d.Vec3) {
	rs := m.Mat3()
	c0, c1, c2 := rs.Col(0), rs.Col(1), rs.Col(2)
	scale := math3d.V3(c0.Len(), c1.Len(), c2.Len())
	if scale.X == 0 || scale.Y == 0 || scale.Z == 0 {
		return m.Translation(), math3d.QuatIdentity(), scale
	}
	if rs.Determinant() < 0 {
		scale.X = -scale.X
	}
	rot := math3d.Mat3FromCols(c0.Scale(1/scale.X), c1.Scale(1/scale.Y), c2.Scale(1/scale.Z))
	return m.Translation(), math3d.QuatFromMat3(rot), scale
}

func meshBounds(doc *gltf.Document, m *gltf.Mesh) *Bounds {
	var out *Bounds
	for _, prim := range m.Primitives {
		idx, ok := prim.Attributes[gltf.POSITION]
		if !ok || idx < 0 || idx >= len(doc.Accessors) {
			continue
		}
		acc := doc.Accessors[idx]
		if len(acc.Min) < 3 || len(acc.Max) < 3 {
			continue
		}
		b := Bounds{
			Min: math3d.V3(float32(acc.Min[0]), float32(acc.Min[1]), float32(acc.Min[2])),
			Max: math3d.V3(float32(acc.Max[0]), float32(acc.Max[1]), float32(acc.Max[2])),
		}
		if out == nil {
			out = &b
			continue
		}
		out.Min = out.Min.Min(b.Min)
		out.Max = out.Max.Max(b.Max)
	}
	return out
}
