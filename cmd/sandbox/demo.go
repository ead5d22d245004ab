package main

import (
	"github.com/javelinengine/javelin/pkg/log"
	"github.com/javelinengine/javelin/pkg/math3d"
)

func runDemo() {
	log.Trace("This is a trace log")
	log.Debug("This is a debug log")
	log.Info("This is a info log")
	log.Warn("This is a warn log")
	log.Error("This is a error log")
	log.Critical("This is a critical log")

	a := math3d.V2(1, 2)
	log.Info("Vec2 a: ({}, {})", a.X, a.Y)
	b := math3d.V2(3, 4)
	log.Info("Vec2 b: ({}, {})", b.X, b.Y)
	c := a.Add(b)
	log.Info("Vec2 c = a + b: ({}, {})", c.X, c.Y)

	u := math3d.V3(1, 0, 0)
	log.Info("Vec3 u: ({}, {}, {})", u.X, u.Y, u.Z)
	v := math3d.V3(0, 1, 0)
	log.Info("Vec3 v: ({}, {}, {})", v.X, v.Y, v.Z)
	w := math3d.Cross(u, v)
	log.Info("Vec3 w = cross(u, v): ({}, {}, {})", w.X, w.Y, w.Z)

	q := math3d.QuatIdentity()
	log.Info("Quat q (identity): ({}, {}, {}, {})", q.X, q.Y, q.Z, q.W)
	rotated := math3d.Rotate(q, v)
	log.Info("Rotated v by q: ({}, {}, {})", rotated.X, rotated.Y, rotated.Z)
}
