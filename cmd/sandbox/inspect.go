package main

import (
	"github.com/spf13/cobra"

	"github.com/javelinengine/javelin/pkg/log"
	"github.com/javelinengine/javelin/pkg/scene"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <model.gltf|model.glb>",
		Short: "Load a glTF file and log node world transforms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0])
		},
	}
}

func runInspect(path string) error {
	s, err := scene.Load(path)
	if err != nil {
		return err
	}
	log.Info("scene {}: {} nodes, {} roots", s.Name, len(s.Nodes), len(s.Roots))

	for i := range s.Nodes {
		n := &s.Nodes[i]
		name := n.Name
		if name == "" {
			name = "(unnamed)"
		}
		log.Info("node {} {}: parent {} position {} rotation {}",
			n.Index, name, n.Parent, n.WorldPosition(), n.WorldRotation())
		if b, ok := n.WorldBounds(); ok {
			log.Debug("node {} bounds min {} max {}", n.Index, b.Min, b.Max)
		}
	}

	if b, ok := s.Bounds(); ok {
		log.Info("scene bounds: center {} size {}", b.Center(), b.Size())
	} else {
		log.Warn("scene {} has no mesh bounds", s.Name)
	}
	return nil
}
