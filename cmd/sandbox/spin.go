package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/spf13/cobra"

	"github.com/javelinengine/javelin/pkg/log"
	"github.com/javelinengine/javelin/pkg/math3d"
)

type spinOptions struct {
	FPS      int
	Frames   int
	Target   float64 // degrees
	Axis     math3d.Vec3
	Vector   math3d.Vec3
	Realtime bool
}

func newSpinCmd() *cobra.Command {
	var (
		opts         spinOptions
		axis, vector string
	)
	cmd := &cobra.Command{
		Use:   "spin",
		Short: "Spring-animate a rotation and log the rotated vector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if opts.Axis, err = parseVec3(axis); err != nil {
				return fmt.Errorf("--axis: %w", err)
			}
			if opts.Vector, err = parseVec3(vector); err != nil {
				return fmt.Errorf("--vector: %w", err)
			}
			_, err = runSpin(cmd.Context(), opts)
			return err
		},
	}
	cmd.Flags().IntVar(&opts.FPS, "fps", 60, "Simulation frames per second")
	cmd.Flags().IntVar(&opts.Frames, "frames", 120, "Number of frames to simulate")
	cmd.Flags().Float64Var(&opts.Target, "target", 90, "Target angle in degrees")
	cmd.Flags().StringVar(&axis, "axis", "0,1,0", "Rotation axis as x,y,z")
	cmd.Flags().StringVar(&vector, "vector", "1,0,0", "Vector to rotate as x,y,z")
	cmd.Flags().BoolVar(&opts.Realtime, "realtime", false, "Sleep between frames")
	return cmd
}

// runSpin drives the angle toward the target with a critically damped spring
// and returns the vector rotated by the final angle.
func runSpin(ctx context.Context, opts spinOptions) (math3d.Vec3, error) {
	if opts.FPS <= 0 {
		return math3d.Vec3{}, fmt.Errorf("fps must be positive, got %d", opts.FPS)
	}
	if _, ok := opts.Axis.TryNormalize(); !ok {
		return math3d.Vec3{}, fmt.Errorf("axis %v has no direction", opts.Axis)
	}

	// Frequency 4.0 = moderate speed, damping 1.0 = critically damped.
	spring := harmonica.NewSpring(harmonica.FPS(opts.FPS), 4.0, 1.0)
	target := float64(math3d.Radians(float32(opts.Target)))

	var ticker *time.Ticker
	if opts.Realtime {
		ticker = time.NewTicker(time.Second / time.Duration(opts.FPS))
		defer ticker.Stop()
	}

	var angle, velocity float64
	out := opts.Vector
	for frame := range opts.Frames {
		angle, velocity = spring.Update(angle, velocity, target)

		q := math3d.QuatFromAxisAngle(opts.Axis, float32(angle))
		out = math3d.Rotate(q, opts.Vector)
		log.Info("frame {}: angle {:.2f} deg, v = {} |v| = {:.4f}",
			frame, math3d.Degrees(float32(angle)), out, out.Len())

		if ticker == nil {
			if err := ctx.Err(); err != nil {
				return out, err
			}
			continue
		}
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		case <-ticker.C:
		}
	}
	log.Debug("spin settled at {:.3f} deg (target {})", math3d.Degrees(float32(angle)), opts.Target)
	return out, nil
}

func parseVec3(s string) (math3d.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math3d.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = float32(f)
	}
	return math3d.V3(v[0], v[1], v[2]), nil
}
