package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/motionfield/tilt"
)

type tiltOptions struct {
	x, y          float64
	left, top     float64
	width, height float64
	preset        string
	leave         bool
}

func newTiltCmd(a *app) *cobra.Command {
	opts := tiltOptions{}
	cmd := &cobra.Command{
		Use:   "tilt",
		Short: "Print the hover transform of an element for a pointer position",
		Long: `Evaluates the hover tilt of an element: the element turns toward the
pointer by up to the preset's max tilt at its edges and scales up slightly.
With --leave the resting transform is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, err := resolvePreset(opts.preset, a)
			if err != nil {
				return err
			}
			tf := tiltTransform(opts, preset)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "rotateX=%.4f rotateY=%.4f scale=%g\ntransform: %s\n",
				tf.RotateX, tf.RotateY, tf.Scale, tf.CSS())
			return err
		},
	}
	f := cmd.Flags()
	f.Float64Var(&opts.x, "x", 0, "pointer x")
	f.Float64Var(&opts.y, "y", 0, "pointer y")
	f.Float64Var(&opts.left, "left", 0, "element left")
	f.Float64Var(&opts.top, "top", 0, "element top")
	f.Float64Var(&opts.width, "width", 400, "element width")
	f.Float64Var(&opts.height, "height", 300, "element height")
	f.StringVar(&opts.preset, "preset", "card", "card, section or config")
	f.BoolVar(&opts.leave, "leave", false, "apply a leave event after the move")
	return cmd
}

func resolvePreset(name string, a *app) (tilt.Preset, error) {
	switch name {
	case "card":
		return tilt.Card, nil
	case "section":
		return tilt.Section, nil
	case "config":
		return a.cfg.TiltPreset(), nil
	}
	return tilt.Preset{}, fmt.Errorf("unknown preset %q", name)
}

func tiltTransform(opts tiltOptions, preset tilt.Preset) tilt.Transform {
	tr := tilt.NewTracker(tilt.Rect{Left: opts.left, Top: opts.top, Width: opts.width, Height: opts.height}, preset)
	tr.Enter()
	tf := tr.Move(opts.x, opts.y)
	if opts.leave {
		tf = tr.Leave()
	}
	return tf
}
