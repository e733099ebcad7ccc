package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/go-theft-auto/surface"
)

// HitResult is the output of the hit command.
type HitResult struct {
	X      float32  `yaml:"x" json:"x"`
	Y      float32  `yaml:"y" json:"y"`
	Widget string   `yaml:"widget,omitempty" json:"widget,omitempty"`
	LocalX float32  `yaml:"local_x" json:"local_x"`
	LocalY float32  `yaml:"local_y" json:"local_y"`
	Stack  []string `yaml:"stack,omitempty" json:"stack,omitempty"`
}

var hitCmd = &cobra.Command{
	Use:   "hit SCENE X Y",
	Short: "Show which widget a point resolves to",
	Long: `Resolve a point in a scene the way a pointer press would, and list
every widget under it topmost first.`,
	Args: cobra.ExactArgs(3),
	RunE: runHit,
}

func init() {
	rootCmd.AddCommand(hitCmd)
}

func runHit(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[1], 32)
	if err != nil {
		return fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(args[2], 32)
	if err != nil {
		return fmt.Errorf("y: %w", err)
	}
	p := surface.Vec2{X: float32(x), Y: float32(y)}

	sc, err := loadScene(args[0])
	if err != nil {
		return err
	}
	engine, err := newEngine(sc, surface.NewManualHost())
	if err != nil {
		return err
	}
	defer engine.Close()

	hit := engine.Resolve(p)
	out := HitResult{
		X:      p.X,
		Y:      p.Y,
		Widget: sc.NameOf(hit.Widget),
		LocalX: hit.Local.X,
		LocalY: hit.Local.Y,
	}
	for _, el := range sc.ElementsAt(p) {
		out.Stack = append(out.Stack, sc.NameOf(el.Widget()))
	}
	return printResult(cmd.OutOrStdout(), out)
}
