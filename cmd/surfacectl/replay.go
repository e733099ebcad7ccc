package main

import (
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/surface"
	"github.com/go-theft-auto/surface/scene"
)

// ReplayResult is the output of the replay command.
type ReplayResult struct {
	OK        bool               `yaml:"ok" json:"ok"`
	Scene     string             `yaml:"scene" json:"scene"`
	Steps     int                `yaml:"steps" json:"steps"`
	Completed int                `yaml:"completed" json:"completed"`
	Error     string             `yaml:"error,omitempty" json:"error,omitempty"`
	Results   []scene.StepResult `yaml:"results" json:"results"`
}

var replayCmd = &cobra.Command{
	Use:   "replay SCENE SCRIPT",
	Short: "Play an input script against a scene",
	Long: `Play a YAML list of steps against a scene on a virtual clock and
print the widget callbacks each step produced.

Steps are event kinds with their fields, plus the directives wait, frame,
focus, destroy and reset. Execution stops at the first failing step.

Example:
  surfacectl replay doc/scenes/form.yaml - <<'EOF'
  - {op: pointer-down, x: 20, y: 20}
  - {op: pointer-up, x: 20, y: 20}
  - {op: wait, for: 200ms}
  - {op: key-down, key: tab, mods: [shift]}
  - {op: frame}
  EOF`,
	Args: cobra.ExactArgs(2),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().String("snapshot", "", "Write a PNG of the final scene to this path")
}

func runReplay(cmd *cobra.Command, args []string) error {
	snapshot, _ := cmd.Flags().GetString("snapshot")

	sc, err := loadScene(args[0])
	if err != nil {
		return err
	}
	steps, err := readScript(cmd, args[1])
	if err != nil {
		return err
	}

	host := surface.NewManualHost()
	engine, err := newEngine(sc, host)
	if err != nil {
		return err
	}
	defer engine.Close()

	r := &scene.Runner{Scene: sc, Engine: engine, Host: host}
	results, runErr := r.Run(steps)

	out := ReplayResult{
		OK:        runErr == nil,
		Scene:     args[0],
		Steps:     len(steps),
		Completed: len(results),
		Results:   results,
	}
	if runErr != nil {
		out.Completed--
		out.Error = runErr.Error()
	}
	log.WithFields(logrus.Fields{
		"scene":     args[0],
		"steps":     out.Steps,
		"completed": out.Completed,
	}).Debug("replay finished")

	if snapshot != "" {
		if err := writeSnapshot(snapshot, sc, engine); err != nil {
			return err
		}
	}
	if err := printResult(cmd.OutOrStdout(), out); err != nil {
		return err
	}
	return runErr
}

// readScript reads steps from path, or from stdin when path is "-".
func readScript(cmd *cobra.Command, path string) ([]scene.Step, error) {
	if path != "-" {
		return scene.LoadScript(path)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return scene.ParseScript(data)
}

func writeSnapshot(path string, sc *scene.Scene, e *surface.Engine) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, sc.Snapshot(e.Focused())); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
