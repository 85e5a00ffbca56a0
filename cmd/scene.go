package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ziadkadry99/archmap/internal/config"
	"github.com/ziadkadry99/archmap/internal/diagrams"
	"github.com/ziadkadry99/archmap/internal/graph"
	"github.com/ziadkadry99/archmap/internal/interaction"
	"github.com/ziadkadry99/archmap/internal/scene"
	"github.com/ziadkadry99/archmap/internal/site"
)

var (
	sceneSelected string
	sceneHovered  string
	sceneLayout   string
	sceneFormat   string
)

var sceneCmd = &cobra.Command{
	Use:   "scene FILE",
	Short: "Print the scene description of a report file",
	Long: `Builds the render graph of FILE and prints the scene a viewer would draw:
one object per node with its geometry, material, label, glow and selection
ring, plus the styled links. --selected and --hovered set the interaction
state the scene is drawn for. --format mermaid prints a Mermaid flowchart
of the graph instead; markdown and html print the project overview page.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		r, _, err := readReport(args[0])
		if err != nil {
			return err
		}
		g := graph.Build(r)

		cam := &recordingCamera{logger: logger}
		ctl := interaction.New(cam, controllerOptions(cfg, logger))
		if sceneLayout != "" {
			if err := ctl.ChangeLayout(interaction.LayoutID(sceneLayout)); err != nil {
				return err
			}
		}
		if sceneHovered != "" {
			n := g.Node(sceneHovered)
			if n == nil {
				return fmt.Errorf("no node %q in %s", sceneHovered, args[0])
			}
			ctl.Hover(n)
		}
		if sceneSelected != "" {
			n := g.Node(sceneSelected)
			if n == nil {
				return fmt.Errorf("no node %q in %s", sceneSelected, args[0])
			}
			ctl.Click(n)
		}

		dir := diagrams.DirectionFor(string(ctl.Layout().ID))
		switch sceneFormat {
		case "json":
		case "mermaid":
			_, err := fmt.Fprint(os.Stdout, diagrams.Flowchart(g, dir))
			return err
		case "markdown":
			_, err := fmt.Fprint(os.Stdout, site.Markdown(r, dir))
			return err
		case "html":
			page, err := site.HTML(r.ProjectName, site.Markdown(r, dir))
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(page)
			return err
		default:
			return fmt.Errorf("unknown format %q: must be json, mermaid, markdown or html", sceneFormat)
		}

		out := struct {
			ProjectName string              `json:"projectName"`
			Layout      interaction.Layout  `json:"layout"`
			Camera      *cameraMove         `json:"camera,omitempty"`
			Legend      []graph.LegendEntry `json:"legend"`
			Scene       scene.Scene         `json:"scene"`
		}{
			ProjectName: r.ProjectName,
			Layout:      ctl.Layout(),
			Camera:      cam.last,
			Legend:      graph.Legend(),
			Scene:       ctl.Scene(g),
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

// controllerOptions maps the view config onto the interaction controller.
func controllerOptions(cfg *config.Config, logger *log.Logger) interaction.Options {
	d := time.Duration(cfg.View.CameraDurationMS) * time.Millisecond
	return interaction.Options{
		Standoff:      cfg.View.CameraStandoff,
		FrameDuration: d,
		ResetDuration: d,
		DefaultLayout: interaction.LayoutID(cfg.View.DefaultLayout),
		Logger:        logger,
	}
}

type cameraMove struct {
	Position r3.Vec `json:"position"`
	LookAt   r3.Vec `json:"lookAt"`
	Duration int64  `json:"durationMs"`
}

// recordingCamera keeps the last requested camera move so the printed
// scene shows where a viewer would look.
type recordingCamera struct {
	logger *log.Logger
	last   *cameraMove
}

func (c *recordingCamera) MoveCamera(position, lookAt r3.Vec, d time.Duration) {
	c.last = &cameraMove{Position: position, LookAt: lookAt, Duration: d.Milliseconds()}
	c.logger.Debug("camera move", "position", position, "lookAt", lookAt, "duration", d)
}

func (c *recordingCamera) ZoomToFit(d time.Duration, padding float64) {
	c.logger.Debug("zoom to fit", "duration", d, "padding", padding)
}

func init() {
	sceneCmd.Flags().StringVar(&sceneSelected, "selected", "", "id of the selected node")
	sceneCmd.Flags().StringVar(&sceneHovered, "hovered", "", "id of the hovered node")
	sceneCmd.Flags().StringVar(&sceneLayout, "layout", "", "layout preset (force, td, lr, zout, radialout)")
	sceneCmd.Flags().StringVar(&sceneFormat, "format", "json", "output format: json, mermaid, markdown or html")
	rootCmd.AddCommand(sceneCmd)
}
