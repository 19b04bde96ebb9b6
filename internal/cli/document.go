package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	serrors "github.com/matzehuels/sentree/pkg/errors"
	sio "github.com/matzehuels/sentree/pkg/io"
	"github.com/matzehuels/sentree/pkg/sentence"
)

// loadDocument reads a JSON or TOML document after validating its path.
func loadDocument(path string) (sio.Document, error) {
	if err := serrors.ValidatePath(path); err != nil {
		return nil, err
	}
	doc, err := sio.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <document>",
		Short: "Check a document for structural errors",
		Long: `Validate rebuilds the annotation graph from a document and checks that every
word belongs to its layer, reading chains are symmetric and acyclic, nested
layers hang beneath existing words, and layer orders are dense.

References to identifiers missing from the document are reported as
warnings, or as errors with --strict.`,
		Args: cobra.ExactArgs(1),
		RunE: c.runE(func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			g, dangling, err := sio.DeserializeWithReport(doc)
			if err != nil {
				printError(c.Out, "Cannot build graph from %s", args[0])
				return err
			}
			for _, ref := range dangling {
				printWarning(c.Out, "dangling reference %s", ref)
			}
			if strict && len(dangling) > 0 {
				return fmt.Errorf("%w: %d unresolved", sio.ErrDanglingReference, len(dangling))
			}
			if err := g.Validate(); err != nil {
				printError(c.Out, "Invalid document %s", args[0])
				return err
			}

			printSuccess(c.Out, "Valid document %s", args[0])
			printStats(c.Out, g.LayerCount(), g.WordCount())
			return nil
		}),
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat dangling references as errors")
	return cmd
}

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <document>",
		Short: "Print the layer tree of a document",
		Args:  cobra.ExactArgs(1),
		RunE: c.runE(func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			g, err := sio.Deserialize(doc)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.Out, StyleTitle.Render(args[0]))
			printStats(c.Out, g.LayerCount(), g.WordCount())
			for _, l := range g.Layers() {
				if err := c.printLayer(g, l); err != nil {
					return err
				}
			}
			return nil
		}),
	}
}

// printLayer prints one layer line followed by its words, indented by the
// layer's nesting depth.
func (c *CLI) printLayer(g *sentence.Graph, l *sentence.Layer) error {
	depth, err := g.Depth(l.ID)
	if err != nil {
		return err
	}
	indent := strings.Repeat("  ", depth)

	head := indent
	if parent, ok := g.Word(l.Parent); ok {
		head += StyleDim.Render(iconNested+" "+parent.Value) + " "
	}
	order := "-"
	if v, ok := l.OrderValue(); ok {
		order = strconv.Itoa(v)
	}
	head += styleLayer.Render(fmt.Sprintf("[%s] %s", order, l.ID))
	if l.Type != "" {
		head += " " + StyleDim.Render(l.Type)
	}
	if l.CompanionText != "" {
		head += " " + StyleDim.Render(fmt.Sprintf("%q", l.CompanionText))
	}
	fmt.Fprintln(c.Out, head)

	var words []string
	for _, w := range g.Words(l.ID) {
		words = append(words, wordStyle(w.IsHighlighted, w.IsSelected, w.HighlightColor).Render(w.Value))
	}
	if len(words) > 0 {
		fmt.Fprintln(c.Out, indent+"  "+strings.Join(words, " "))
	}
	return nil
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a document between JSON and TOML",
		Long: `Convert reads a document and writes it in the format named by the output
file's extension (.json or .toml). The document is rebuilt as a graph on the
way through, so unresolvable references are dropped.`,
		Args: cobra.ExactArgs(2),
		RunE: c.runE(func(cmd *cobra.Command, args []string) error {
			prog := newProgress(c.Logger)
			in, out := args[0], args[1]
			if err := serrors.ValidatePath(out); err != nil {
				return err
			}

			e, err := c.newEditor()
			if err != nil {
				return err
			}
			doc, err := loadDocument(in)
			if err != nil {
				return err
			}
			if err := e.ImportLayers(doc); err != nil {
				return err
			}
			if err := sio.WriteFile(e.ExportLayers(), out); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			prog.done("Converted " + in)
			printSuccess(c.Out, "Converted %s", in)
			printFile(c.Out, out)
			return nil
		}),
	}
}

// moveCommand creates the move command.
func (c *CLI) moveCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "move <document> <layer-id> <index>",
		Short: "Move a layer to a new position",
		Long: `Move relocates a layer within the document's layer order. Layers between the
old and new position shift by one so that orders stay dense. The document is
rewritten in place unless --output is given.`,
		Args: cobra.ExactArgs(3),
		RunE: c.runE(func(cmd *cobra.Command, args []string) error {
			path, layerID := args[0], args[1]
			index, err := strconv.Atoi(args[2])
			if err != nil {
				return serrors.New(serrors.ErrCodeInvalidInput, "index %q is not an integer", args[2])
			}
			if output == "" {
				output = path
			}
			if err := serrors.ValidatePath(output); err != nil {
				return err
			}

			e, err := c.newEditor()
			if err != nil {
				return err
			}
			doc, err := loadDocument(path)
			if err != nil {
				return err
			}
			if err := e.ImportLayers(doc); err != nil {
				return err
			}
			if err := e.MoveLayerToIndex(layerID, index); err != nil {
				return err
			}
			if err := sio.WriteFile(e.ExportLayers(), output); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			printSuccess(c.Out, "Moved layer %s to %d", layerID, index)
			printFile(c.Out, output)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result here instead of in place")
	return cmd
}
