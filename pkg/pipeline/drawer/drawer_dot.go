package drawer

import (
	"io"
	"os"
	"sort"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-lensing/pkg/pipeline/measure"
)

// DOTDrawer writes the stage graph as a Graphviz DOT file.
type DOTDrawer struct {
	graph       graph.Graph[string, string]
	dotFileName string
}

// NewDOTDrawer creates a new DOT drawer writing to dotFileName.
func NewDOTDrawer(dotFileName string) *DOTDrawer {
	return &DOTDrawer{
		dotFileName: dotFileName,
		graph:       graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles()),
	}
}

// AddStage adds a stage to the graph. Adding a stage twice is a no-op.
func (d *DOTDrawer) AddStage(name string) error {
	err := d.graph.AddVertex(name)
	if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return errors.Wrap(err, "unable to add vertex")
	}

	return nil
}

// AddLink adds a link between parent and child stages.
func (d *DOTDrawer) AddLink(parentName, childName string) error {
	err := d.graph.AddEdge(parentName, childName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childName)
	}

	return nil
}

// Draw creates a DOT file with the pipeline graph.
func (d *DOTDrawer) Draw() (err error) {
	file, err := os.Create(d.dotFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.dotFileName)
	}

	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "unable to close file %s", d.dotFileName)
		}
	}()

	err = dot(d.graph, file)
	if err != nil {
		return errors.Wrapf(err, "unable to create dot file %s", d.dotFileName)
	}

	return nil
}

// SetTotalTime sets the total time for the stage.
func (d *DOTDrawer) SetTotalTime(stageName string, startTime time.Time) error {
	_, properties, err := d.graph.VertexWithProperties(stageName)
	if err != nil {
		return errors.Wrap(err, "unable to get vertex properties")
	}

	properties.Attributes["xlabel"] = "total: " + time.Since(startTime).Round(time.Millisecond).String()

	return nil
}

const maxRGB = 240

// AddMeasure labels stages with their durations and colours links from blue
// (fast hand over) to red (slow hand over).
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	linkColours := make(map[time.Duration]string)
	sortedElapsed := []time.Duration{}

	for _, stage := range msr.AllMetrics() {
		for _, info := range stage.AVGTransportDuration() {
			if info.Elapsed == 0 {
				continue
			}

			if _, ok := linkColours[info.Elapsed]; ok {
				continue
			}

			linkColours[info.Elapsed] = ""

			sortedElapsed = append(sortedElapsed, info.Elapsed)
		}
	}

	sort.Slice(sortedElapsed, func(i, j int) bool {
		return sortedElapsed[i] > sortedElapsed[j]
	})

	if len(sortedElapsed) > 0 {
		maxValue := sortedElapsed[0]
		minValue := sortedElapsed[len(sortedElapsed)-1]

		for curr := range linkColours {
			fraction := 1.0
			if maxValue > minValue {
				fraction = float64(curr-minValue) / float64(maxValue-minValue)
			}

			red := maxRGB * fraction
			blue := maxRGB - red

			colour, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
			if err != nil {
				return errors.Wrap(err, "unable to get colour")
			}

			linkColours[curr] = colour.ToHEX().String()
		}
	}

	err := d.updateMetrics(msr, linkColours)
	if err != nil {
		return errors.Wrap(err, "unable to update metrics")
	}

	return nil
}

func (d *DOTDrawer) updateMetrics(msr measure.Measure, linkColours map[time.Duration]string) error {
	for name, stage := range msr.AllMetrics() {
		_, properties, err := d.graph.VertexWithProperties(name)
		if errors.Is(err, graph.ErrVertexNotFound) {
			continue
		}

		if err != nil {
			return errors.Wrap(err, "unable to get vertex properties")
		}

		if stageAvg := stage.AVGDuration(); stageAvg != 0 {
			properties.Attributes["xlabel"] = "stage: " + stageAvg.String()
		}

		if diagAvg := stage.AVGDiagnosticsDuration(); diagAvg != 0 {
			properties.Attributes["xlabel"] = joinLabel(properties.Attributes["xlabel"], "diagnostics: "+diagAvg.String())
		}

		if stage.GetTotalDuration() > 0 {
			properties.Attributes["xlabel"] = joinLabel(properties.Attributes["xlabel"], "end: "+stage.GetTotalDuration().String())
		}

		for inputStage, info := range stage.AVGTransportDuration() {
			if info.Elapsed == 0 {
				continue
			}

			err := d.graph.UpdateEdge(inputStage, name,
				graph.EdgeAttribute("label", info.Elapsed.String()),
				graph.EdgeAttribute("fontcolor", "blue"),
				graph.EdgeAttribute("color", linkColours[info.Elapsed]),
			)
			if err != nil {
				return errors.Wrap(err, "unable to update edge")
			}
		}
	}

	return nil
}

func joinLabel(label, part string) string {
	if label == "" {
		return part
	}

	return label + ", " + part
}

// dotTemplate renders a stage graph. A stage with timings gets an HTML label.
const dotTemplate = `strict digraph {
{{range .}}{{if .Target}}	"{{.Source}}" -> "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}}];
{{else if .Label}}	"{{.Source}}" [ label=<{{.Source}} <BR /> <FONT POINT-SIZE="12">{{.Label}}</FONT>> ];
{{else}}	"{{.Source}}";
{{end}}{{end}}}
`

// statement is a stage when Target is empty, a link otherwise.
type statement struct {
	Source         string
	Target         string
	Label          string
	EdgeAttributes map[string]string
}

func dot(g graph.Graph[string, string], wrt io.Writer) error {
	statements, err := dotStatements(g)
	if err != nil {
		return errors.Wrap(err, "unable to describe graph")
	}

	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "unable to parse template")
	}

	if err := tpl.Execute(wrt, statements); err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

// dotStatements lists stages by name, each followed by its outgoing links.
func dotStatements(g graph.Graph[string, string]) ([]statement, error) {
	adjacencyMap, err := g.AdjacencyMap()
	if err != nil {
		return nil, errors.Wrap(err, "unable to get adjacency map")
	}

	stages := make([]string, 0, len(adjacencyMap))
	for stage := range adjacencyMap {
		stages = append(stages, stage)
	}

	sort.Strings(stages)

	var statements []statement

	for _, stage := range stages {
		_, properties, err := g.VertexWithProperties(stage)
		if err != nil {
			return nil, errors.Wrap(err, "unable to get vertex properties")
		}

		statements = append(statements, statement{Source: stage, Label: properties.Attributes["xlabel"]})

		targets := make([]string, 0, len(adjacencyMap[stage]))
		for target := range adjacencyMap[stage] {
			targets = append(targets, target)
		}

		sort.Strings(targets)

		for _, target := range targets {
			statements = append(statements, statement{
				Source:         stage,
				Target:         target,
				EdgeAttributes: adjacencyMap[stage][target].Properties.Attributes,
			})
		}
	}

	return statements, nil
}

var _ Drawer = (*DOTDrawer)(nil)
