package drawer_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-lensing/pkg/pipeline/drawer"
	"github.com/askiada/go-lensing/pkg/pipeline/measure"
	"github.com/askiada/go-lensing/pkg/pipeline/model"
)

func TestDOTDrawer(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pipeline.dot")
	d := drawer.NewDOTDrawer(path)

	require.NoError(t, d.AddStage("galsim"))
	require.NoError(t, d.AddStage("galsim"))
	require.NoError(t, d.AddStage("medsmaker"))
	require.NoError(t, d.AddLink("galsim", "medsmaker"))
	require.Error(t, d.AddLink("medsmaker", "galsim"))
	require.Error(t, d.AddLink("galsim", "unknown"))
	require.Error(t, d.SetTotalTime("unknown", time.Now()))

	require.NoError(t, d.SetTotalTime("medsmaker", time.Now()))
	require.NoError(t, d.Draw())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	dot := string(data)
	assert.True(t, strings.HasPrefix(dot, "strict digraph {"))
	assert.Contains(t, dot, `"galsim" -> "medsmaker"`)
	assert.Contains(t, dot, "total: ")
	assert.Less(t, strings.Index(dot, `"galsim"`), strings.Index(dot, `"medsmaker"`))
}

func TestDOTDrawerMeasure(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pipeline.dot")
	d := drawer.NewDOTDrawer(path)

	for _, name := range []string{"start", "fast", "slow"} {
		require.NoError(t, d.AddStage(name))
	}

	require.NoError(t, d.AddLink("start", "fast"))
	require.NoError(t, d.AddLink("fast", "slow"))

	msr := measure.NewDefaultMeasure()
	fast := msr.AddMetric("fast")
	fast.AddDuration(time.Millisecond)
	fast.AddTransportDuration("start", time.Microsecond)

	slow := msr.AddMetric("slow")
	slow.AddDuration(time.Second)
	slow.AddDiagnosticsDuration(2 * time.Second)
	slow.AddTransportDuration("fast", time.Millisecond)

	// metrics of stages not drawn are ignored
	msr.AddMetric("elsewhere").AddDuration(time.Second)

	require.NoError(t, d.AddMeasure(msr))
	require.NoError(t, d.Draw())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	dot := string(data)
	assert.Contains(t, dot, "stage: 1s, diagnostics: 2s")
	// slowest link red, fastest blue
	assert.Contains(t, dot, `color="#f00000"`)
	assert.Contains(t, dot, `color="#0000f0"`)
}

func TestPipelineDrawer(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pipeline.dot")
	opt := drawer.PipelineDrawer(drawer.NewDOTDrawer(path), nil)

	require.NoError(t, opt.New())

	galsim := &model.StageInfo{Name: "galsim"}
	meds := &model.StageInfo{Name: "medsmaker"}

	require.NoError(t, opt.PrepareStage([]*model.StageInfo{model.StartStage}, galsim))
	require.NoError(t, opt.PrepareStage([]*model.StageInfo{galsim}, meds))
	require.NoError(t, opt.AfterStage(galsim, model.StageTiming{}))
	require.NoError(t, opt.Finish([]*model.StageInfo{meds}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	dot := string(data)
	assert.Contains(t, dot, `"start" -> "galsim"`)
	assert.Contains(t, dot, `"galsim" -> "medsmaker"`)
	assert.Contains(t, dot, `"medsmaker" -> "end"`)
	assert.Contains(t, dot, "total: ")
}

func TestDOTDrawerOutput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pipeline.dot")
	d := drawer.NewDOTDrawer(path)

	require.NoError(t, d.AddStage("medsmaker"))
	require.NoError(t, d.AddStage("galsim"))
	require.NoError(t, d.AddLink("galsim", "medsmaker"))
	require.NoError(t, d.Draw())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "strict digraph {\n"+
		"\t\"galsim\";\n"+
		"\t\"galsim\" -> \"medsmaker\" [ ];\n"+
		"\t\"medsmaker\";\n"+
		"}\n", string(data))
}
