package runlog

import (
	"testing"
	"time"

	"safecheck/pkg/core"

	"github.com/stretchr/testify/require"
)

func sampleReport() core.CheckReport {
	ce := &core.Trial{Index: 0, Input: -3.5, Error: "output -3.5 (float64) does not conform to declared type int"}
	results := []core.CheckResult{
		{
			Target:    "triple",
			Signature: core.Signature{Input: core.Descriptor{Name: "int", Kind: core.KindInteger}, Output: core.Descriptor{Name: "int", Kind: core.KindInteger}},
			Safe:      true,
			TrialsRun: 50,
			Duration:  2 * time.Millisecond,
		},
		{
			Target:         "truncate-positive",
			Signature:      core.Signature{Input: core.Descriptor{Name: "float64", Kind: core.KindFloat}, Output: core.Descriptor{Name: "int", Kind: core.KindInteger}},
			Safe:           false,
			TrialsRun:      3,
			Counterexample: ce,
			Duration:       time.Millisecond,
		},
	}
	return core.CheckReport{
		SuiteName:     "builtin",
		ExtractorName: "reflect",
		Seed:          7,
		Trials:        50,
		Metrics:       core.CalculateMetrics(results),
		Results:       results,
		StartedAt:     time.Now().Add(-time.Second),
		FinishedAt:    time.Now(),
	}
}

func TestFromReport(t *testing.T) {
	log := FromReport(sampleReport())
	require.Equal(t, logVersion, log.Version)
	require.Equal(t, "unsafe", log.Status)
	require.Equal(t, "builtin", log.Run.Suite)
	require.NotEmpty(t, log.Run.RunID)
	require.Len(t, log.Targets, 2)
	require.Equal(t, "float64", log.Targets[1].Input)
	require.NotNil(t, log.Targets[1].Counterexample)
}

func TestWriteReadJSON(t *testing.T) {
	dir := t.TempDir()
	log := FromReport(sampleReport())

	path, err := WriteJSON(dir, log)
	require.NoError(t, err)

	got, err := ReadJSON(path)
	require.NoError(t, err)
	require.Equal(t, log.Run.RunID, got.Run.RunID)
	require.Equal(t, log.Status, got.Status)
	require.Len(t, got.Targets, 2)
}

func TestWriteReadArchive(t *testing.T) {
	dir := t.TempDir()
	log := FromReport(sampleReport())

	path, err := WriteArchive(dir, log)
	require.NoError(t, err)

	got, err := ReadArchive(path)
	require.NoError(t, err)
	require.Equal(t, log.Run.RunID, got.Run.RunID)
	require.Len(t, got.Targets, 2)
	require.Equal(t, 2, got.Run.Targets)
}

func TestUnsafeTargets(t *testing.T) {
	log := FromReport(sampleReport())
	require.Equal(t, []string{"truncate-positive"}, UnsafeTargets(log))
}

func TestWriteJSONRequiresDir(t *testing.T) {
	_, err := WriteJSON("", RunLog{})
	require.Error(t, err)
}
