package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/bebras/engine"
)

const sampleCSV = `Nama,Kelas,Kategori,Provinsi,SekolahKotaKabupaten,SekolahNama,JenisKelamin,Nilai,Durasi_min
Ayu,5,Siaga,Jawa Barat,Bandung,SD 1,P,80,30
Budi,6,Siaga,Jawa Barat,Bogor,SD 2,L,60,40
Citra,7,Penggalang,Jawa Timur,Surabaya,SMP 1,P,90,25
Dodi,8,Penggalang,Jawa Timur,Malang,SMP 2,L,70,35
`

func sampleFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard_bebras.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

// resetFlags restores every flag to its default so runs do not leak into
// each other through the package-level commands.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestReportCommandJSON(t *testing.T) {
	out, err := run(t, "report", "--data", sampleFile(t), "--format", "json", "--region", "Jawa Timur")
	require.NoError(t, err)

	var report engine.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Summary.Count)
	assert.Equal(t, engine.Some(80), report.Summary.Mean)
	assert.Empty(t, report.Rows, "rows only with --rows")
}

func TestReportCommandSelectionValuesAreExact(t *testing.T) {
	body := sampleCSV + "Eka,5,Siaga,\"Jawa Barat, Bandung\",Bandung,SD 3,P,95,20\n"
	path := filepath.Join(t.TempDir(), "commas.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	out, err := run(t, "report", "--data", path, "--format", "json",
		"--region", "Jawa Barat, Bandung", "--region", "Jawa Timur")
	require.NoError(t, err)

	var report engine.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 3, report.Summary.Count)
	assert.Equal(t, []string{"Jawa Barat, Bandung", "Jawa Timur"}, report.Selection.Regions)
}

func TestReportCommandCSV(t *testing.T) {
	out, err := run(t, "report", "--data", sampleFile(t), "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "#,Name,Class,School,Sub-region,Score", lines[0])
	assert.Equal(t, "1,Citra,7,SMP 1,Surabaya,90.00", lines[1])
}

func TestReportCommandTableToFile(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "report.txt")
	_, err := run(t, "report", "--data", sampleFile(t), "--format", "table", "--out", outFile)
	require.NoError(t, err)

	body, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Total data: 4 participants")
}

func TestReportCommandUnknownFormat(t *testing.T) {
	_, err := run(t, "report", "--data", sampleFile(t), "--format", "xml")
	assert.Error(t, err)
}

func TestOptionsCommandMappings(t *testing.T) {
	out, err := run(t, "options", "--data", sampleFile(t), "--mappings", "--format", "json")
	require.NoError(t, err)

	var mappings map[string]map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &mappings))
	assert.Equal(t, []string{"Malang", "Surabaya"}, mappings[engine.DimRegion]["Jawa Timur"])
}

func TestInspectCommandMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.csv")
	require.NoError(t, os.WriteFile(path, []byte("Nama,Nilai\nAyu,80\n"), 0o644))

	out, err := run(t, "inspect", "--data", path, "--format", "json")
	require.Error(t, err)
	assert.Contains(t, out, `"rows":1`)
}

func TestChartsCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	out, err := run(t, "charts", "--data", sampleFile(t), "--out", dir, "--chart", engine.ChartGenderPie, "--csv")
	require.NoError(t, err)

	assert.Contains(t, out, filepath.Join(dir, "gender_pie.png"))
	body, err := os.ReadFile(filepath.Join(dir, "gender_pie.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Label,Value\nP,2\nL,2\n", string(body))
}

func TestWriteChartCSV(t *testing.T) {
	t.Run("box", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeChartCSV(&buf, engine.ChartConfig{
			ChartType: engine.ChartBox,
			XAxis:     "Gender",
			Boxes:     []engine.GroupBox{{Label: "P", Box: engine.BoxSummary{Count: 1, Min: engine.Some(5)}}},
		}))
		assert.Equal(t, "Gender,N,Min,Q1,Median,Q3,Max\nP,1,5.00,no data,no data,no data,no data\n", buf.String())
	})

	t.Run("scatter", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeChartCSV(&buf, engine.ChartConfig{
			ChartType: engine.ChartScatter,
			XAxis:     "Duration (min)",
			YAxis:     "Score",
			Series:    []engine.ChartSeries{{Data: []engine.ChartPoint{{X: 30, Value: 80.5}}}},
		}))
		assert.Equal(t, "Duration (min),Score\n30,80.50\n", buf.String())
	})
}
