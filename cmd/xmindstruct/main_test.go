package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/xmindstruct-go/pkg/xmindstruct/models"
)

const cliContent = `[{"title": "Equipo", "rootTopic": {"title": "Central", "children": {"attached": [
  {"title": "2024-03-01 x Luis 20USDT N3", "style": {"properties": {"svg:fill": "#10B010"}},
   "children": {"attached": [{"title": "a"}, {"title": "b", "style": {"properties": {"fo:color": "#E01010"}}}]}}
]}}}]`

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("content.json")
	require.NoError(t, err)
	_, err = w.Write([]byte(cliContent))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, "equipo.xmind")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunStdout(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)

	out, err := execute(t, "--config", filepath.Join(dir, "none.yaml"), input)
	require.NoError(t, err)

	var report models.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "equipo.xmind", report.BookName)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, []models.Row{
		{Ingreso: "2024-03-01", Agente: "Luis", Monto: "20 USDT", Nivel: "N3", Total: 1},
	}, report.GroupRows)
}

func TestRunOutputFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	target := filepath.Join(dir, "informe.csv")

	out, err := execute(t, "--config", filepath.Join(dir, "none.yaml"), "-o", target, "--mode", "light", input)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "Hoja,Miembros\nEquipo,2\nTotal de miembros,2\n\n"+
		"Fecha de ingreso,Agente,Monto invertido,Nivel,Total miembros\n"+
		"No se encontraron nodos con fondo verde.\n", string(data))
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	conf := filepath.Join(dir, "xmindstruct.yaml")
	require.NoError(t, os.WriteFile(conf, []byte("extraction:\n  mode: light\noutput:\n  pretty: true\n"), 0o644))

	out, err := execute(t, "--config", conf, input)
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"book_name\": \"equipo.xmind\"")
	assert.Contains(t, out, "\"group_rows\": []")

	// Flags override the file.
	out, err = execute(t, "--config", conf, "--mode", "standard", input)
	require.NoError(t, err)
	assert.Contains(t, out, "\"agente\": \"Luis\"")
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	noConf := filepath.Join(dir, "none.yaml")

	_, err := execute(t, "--config", noConf, "--mode", "full", input)
	assert.ErrorContains(t, err, "invalid mode")

	_, err = execute(t, "--config", noConf, "--format", "ods", input)
	assert.ErrorContains(t, err, "invalid format")

	_, err = execute(t, "--config", noConf, filepath.Join(dir, "missing.xmind"))
	assert.ErrorContains(t, err, "file not found")

	_, err = execute(t, "--config", noConf)
	assert.Error(t, err)
}
