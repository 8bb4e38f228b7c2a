package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/linkdown/pkg/cache"
	"github.com/matzehuels/linkdown/pkg/errors"
	"github.com/matzehuels/linkdown/pkg/snapshot"
	"github.com/matzehuels/linkdown/pkg/topology"
)

// isolateConfig keeps the tests away from any real config file.
func isolateConfig(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	t.Setenv("LINKDOWN_CONFIG", "")
	t.Chdir(t.TempDir())
}

// writeSnapshot creates <base>/mddo_network with a topology and one config.
func writeSnapshot(t *testing.T, edges []topology.Edge) (base, src string) {
	t.Helper()
	base = t.TempDir()
	src = filepath.Join(base, "mddo_network")
	if err := os.MkdirAll(filepath.Join(src, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "configs", "pe01.cfg"), []byte("hostname pe01\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := topology.Save(src, edges); err != nil {
		t.Fatal(err)
	}
	return base, src
}

var testEdges = []topology.Edge{
	topology.NewEdge("pe01", "ge-0/0/0", "ce01", "Ethernet1"),
	topology.NewEdge("ce01", "Ethernet1", "pe01", "ge-0/0/0"),
	topology.NewEdge("pe01", "ge-0/0/1", "ce02", "Ethernet1"),
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	err := root.ExecuteContext(context.Background())
	return logs.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	for _, name := range []string{"make", "edges", "show", "graph", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag not registered")
	}
}

func TestMakeBulk(t *testing.T) {
	isolateConfig(t)
	base, src := writeSnapshot(t, testEdges)
	out := t.TempDir()

	logs, err := execute(t, "make", "-i", base, "-o", out)
	if err != nil {
		t.Fatalf("make: %v", err)
	}

	for i, name := range []string{"mddo_network_01", "mddo_network_02"} {
		dst := filepath.Join(out, name)
		data, err := os.ReadFile(filepath.Join(dst, snapshot.MetadataFileName))
		if err != nil {
			t.Fatalf("read metadata of %s: %v", name, err)
		}
		var meta snapshot.Metadata
		if err := json.Unmarshal(data, &meta); err != nil {
			t.Fatal(err)
		}
		if meta.Index != i+1 {
			t.Errorf("%s index = %d, want %d", name, meta.Index, i+1)
		}
		if meta.OriginalSnapshotPath != src {
			t.Errorf("%s original path = %q, want %q", name, meta.OriginalSnapshotPath, src)
		}

		a, _ := os.Stat(filepath.Join(src, "configs", "pe01.cfg"))
		b, err := os.Stat(filepath.Join(dst, "configs", "pe01.cfg"))
		if err != nil || !os.SameFile(a, b) {
			t.Errorf("%s: config not hard-linked", name)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "mddo_network_03")); !os.IsNotExist(err) {
		t.Error("duplicate link produced an extra snapshot")
	}
	if !strings.Contains(logs, "No.01: down pe01[ge-0/0/0] <=> ce01[Ethernet1] in layer1") {
		t.Errorf("log missing description:\n%s", logs)
	}
	if !strings.Contains(logs, "run=") {
		t.Errorf("log missing run id:\n%s", logs)
	}
}

func TestMakeFromInsideSnapshot(t *testing.T) {
	isolateConfig(t)
	_, src := writeSnapshot(t, testEdges)
	out := t.TempDir()
	t.Chdir(src)

	if _, err := execute(t, "make", "-i", ".", "-o", out); err != nil {
		t.Fatalf("make: %v", err)
	}
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if strings.Join(names, ",") != "mddo_network_01,mddo_network_02" {
		t.Errorf("output entries = %v, want mddo_network_01 and mddo_network_02", names)
	}

	if _, err := execute(t, "make", "-i", ".", "-o", out, "-n", "pe01", "-l", "ge-0/0/1"); err != nil {
		t.Fatalf("targeted make: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "mddo_network", topology.FileName)); err != nil {
		t.Errorf("targeted snapshot not named after the source: %v", err)
	}
}

func TestMakeTargeted(t *testing.T) {
	isolateConfig(t)
	base, _ := writeSnapshot(t, testEdges)
	out := t.TempDir()

	if _, err := execute(t, "make", "-i", base, "-o", out, "-n", "PE01", "-l", "ge-0/0/1"); err != nil {
		t.Fatalf("make: %v", err)
	}

	dst := filepath.Join(out, "mddo_network")
	topo, err := topology.Load(dst)
	if err != nil {
		t.Fatal(err)
	}
	if topo.Len() != 2 {
		t.Errorf("found edges = %d, want 2", topo.Len())
	}
	data, err := os.ReadFile(filepath.Join(dst, snapshot.MetadataFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"description": "Draw-off node: PE01, link_pattern: ge-0/0/1"`)) {
		t.Errorf("unexpected metadata:\n%s", data)
	}
}

func TestMakeDryRun(t *testing.T) {
	isolateConfig(t)
	base, _ := writeSnapshot(t, testEdges)
	out := filepath.Join(t.TempDir(), "out")

	logs, err := execute(t, "make", "-i", base, "-o", out, "--dry-run")
	if err != nil {
		t.Fatalf("make: %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("dry run created the output directory")
	}
	if !strings.Contains(logs, "DRY_RUN: lost: pe01[ge-0/0/0] -> ce01[Ethernet1]") {
		t.Errorf("log missing dry-run line:\n%s", logs)
	}
}

func TestMakeMetricsFile(t *testing.T) {
	isolateConfig(t)
	base, _ := writeSnapshot(t, testEdges)
	out := t.TempDir()
	metrics := filepath.Join(t.TempDir(), "linkdown.prom")

	if _, err := execute(t, "make", "-i", base, "-o", out, "--metrics-file", metrics); err != nil {
		t.Fatalf("make: %v", err)
	}
	data, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	for _, want := range []string{
		`linkdown_derivatives_total{result="ok"} 2`,
		"linkdown_artifacts_linked_total 2",
		"linkdown_last_run_success 1",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics missing %q:\n%s", want, data)
		}
	}
}

func TestMakeErrors(t *testing.T) {
	isolateConfig(t)
	base, _ := writeSnapshot(t, testEdges)
	out := t.TempDir()

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"pattern without node", []string{"make", "-i", base, "-o", out, "-l", "ge-.*"}, errors.ErrCodeInvalidInput},
		{"missing output", []string{"make", "-i", base}, errors.ErrCodeInvalidInput},
		{"bad pattern", []string{"make", "-i", base, "-o", out, "-n", "pe01", "-l", "ge-("}, errors.ErrCodeInvalidPattern},
		{"no topology", []string{"make", "-i", t.TempDir(), "-o", out}, errors.ErrCodeMalformedTopology},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestMakeUsesConfig(t *testing.T) {
	isolateConfig(t)
	base, _ := writeSnapshot(t, testEdges)
	out := t.TempDir()

	cfgPath := filepath.Join(t.TempDir(), "linkdown.toml")
	content := "input_snapshot_base = \"" + filepath.ToSlash(base) + "\"\n" +
		"output_snapshot_base = \"" + filepath.ToSlash(out) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "--config", cfgPath, "make"); err != nil {
		t.Fatalf("make: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "mddo_network_01", topology.FileName)); err != nil {
		t.Errorf("snapshot from config paths missing: %v", err)
	}
}

func TestRunShow(t *testing.T) {
	isolateConfig(t)
	base, _ := writeSnapshot(t, testEdges)
	c := New(&bytes.Buffer{}, LogInfo)

	tests := []struct {
		format string
		dedup  bool
		want   string
		count  int
	}{
		{formatJSON, false, `"interfaceName": "ge-0/0/0"`, 3},
		{formatJSON, true, `"interfaceName": "ge-0/0/0"`, 2},
		{formatYAML, true, "interfaceName: ge-0/0/0", 2},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := c.runShow(context.Background(), &buf, base, tt.format, tt.dedup); err != nil {
			t.Fatalf("runShow(%s): %v", tt.format, err)
		}
		if !strings.Contains(buf.String(), tt.want) {
			t.Errorf("runShow(%s) missing %q:\n%s", tt.format, tt.want, buf.String())
		}
		if got := strings.Count(buf.String(), "node1"); got != tt.count {
			t.Errorf("runShow(%s, dedup=%v) edges = %d, want %d", tt.format, tt.dedup, got, tt.count)
		}
	}

	if err := c.runShow(context.Background(), &bytes.Buffer{}, base, "xml", false); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown format: err = %v", err)
	}
}

func TestGraphDOT(t *testing.T) {
	isolateConfig(t)
	base, _ := writeSnapshot(t, testEdges)
	out := filepath.Join(t.TempDir(), "l1.dot")

	if _, err := execute(t, "graph", "-i", base, "-f", "dot", "-o", out, "-n", "ce02"); err != nil {
		t.Fatalf("graph: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	dot := string(data)
	if strings.Count(dot, " -- ") != 2 {
		t.Errorf("DOT should hold 2 distinct links:\n%s", dot)
	}
	if !strings.Contains(dot, `"pe01" -- "ce02" [taillabel="ge-0/0/1", headlabel="Ethernet1", style=dashed, color=red];`) {
		t.Errorf("DOT missing highlighted link:\n%s", dot)
	}
}

func TestEdgeListModel(t *testing.T) {
	edges := testEdges[1:]
	var m tea.Model = NewEdgeListModel(edges)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown}) // clamped at the last row
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("enter should quit the program")
	}

	fm := m.(EdgeListModel)
	if fm.Selected == nil {
		t.Fatal("no selection after enter")
	}
	if got, want := fm.Selected.Endpoint(), edges[1].Node2; got != want {
		t.Errorf("selected endpoint = %v, want %v", got, want)
	}
	if !strings.Contains(fm.View(), "ce02[Ethernet1]") {
		t.Errorf("view missing selected endpoint:\n%s", fm.View())
	}
}

func TestEdgeListModelQuit(t *testing.T) {
	var m tea.Model = NewEdgeListModel(testEdges)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should quit the program")
	}
	if m.(EdgeListModel).Selected != nil {
		t.Error("quit should not select anything")
	}
}

// memCache is an in-memory cache.Cache for render tests.
type memCache struct{ m map[string][]byte }

func (c *memCache) Get(_ context.Context, k string) ([]byte, bool, error) {
	v, ok := c.m[k]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, k string, v []byte, _ time.Duration) error {
	c.m[k] = v
	return nil
}

func (c *memCache) Delete(_ context.Context, k string) error {
	delete(c.m, k)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestRenderSVGCacheHit(t *testing.T) {
	dot := []byte("graph L1 {}\n")
	c := &memCache{m: map[string][]byte{
		cache.RenderKey(formatSVG, dot): []byte("<svg>cached</svg>"),
	}}

	svg, err := renderSVG(context.Background(), c, dot)
	if err != nil {
		t.Fatalf("renderSVG() error: %v", err)
	}
	if string(svg) != "<svg>cached</svg>" {
		t.Errorf("renderSVG() = %q, want cached value", svg)
	}
}
