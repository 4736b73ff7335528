package testing

import (
	"context"
	"errors"
	"io/fs"
	stdtesting "testing"

	"github.com/zoobzio/hhsav"
	"github.com/zoobzio/hhsav/bridge"
)

func TestScenarioDocument(t *stdtesting.T) {
	data, err := ScenarioDocument().MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	if string(data) != `{"items":["sword","shield"],"level":3}` {
		t.Errorf("ScenarioDocument() = %s", data)
	}
}

func TestSampleSave_Sections(t *stdtesting.T) {
	keys := SampleSave().Keys()
	want := []string{"AppStore", "Bank", "Quests", "Suspicion", "Terminal"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestMustEncode(t *stdtesting.T) {
	data := MustEncode(t, ScenarioDocument())
	doc, err := hhsav.DecodeCompressed(context.Background(), data)
	if err != nil {
		t.Fatalf("DecodeCompressed() error: %v", err)
	}
	if !doc.Equal(ScenarioDocument()) {
		t.Error("MustEncode() output does not decode to its input")
	}
}

func TestMemFS(t *stdtesting.T) {
	var _ bridge.FileSystem = NewMemFS()

	m := NewMemFS()
	if m.Touched() {
		t.Error("a new MemFS should be untouched")
	}

	m.Put("/a", []byte("seed"))
	if m.Touched() {
		t.Error("Put should not count as a write")
	}

	if err := m.WriteFile("/b", []byte("data")); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	data, err := m.ReadFile("/b")
	if err != nil || string(data) != "data" {
		t.Errorf("ReadFile() = %q, %v", data, err)
	}
	if m.Reads != 1 || m.Writes != 1 {
		t.Errorf("Reads = %d, Writes = %d", m.Reads, m.Writes)
	}

	if _, err := m.ReadFile("/missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(missing) error = %v, want fs.ErrNotExist", err)
	}

	m.WriteErr = ErrDiskFull
	if err := m.WriteFile("/c", nil); !errors.Is(err, ErrDiskFull) {
		t.Errorf("WriteFile() error = %v, want ErrDiskFull", err)
	}
	if _, ok := m.Get("/c"); ok {
		t.Error("a failed write should not store the file")
	}
}

func TestScriptedPicker(t *stdtesting.T) {
	var _ bridge.Picker = &ScriptedPicker{}
	ctx := context.Background()

	p := &ScriptedPicker{Path: "/saves/a.hhsav"}
	if path, err := p.PickSave(ctx, bridge.SaveFilter, "suggested.hhsav"); err != nil || path != "/saves/a.hhsav" {
		t.Errorf("PickSave() = %q, %v", path, err)
	}
	if len(p.Suggested) != 1 || p.Suggested[0] != "suggested.hhsav" {
		t.Errorf("Suggested = %v", p.Suggested)
	}

	if _, err := (&ScriptedPicker{}).PickLoad(ctx, bridge.LoadFilter); !hhsav.IsCancelled(err) {
		t.Errorf("empty picker error = %v, want a cancellation", err)
	}

	boom := errors.New("boom")
	if _, err := (&ScriptedPicker{Err: boom}).PickLoad(ctx, bridge.LoadFilter); !errors.Is(err, boom) {
		t.Errorf("PickLoad() error = %v, want boom", err)
	}
}
