package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rushteam/tourrec/core"
)

type appendNode struct {
	name string
	id   core.ItemID
	err  error
}

func (n *appendNode) Name() string { return n.name }
func (n *appendNode) Kind() Kind   { return KindRecall }

func (n *appendNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	if n.err != nil {
		return nil, n.err
	}
	return append(items, core.NewItem(n.id)), nil
}

func TestPipeline_Run(t *testing.T) {
	p := &Pipeline{Nodes: []Node{
		&appendNode{name: "a", id: 1},
		&appendNode{name: "b", id: 2},
	}}
	items, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(items) != 2 || items[0].ID != 1 || items[1].ID != 2 {
		t.Errorf("Run() = %v", items)
	}
}

func TestPipeline_RunError(t *testing.T) {
	boom := errors.New("boom")
	p := &Pipeline{Nodes: []Node{
		&appendNode{name: "a", id: 1},
		&appendNode{name: "broken", err: boom},
	}}
	_, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want wrapped boom", err)
	}
	if !strings.Contains(err.Error(), "node broken") {
		t.Errorf("error should name the node: %v", err)
	}
}

func TestPipeline_RunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &Pipeline{Nodes: []Node{&appendNode{name: "a", id: 1}}}
	if _, err := p.Run(ctx, &core.RecommendContext{}, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestConfig_BuildPipeline(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
pipeline:
  name: attraction_feed
  nodes:
    - type: append
      config: {id: 7}
`))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Pipeline.Name != "attraction_feed" || len(cfg.Pipeline.Nodes) != 1 {
		t.Fatalf("ParseConfig() = %+v", cfg)
	}

	f := NewNodeFactory()
	f.Register("append", func(m map[string]any) (Node, error) {
		id, _ := m["id"].(int)
		return &appendNode{name: "append", id: core.ItemID(id)}, nil
	})
	p, err := cfg.BuildPipeline(f)
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	items, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err != nil || len(items) != 1 || items[0].ID != 7 {
		t.Fatalf("Run() = %v, %v", items, err)
	}

	if _, err := cfg.BuildPipeline(NewNodeFactory()); err == nil {
		t.Errorf("BuildPipeline() with empty factory should fail")
	}
}
