package filter

import (
	"context"
	"testing"

	"github.com/rushteam/tourrec/core"
	"github.com/rushteam/tourrec/pkg/utils"
	"github.com/rushteam/tourrec/store"
)

func TestBlacklistFilter(t *testing.T) {
	ctx := context.Background()
	ms := store.NewMemoryStore()
	defer ms.Close()
	if err := ms.Set(ctx, "tour:closed", []byte("[7, 8]")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	tests := []struct {
		name   string
		filter *BlacklistFilter
		id     core.ItemID
		want   bool
	}{
		{name: "in memory list", filter: NewBlacklistFilter([]core.ItemID{1}, nil, ""), id: 1, want: true},
		{name: "not listed", filter: NewBlacklistFilter([]core.ItemID{1}, nil, ""), id: 2, want: false},
		{name: "in store list", filter: NewBlacklistFilter(nil, ms, "tour:closed"), id: 8, want: true},
		{name: "store key missing", filter: NewBlacklistFilter(nil, ms, "tour:none"), id: 8, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.filter.ShouldFilter(ctx, nil, core.NewItem(tt.id))
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExprFilter(t *testing.T) {
	f, err := NewExprFilter(`label.origin == "popular" && item.score < 3.5`)
	if err != nil {
		t.Fatalf("NewExprFilter() error = %v", err)
	}

	low := core.NewItem(1)
	low.Score = 3.0
	low.PutLabel(utils.LabelOrigin, utils.Label{Value: "popular"})
	high := core.NewItem(2)
	high.Score = 3.0
	high.PutLabel(utils.LabelOrigin, utils.Label{Value: "cf"})

	if got, err := f.ShouldFilter(context.Background(), nil, low); err != nil || !got {
		t.Errorf("ShouldFilter(low popular) = %v, %v, want true", got, err)
	}
	if got, err := f.ShouldFilter(context.Background(), nil, high); err != nil || got {
		t.Errorf("ShouldFilter(cf) = %v, %v, want false", got, err)
	}

	if _, err := NewExprFilter("item.score >"); err == nil {
		t.Errorf("NewExprFilter() should fail on syntax error")
	}
}

func TestFilterNode(t *testing.T) {
	var dropped []*core.Item
	n := &FilterNode{
		Filters: []Filter{NewBlacklistFilter([]core.ItemID{2}, nil, "")},
		Dropped: func(it *core.Item) { dropped = append(dropped, it) },
	}
	items := []*core.Item{core.NewItem(1), core.NewItem(2), nil, core.NewItem(3)}
	out, err := n.Process(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 3 {
		t.Errorf("Process() = %v", out)
	}
	if len(dropped) != 1 || dropped[0].Labels[utils.LabelFiltered].Source != "filter.blacklist" {
		t.Errorf("dropped = %v", dropped)
	}
}

func TestFilterNode_FilterErrorKeepsItem(t *testing.T) {
	// 缺少 origin 标签时表达式求值报错，物品被保留
	f, err := NewExprFilter(`label.origin == "popular"`)
	if err != nil {
		t.Fatalf("NewExprFilter() error = %v", err)
	}
	n := &FilterNode{Filters: []Filter{f}}
	out, err := n.Process(context.Background(), nil, []*core.Item{core.NewItem(1)})
	if err != nil || len(out) != 1 {
		t.Errorf("Process() = %v, %v", out, err)
	}
}
