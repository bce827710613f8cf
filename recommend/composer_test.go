package recommend

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/rushteam/tourrec/core"
	"github.com/rushteam/tourrec/matrix"
	"github.com/rushteam/tourrec/recall"
)

const (
	i1 core.ItemID = 1
	i2 core.ItemID = 2
	i3 core.ItemID = 3
	i4 core.ItemID = 4
)

// testData 构造一份小数据集：
//
//	热门榜：I1 4.5, I2 4.0, I3 3.8, I4 3.0
//	用户 10 的邻居 20 只评过 I2（5 分），用户 10 评过 I4，因此 CF 只能给出 I2
//	用户 11 已知但没有评分也没有邻居
//	用户 12 的 CF 结果为 I1 4.5, I3 3.8, I2 3.6
func testData(t *testing.T) *matrix.ReferenceData {
	t.Helper()
	ds := &matrix.Dataset{
		Items: []matrix.ItemRecord{
			{ID: i1, Name: "Sacred Monkey Forest"},
			{ID: i2, Name: "Uluwatu Temple"},
			{ID: i3, Name: "Tegallalang Rice Terrace"},
			{ID: i4},
		},
		Users: []core.UserID{11},
		Ratings: []matrix.RatingRecord{
			{User: 30, Item: i1, Rating: 4.5},
			{User: 31, Item: i1, Rating: 4.5},
			{User: 20, Item: i2, Rating: 5},
			{User: 30, Item: i2, Rating: 3},
			{User: 30, Item: i3, Rating: 3.8},
			{User: 10, Item: i4, Rating: 3},
			{User: 12, Item: i4, Rating: 3},
		},
		Neighbors: []matrix.NeighborRecord{
			{User: 10, List: []matrix.Neighbor{{User: 20, Similarity: 0.9}}},
			{User: 12, List: []matrix.Neighbor{{User: 30, Similarity: 0.7}, {User: 20, Similarity: 0.3}}},
		},
	}
	data, err := ds.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return data
}

func testComposer(t *testing.T) *Composer {
	t.Helper()
	return NewSnapshot(testData(t), 10).Composer()
}

func ids(items []core.ScoredItem) []core.ItemID {
	out := make([]core.ItemID, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestComposer_Recommend(t *testing.T) {
	c := testComposer(t)

	tests := []struct {
		name             string
		user             core.UserID
		n                int
		wantProvenance   Provenance
		wantIDs          []core.ItemID
		wantPersonalized int
	}{
		{
			name:           "cold start returns popular prefix",
			user:           999,
			n:              3,
			wantProvenance: ProvenancePopular,
			wantIDs:        []core.ItemID{i1, i2, i3},
		},
		{
			name:           "cold start with n larger than catalog",
			user:           999,
			n:              10,
			wantProvenance: ProvenancePopular,
			wantIDs:        []core.ItemID{i1, i2, i3, i4},
		},
		{
			name:             "hybrid fill skips items already present",
			user:             10,
			n:                3,
			wantProvenance:   ProvenanceHybrid,
			wantIDs:          []core.ItemID{i2, i1, i3},
			wantPersonalized: 1,
		},
		{
			name:             "cf result with exactly n items",
			user:             10,
			n:                1,
			wantProvenance:   ProvenanceCF,
			wantIDs:          []core.ItemID{i2},
			wantPersonalized: 1,
		},
		{
			name:             "cf truncated to n",
			user:             12,
			n:                2,
			wantProvenance:   ProvenanceCF,
			wantIDs:          []core.ItemID{i1, i3},
			wantPersonalized: 2,
		},
		{
			name:           "known user without ratings or neighbors is hybrid",
			user:           11,
			n:              2,
			wantProvenance: ProvenanceHybrid,
			wantIDs:        []core.ItemID{i1, i2},
		},
		{
			name:             "hybrid ends early when popular list is exhausted",
			user:             10,
			n:                10,
			wantProvenance:   ProvenanceHybrid,
			wantIDs:          []core.ItemID{i2, i1, i3, i4},
			wantPersonalized: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := c.Recommend(tt.user, tt.n)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if rec.Provenance != tt.wantProvenance {
				t.Errorf("Provenance = %s, want %s", rec.Provenance, tt.wantProvenance)
			}
			if got := ids(rec.Items); !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("Items = %v, want %v", got, tt.wantIDs)
			}
			if rec.Personalized != tt.wantPersonalized {
				t.Errorf("Personalized = %d, want %d", rec.Personalized, tt.wantPersonalized)
			}
			if len(rec.Items) > tt.n {
				t.Errorf("len(Items) = %d exceeds n = %d", len(rec.Items), tt.n)
			}
			seen := map[core.ItemID]bool{}
			for _, it := range rec.Items {
				if seen[it.ID] {
					t.Errorf("duplicate item %d", it.ID)
				}
				seen[it.ID] = true
				if math.IsNaN(it.Score) || math.IsInf(it.Score, 0) {
					t.Errorf("item %d has non-finite score %v", it.ID, it.Score)
				}
			}
		})
	}
}

func TestComposer_HybridScores(t *testing.T) {
	c := testComposer(t)
	rec, err := c.Recommend(10, 3)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	want := []float64{5, 4.5, 3.8}
	for i, it := range rec.Items {
		if math.Abs(it.Score-want[i]) > 1e-9 {
			t.Errorf("Items[%d].Score = %v, want %v", i, it.Score, want[i])
		}
	}
}

func TestComposer_HybridExample(t *testing.T) {
	popular := recall.PopularityRanking{{ID: i1, Score: 4.5}, {ID: i2, Score: 4.0}, {ID: i3, Score: 3.8}}
	got := fillFromPopular([]core.ScoredItem{{ID: i2, Score: 4.9}}, popular, 3)
	want := []core.ScoredItem{{ID: i2, Score: 4.9}, {ID: i1, Score: 4.5}, {ID: i3, Score: 3.8}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fillFromPopular() = %v, want %v", got, want)
	}
}

func TestComposer_InvalidCount(t *testing.T) {
	c := testComposer(t)
	for _, n := range []int{0, -3} {
		_, err := c.Recommend(10, n)
		if !errors.Is(err, core.ErrInvalidCount) {
			t.Errorf("Recommend(n=%d) error = %v, want ErrInvalidCount", n, err)
		}
		if !core.IsInvalidInput(err) {
			t.Errorf("IsInvalidInput() should be true for n=%d", n)
		}
	}
}

func TestComposer_Idempotent(t *testing.T) {
	c := testComposer(t)
	first, err := c.Recommend(12, 4)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := c.Recommend(12, 4)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Recommend() not idempotent: %v vs %v", first, again)
		}
	}
}

func TestComposer_ColdStartDoesNotAliasPopular(t *testing.T) {
	c := testComposer(t)
	rec, err := c.Recommend(999, 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	rec.Items[0].Score = -1
	if c.Popular[0].Score == -1 {
		t.Errorf("cold-start result shares memory with popular ranking")
	}
}

func TestProvenance_Message(t *testing.T) {
	tests := map[Provenance]string{
		ProvenancePopular: "Popular attractions (cold-start fallback).",
		ProvenanceCF:      "Personalized recommendations based on similar users.",
		ProvenanceHybrid:  "Mixed recommendations: personalized + popular attractions.",
	}
	for p, want := range tests {
		if got := p.Message(); got != want {
			t.Errorf("%s.Message() = %q, want %q", p, got, want)
		}
	}
}
