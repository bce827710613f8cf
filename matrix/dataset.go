package matrix

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/tourrec/core"
)

// Dataset 是离线产物的文件格式（YAML，JSON 作为 YAML 子集同样可读）。
//
// 示例：
//
//	items:
//	  - {id: 1, name: "Sacred Monkey Forest Sanctuary"}
//	users: [42]            # 已知但没有评分的用户
//	ratings:
//	  - {user: 1, item: 1, rating: 5}
//	neighbors:
//	  - user: 1
//	    list:
//	      - {user: 2, similarity: 0.8}
type Dataset struct {
	Items     []ItemRecord     `yaml:"items" json:"items"`
	Users     []core.UserID    `yaml:"users" json:"users"`
	Ratings   []RatingRecord   `yaml:"ratings" json:"ratings"`
	Neighbors []NeighborRecord `yaml:"neighbors" json:"neighbors"`
}

// ItemRecord 是目录中的一个景点。
type ItemRecord struct {
	ID   core.ItemID `yaml:"id" json:"id"`
	Name string      `yaml:"name" json:"name"`
}

// RatingRecord 是一条用户评分。
type RatingRecord struct {
	User   core.UserID `yaml:"user" json:"user"`
	Item   core.ItemID `yaml:"item" json:"item"`
	Rating float64     `yaml:"rating" json:"rating"`
}

// NeighborRecord 是一个用户的预计算相似用户列表。
type NeighborRecord struct {
	User core.UserID `yaml:"user" json:"user"`
	List []Neighbor  `yaml:"list" json:"list"`
}

// LoadDatasetFile 从 YAML/JSON 文件读取数据集。
func LoadDatasetFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ParseDataset(data)
}

// ParseDataset 解析 YAML/JSON 字节。
func ParseDataset(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return &ds, nil
}

// Build 把数据集物化为不可变的参考数据。
func (ds *Dataset) Build() (*ReferenceData, error) {
	b := NewBuilder()
	labels := make(map[core.ItemID]string, len(ds.Items))
	for _, it := range ds.Items {
		b.AddItem(it.ID)
		if it.Name != "" {
			labels[it.ID] = it.Name
		}
	}
	for _, u := range ds.Users {
		b.AddUser(u)
	}
	for _, r := range ds.Ratings {
		if err := b.Set(r.User, r.Item, r.Rating); err != nil {
			return nil, err
		}
	}

	src := make(map[core.UserID][]Neighbor, len(ds.Neighbors))
	for _, nr := range ds.Neighbors {
		src[nr.User] = append(src[nr.User], nr.List...)
	}
	neighbors, err := NewNeighborList(src)
	if err != nil {
		return nil, err
	}

	return &ReferenceData{
		Matrix:    b.Build(),
		Neighbors: neighbors,
		Labels:    NewLabelMap(labels),
	}, nil
}
