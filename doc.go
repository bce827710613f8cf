// Package tourrec 是一个景点推荐引擎。
//
// 设计要点：
// - Snapshot-first: 评分矩阵、相似用户表、景点名称构成不可变快照，整体原子替换
// - 冷启动 → 协同过滤 → 热门补足，每个请求终止于 popular / cf / hybrid 之一
// - Pipeline 可选: recommend.hybrid 可作为召回节点接入 filter / rerank 链路
package tourrec

import (
	"github.com/rushteam/tourrec/pipeline"
	"github.com/rushteam/tourrec/recommend"
)

// 轻量 facade：便于用户直接 import "tourrec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

type Service = recommend.Service
type Result = recommend.Result
type Provenance = recommend.Provenance

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)

const (
	ProvenancePopular = recommend.ProvenancePopular
	ProvenanceCF      = recommend.ProvenanceCF
	ProvenanceHybrid  = recommend.ProvenanceHybrid
)
