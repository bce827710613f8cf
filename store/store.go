// Package store 提供 core.Store / core.KeyValueStore 的实现：
//   - MemoryStore：进程内实现，用于测试与单机演示
//   - RedisStore：生产环境的参考数据来源
//
// 接口定义在 core 包，这里只包含实现。
//
// 示例：
//
//	var s core.KeyValueStore = store.NewMemoryStore()
package store
